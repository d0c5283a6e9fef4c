// Report panel handlers.
//
// This file exposes the read-side REST endpoints of the dashboard. Every
// endpoint takes the report id as a path parameter and (where it applies)
// the user selection as a ?user= query parameter defaulting to "Overall":
//
//   - GET /reports/{id}/users
//   - GET /reports/{id}/summary
//   - GET /reports/{id}/active-users
//   - GET /reports/{id}/words
//   - GET /reports/{id}/emoji
//   - GET /reports/{id}/timeline/monthly
//   - GET /reports/{id}/timeline/daily
//   - GET /reports/{id}/activity
//   - GET /reports/{id}/sentiment
//   - GET /reports/{id}/similarity
//   - GET /reports/{id}/similarity/top
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-chat-analytics/internal/analysis"
	"github.com/tbourn/go-chat-analytics/internal/services"
	"github.com/tbourn/go-chat-analytics/internal/similarity"
	"github.com/tbourn/go-chat-analytics/internal/utils"
)

//
// DTOs
//

// UsersResponse lists the selectable senders of a report, Overall first.
type UsersResponse struct {
	Users []string `json:"users"`
}

// ActiveUsersResponse carries the busiest-user ranking and the full
// percentage table.
type ActiveUsersResponse struct {
	Top    []analysis.UserCount `json:"top"`
	Shares []analysis.UserShare `json:"shares"`
}

// WordsResponse is the common-words table for the current selection.
type WordsResponse struct {
	Words []analysis.WordCount `json:"words"`
}

// EmojiResponse is the emoji frequency table for the current selection.
type EmojiResponse struct {
	Emoji []analysis.EmojiCount `json:"emoji"`
}

// TimelineResponse is a message-count timeline, monthly or daily.
type TimelineResponse struct {
	Points []analysis.TimelinePoint `json:"points"`
}

// SimilarityResponse is the full user-to-user similarity matrix.
type SimilarityResponse struct {
	Matrix similarity.Matrix `json:"matrix"`
}

// TopSimilarResponse ranks the users most similar to the selection.
type TopSimilarResponse struct {
	Similar []similarity.UserSimilarity `json:"similar"`
}

// reportID validates the {id} path parameter. Report ids are UUIDs minted by
// the store, so anything else is rejected before touching the service.
func reportID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "report id must be a UUID")
		return "", false
	}
	return id, true
}

// Users godoc
// @ID          listReportUsers
// @Summary     List selectable users of a report
// @Tags        Reports
// @Produce     json
// @Param       id  path  string  true  "Report ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.UsersResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Report not found"
// @Router      /reports/{id}/users [get]
func (h *Handlers) Users(c *gin.Context) {
	id, okID := reportID(c)
	if !okID {
		return
	}
	users, err := h.svc.Users(c.Request.Context(), id)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, UsersResponse{Users: users})
}

// Summary godoc
// @ID          reportSummary
// @Summary     Headline statistics for a selection
// @Tags        Panels
// @Produce     json
// @Param       id    path   string  true   "Report ID (UUID)"  format(uuid)
// @Param       user  query  string  false  "User selection"    default(Overall)
// @Success     200  {object}  analysis.Stats
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or unknown user"
// @Failure     404  {object}  handlers.ErrorResponse  "Report not found"
// @Router      /reports/{id}/summary [get]
func (h *Handlers) Summary(c *gin.Context) {
	id, okID := reportID(c)
	if !okID {
		return
	}
	stats, err := h.svc.Summary(c.Request.Context(), id, selectedUser(c))
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, stats)
}

// ActiveUsers godoc
// @ID          reportActiveUsers
// @Summary     Busiest-user ranking and percentage table
// @Tags        Panels
// @Produce     json
// @Param       id  path  string  true  "Report ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.ActiveUsersResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Report not found"
// @Router      /reports/{id}/active-users [get]
func (h *Handlers) ActiveUsers(c *gin.Context) {
	id, okID := reportID(c)
	if !okID {
		return
	}
	top, shares, err := h.svc.ActiveUsers(c.Request.Context(), id)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, ActiveUsersResponse{Top: top, Shares: shares})
}

// Words godoc
// @ID          reportWords
// @Summary     Most common words for a selection
// @Tags        Panels
// @Produce     json
// @Param       id     path   string  true   "Report ID (UUID)"  format(uuid)
// @Param       user   query  string  false  "User selection"    default(Overall)
// @Param       limit  query  int     false  "Table size"        minimum(1) maximum(100) default(25)
// @Success     200  {object}  handlers.WordsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or unknown user"
// @Failure     404  {object}  handlers.ErrorResponse  "Report not found"
// @Router      /reports/{id}/words [get]
func (h *Handlers) Words(c *gin.Context) {
	id, okID := reportID(c)
	if !okID {
		return
	}
	limit := utils.ClampInt(utils.AtoiDefault(c.Query("limit"), 0), 0, 100)
	words, err := h.svc.Words(c.Request.Context(), id, selectedUser(c), limit)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, WordsResponse{Words: words})
}

// Emoji godoc
// @ID          reportEmoji
// @Summary     Emoji frequency table for a selection
// @Tags        Panels
// @Produce     json
// @Param       id    path   string  true   "Report ID (UUID)"  format(uuid)
// @Param       user  query  string  false  "User selection"    default(Overall)
// @Success     200  {object}  handlers.EmojiResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Report not found"
// @Router      /reports/{id}/emoji [get]
func (h *Handlers) Emoji(c *gin.Context) {
	id, okID := reportID(c)
	if !okID {
		return
	}
	emoji, err := h.svc.Emoji(c.Request.Context(), id, selectedUser(c))
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, EmojiResponse{Emoji: emoji})
}

// MonthlyTimeline godoc
// @ID          reportMonthlyTimeline
// @Summary     Month-by-month message counts for a selection
// @Tags        Panels
// @Produce     json
// @Param       id    path   string  true   "Report ID (UUID)"  format(uuid)
// @Param       user  query  string  false  "User selection"    default(Overall)
// @Success     200  {object}  handlers.TimelineResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Report not found"
// @Router      /reports/{id}/timeline/monthly [get]
func (h *Handlers) MonthlyTimeline(c *gin.Context) {
	id, okID := reportID(c)
	if !okID {
		return
	}
	points, err := h.svc.MonthlyTimeline(c.Request.Context(), id, selectedUser(c))
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, TimelineResponse{Points: points})
}

// DailyTimeline godoc
// @ID          reportDailyTimeline
// @Summary     Day-by-day message counts for a selection
// @Tags        Panels
// @Produce     json
// @Param       id    path   string  true   "Report ID (UUID)"  format(uuid)
// @Param       user  query  string  false  "User selection"    default(Overall)
// @Success     200  {object}  handlers.TimelineResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Report not found"
// @Router      /reports/{id}/timeline/daily [get]
func (h *Handlers) DailyTimeline(c *gin.Context) {
	id, okID := reportID(c)
	if !okID {
		return
	}
	points, err := h.svc.DailyTimeline(c.Request.Context(), id, selectedUser(c))
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, TimelineResponse{Points: points})
}

// Activity godoc
// @ID          reportActivity
// @Summary     Weekday table, month table, and weekly heatmap for a selection
// @Tags        Panels
// @Produce     json
// @Param       id    path   string  true   "Report ID (UUID)"  format(uuid)
// @Param       user  query  string  false  "User selection"    default(Overall)
// @Success     200  {object}  services.Activity
// @Failure     404  {object}  handlers.ErrorResponse  "Report not found"
// @Router      /reports/{id}/activity [get]
func (h *Handlers) Activity(c *gin.Context) {
	id, okID := reportID(c)
	if !okID {
		return
	}
	act, err := h.svc.Activity(c.Request.Context(), id, selectedUser(c))
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, act)
}

// Sentiment godoc
// @ID          reportSentiment
// @Summary     Per-user sentiment scores and selection summary
// @Tags        Panels
// @Produce     json
// @Param       id    path   string  true   "Report ID (UUID)"  format(uuid)
// @Param       user  query  string  false  "User selection"    default(Overall)
// @Success     200  {object}  services.Sentiment
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or unknown user"
// @Failure     404  {object}  handlers.ErrorResponse  "Report not found"
// @Router      /reports/{id}/sentiment [get]
func (h *Handlers) Sentiment(c *gin.Context) {
	id, okID := reportID(c)
	if !okID {
		return
	}
	sent, err := h.svc.Sentiment(c.Request.Context(), id, selectedUser(c))
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, sent)
}

// Similarity godoc
// @ID          reportSimilarity
// @Summary     Full user-to-user similarity matrix
// @Tags        Panels
// @Produce     json
// @Param       id  path  string  true  "Report ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.SimilarityResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Report not found"
// @Router      /reports/{id}/similarity [get]
func (h *Handlers) Similarity(c *gin.Context) {
	id, okID := reportID(c)
	if !okID {
		return
	}
	m, err := h.svc.Similarity(c.Request.Context(), id)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, SimilarityResponse{Matrix: m})
}

// TopSimilar godoc
// @ID          reportTopSimilar
// @Summary     Users most similar to the selection
// @Tags        Panels
// @Produce     json
// @Param       id    path   string  true  "Report ID (UUID)"  format(uuid)
// @Param       user  query  string  true  "User selection (must be a specific sender)"
// @Success     200  {object}  handlers.TopSimilarResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Report not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Similarity unavailable for selection"
// @Router      /reports/{id}/similarity/top [get]
func (h *Handlers) TopSimilar(c *gin.Context) {
	id, okID := reportID(c)
	if !okID {
		return
	}
	top, err := h.svc.TopSimilar(c.Request.Context(), id, selectedUser(c))
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, TopSimilarResponse{Similar: top})
}

// compile-time check that the real service satisfies the handler interface.
var _ ReportService = (*services.AnalysisService)(nil)
