// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they validate and normalize inputs, delegate
// to the application service, and translate service errors into stable HTTP
// error envelopes. All analysis semantics live below the service boundary.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-chat-analytics/internal/analysis"
	"github.com/tbourn/go-chat-analytics/internal/domain"
	"github.com/tbourn/go-chat-analytics/internal/services"
	"github.com/tbourn/go-chat-analytics/internal/session"
	"github.com/tbourn/go-chat-analytics/internal/similarity"
)

// ReportService is the application-service surface the handlers depend on.
// *services.AnalysisService satisfies it; tests may substitute fakes.
type ReportService interface {
	CreateReport(ctx context.Context, raw string) (*session.Report, error)
	Users(ctx context.Context, reportID string) ([]string, error)
	Summary(ctx context.Context, reportID, user string) (analysis.Stats, error)
	ActiveUsers(ctx context.Context, reportID string) ([]analysis.UserCount, []analysis.UserShare, error)
	Words(ctx context.Context, reportID, user string, limit int) ([]analysis.WordCount, error)
	Emoji(ctx context.Context, reportID, user string) ([]analysis.EmojiCount, error)
	MonthlyTimeline(ctx context.Context, reportID, user string) ([]analysis.TimelinePoint, error)
	DailyTimeline(ctx context.Context, reportID, user string) ([]analysis.TimelinePoint, error)
	Activity(ctx context.Context, reportID, user string) (services.Activity, error)
	Sentiment(ctx context.Context, reportID, user string) (services.Sentiment, error)
	Similarity(ctx context.Context, reportID string) (similarity.Matrix, error)
	TopSimilar(ctx context.Context, reportID, user string) ([]similarity.UserSimilarity, error)
}

// Handlers bundles the endpoint implementations around one report service.
type Handlers struct {
	svc ReportService
}

// New constructs a Handlers instance bound to the given service.
func New(svc ReportService) *Handlers {
	return &Handlers{svc: svc}
}

// selectedUser reads the ?user= query parameter, defaulting to the Overall
// sentinel when absent.
func selectedUser(c *gin.Context) string {
	u := c.Query("user")
	if u == "" {
		return domain.OverallUser
	}
	return u
}

// failFromService translates service-layer sentinel errors into HTTP error
// envelopes. Unrecognized errors become opaque 500s.
func failFromService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReportNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "report not found")
	case errors.Is(err, services.ErrUnknownUser):
		fail(c, http.StatusBadRequest, ErrCodeUnknownUser, "unknown user selection")
	case errors.Is(err, services.ErrSimilarityUnavailable):
		fail(c, http.StatusUnprocessableEntity, ErrCodeSimilarityUnavailable,
			"similarity ranking needs a specific user with scored messages")
	case errors.Is(err, services.ErrEmptyTranscript):
		fail(c, http.StatusUnprocessableEntity, ErrCodeEmptyTranscript,
			"transcript contains no parseable messages")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
