// Transcript upload handler.
//
// This file exposes the endpoint that turns an exported chat log into an
// analysis report:
//   - POST /reports  (multipart "file" field, or a raw text body)
//
// The parsed report lives in the in-memory store until its TTL passes; the
// response carries the report id the dashboard uses for every panel request.
package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-chat-analytics/internal/domain"
	"github.com/tbourn/go-chat-analytics/internal/http/middleware"
)

//
// DTOs
//

// CreateReportResponse is the JSON envelope for a freshly parsed report.
type CreateReportResponse struct {
	// ID identifies the report in subsequent panel requests.
	ID string `json:"id" example:"7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab"`
	// Messages is the number of parsed message records.
	Messages int `json:"messages" example:"4821"`
	// SkippedLines counts records dropped for malformed timestamps.
	SkippedLines int `json:"skipped_lines" example:"3"`
	// Users lists the selectable senders, Overall first, so the dashboard
	// can populate its selector without a second request.
	Users []string `json:"users"`
	// CreatedAt is the report creation time in UTC.
	CreatedAt time.Time `json:"created_at"`
}

// readTranscript extracts the raw chat export from the request: a multipart
// "file" part when present, otherwise the request body verbatim.
func readTranscript(c *gin.Context) (string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return "", err
		}
		f, err := fh.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		b, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateReport godoc
// @ID          createReport
// @Summary     Upload a chat export and create an analysis report
// @Description Parses an exported chat log (multipart "file" field or raw text body)
// @Description into an in-memory report and returns its id for panel queries.
// @Tags        Reports
// @Accept      mpfd
// @Accept      plain
// @Produce     json
//
// @Param       file  formData  file  false  "Exported chat log (.txt)"
//
// @Success     201  {object}  handlers.CreateReportResponse  "Report created"
// @Failure     400  {object}  handlers.ErrorResponse         "Upload could not be read"
// @Failure     413  {object}  handlers.ErrorResponse         "Upload exceeds size limit"
// @Failure     422  {object}  handlers.ErrorResponse         "No parseable messages"
// @Router      /reports [post]
func (h *Handlers) CreateReport(c *gin.Context) {
	ctx := c.Request.Context()

	raw, err := readTranscript(c)
	if err != nil {
		// MaxBytesReader surfaces oversized chunked uploads as read errors.
		if strings.Contains(err.Error(), "request body too large") {
			fail(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
				"upload exceeds the size limit")
			return
		}
		fail(c, http.StatusBadRequest, ErrCodeUploadFailed, "could not read upload")
		return
	}
	if strings.TrimSpace(raw) == "" {
		fail(c, http.StatusBadRequest, ErrCodeUploadFailed, "empty upload")
		return
	}

	r, err := h.svc.CreateReport(ctx, raw)
	if err != nil {
		failFromService(c, err)
		return
	}

	middleware.ReportsCreated.Inc()
	middleware.UploadBytes.Observe(float64(len(raw)))
	middleware.LoggerFrom(c).Info().
		Str("report_id", r.ID).
		Int("messages", len(r.Messages)).
		Int("skipped_lines", r.SkippedLines).
		Msg("report created")

	ok(c, http.StatusCreated, CreateReportResponse{
		ID:           r.ID,
		Messages:     len(r.Messages),
		SkippedLines: r.SkippedLines,
		Users:        append([]string{domain.OverallUser}, r.Messages.Senders()...),
		CreatedAt:    r.CreatedAt,
	})
}
