// Package services – AnalysisService
//
// This file implements AnalysisService, the application-level component that
// owns the analysis pipeline: it parses uploads into the report store,
// validates report ids and user selections, and delegates to the pure
// engines (analysis, sentiment, similarity) for every dashboard panel.
//
// All derived tables are recomputed from the stored collection on every
// call; the only state the service holds across requests is the parsed
// transcript itself and the startup-loaded resources (stop-word sets and
// the sentiment analyzer), all read-only after construction.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the report id and user selection.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-chat-analytics/internal/analysis"
	"github.com/tbourn/go-chat-analytics/internal/chatlog"
	"github.com/tbourn/go-chat-analytics/internal/domain"
	"github.com/tbourn/go-chat-analytics/internal/sentiment"
	"github.com/tbourn/go-chat-analytics/internal/session"
	"github.com/tbourn/go-chat-analytics/internal/similarity"
	"github.com/tbourn/go-chat-analytics/internal/stopwords"
)

// Activity bundles the three activity panels computed from one selection.
type Activity struct {
	Weekdays []analysis.NamedCount `json:"weekdays"`
	Months   []analysis.NamedCount `json:"months"`
	Heatmap  analysis.Heatmap      `json:"heatmap"`
}

// Sentiment bundles the full per-user score table with the distribution for
// the current selection.
type Sentiment struct {
	Users   []sentiment.UserScore `json:"users"`
	Summary sentiment.Summary     `json:"summary"`
}

// AnalysisService coordinates transcript parsing and metric computation.
// All fields are set once at startup and treated as read-only afterwards;
// the service is safe for concurrent use.
type AnalysisService struct {
	// Store holds parsed reports between requests.
	Store *session.Store
	// Stopwords backs the common-words table (language-specific list).
	Stopwords stopwords.Set
	// EnglishStopwords backs the similarity engine's normalization pass.
	EnglishStopwords stopwords.Set
	// Scorer is the shared VADER sentiment analyzer.
	Scorer *sentiment.Scorer
	// WordLimit is the default common-words table size.
	WordLimit int
}

// NewAnalysisService constructs an AnalysisService with the given startup
// resources.
func NewAnalysisService(store *session.Store, stop, englishStop stopwords.Set, scorer *sentiment.Scorer, wordLimit int) *AnalysisService {
	if wordLimit <= 0 {
		wordLimit = analysis.DefaultWordLimit
	}
	return &AnalysisService{
		Store:            store,
		Stopwords:        stop,
		EnglishStopwords: englishStop,
		Scorer:           scorer,
		WordLimit:        wordLimit,
	}
}

// CreateReport parses a raw transcript and stores the result. It returns
// ErrEmptyTranscript when no record parses, so a bogus upload never creates
// an empty report.
func (s *AnalysisService) CreateReport(ctx context.Context, raw string) (*session.Report, error) {
	_, span := s.span(ctx, "CreateReport")
	defer span.End()

	msgs, skipped := chatlog.Parse(raw)
	if len(msgs) == 0 {
		return nil, ErrEmptyTranscript
	}
	r := s.Store.Put(msgs, skipped)
	span.SetAttributes(
		attribute.String("report.id", r.ID),
		attribute.Int("report.messages", len(msgs)),
		attribute.Int("report.skipped", skipped),
	)
	return r, nil
}

// Users returns the selectable sender list for a report, Overall first.
func (s *AnalysisService) Users(ctx context.Context, reportID string) ([]string, error) {
	_, span := s.span(ctx, "Users", attribute.String("report.id", reportID))
	defer span.End()

	msgs, err := s.collection(reportID, domain.OverallUser)
	if err != nil {
		return nil, err
	}
	return append([]string{domain.OverallUser}, msgs.Senders()...), nil
}

// Summary returns the headline statistics for a selection.
func (s *AnalysisService) Summary(ctx context.Context, reportID, user string) (analysis.Stats, error) {
	_, span := s.span(ctx, "Summary", selectionAttrs(reportID, user)...)
	defer span.End()

	msgs, err := s.collection(reportID, user)
	if err != nil {
		return analysis.Stats{}, err
	}
	return analysis.ComputeStats(user, msgs), nil
}

// ActiveUsers returns the busiest-user ranking and full percentage table.
func (s *AnalysisService) ActiveUsers(ctx context.Context, reportID string) ([]analysis.UserCount, []analysis.UserShare, error) {
	_, span := s.span(ctx, "ActiveUsers", attribute.String("report.id", reportID))
	defer span.End()

	msgs, err := s.collection(reportID, domain.OverallUser)
	if err != nil {
		return nil, nil, err
	}
	top, shares := analysis.MostActiveUsers(msgs)
	return top, shares, nil
}

// Words returns the common-words table for a selection. limit <= 0 falls
// back to the service default.
func (s *AnalysisService) Words(ctx context.Context, reportID, user string, limit int) ([]analysis.WordCount, error) {
	_, span := s.span(ctx, "Words", selectionAttrs(reportID, user)...)
	defer span.End()

	msgs, err := s.collection(reportID, user)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.WordLimit
	}
	return analysis.MostCommonWords(user, msgs, s.Stopwords, limit), nil
}

// Emoji returns the emoji frequency table for a selection.
func (s *AnalysisService) Emoji(ctx context.Context, reportID, user string) ([]analysis.EmojiCount, error) {
	_, span := s.span(ctx, "Emoji", selectionAttrs(reportID, user)...)
	defer span.End()

	msgs, err := s.collection(reportID, user)
	if err != nil {
		return nil, err
	}
	return analysis.MostCommonEmoji(user, msgs), nil
}

// MonthlyTimeline returns the month-by-month message counts for a selection.
func (s *AnalysisService) MonthlyTimeline(ctx context.Context, reportID, user string) ([]analysis.TimelinePoint, error) {
	_, span := s.span(ctx, "MonthlyTimeline", selectionAttrs(reportID, user)...)
	defer span.End()

	msgs, err := s.collection(reportID, user)
	if err != nil {
		return nil, err
	}
	return analysis.MonthlyTimeline(user, msgs), nil
}

// DailyTimeline returns the day-by-day message counts for a selection.
func (s *AnalysisService) DailyTimeline(ctx context.Context, reportID, user string) ([]analysis.TimelinePoint, error) {
	_, span := s.span(ctx, "DailyTimeline", selectionAttrs(reportID, user)...)
	defer span.End()

	msgs, err := s.collection(reportID, user)
	if err != nil {
		return nil, err
	}
	return analysis.DailyTimeline(user, msgs), nil
}

// Activity returns the weekday table, month table, and weekly heatmap for a
// selection.
func (s *AnalysisService) Activity(ctx context.Context, reportID, user string) (Activity, error) {
	_, span := s.span(ctx, "Activity", selectionAttrs(reportID, user)...)
	defer span.End()

	msgs, err := s.collection(reportID, user)
	if err != nil {
		return Activity{}, err
	}
	return Activity{
		Weekdays: analysis.ActivityByWeekday(user, msgs),
		Months:   analysis.ActivityByMonth(user, msgs),
		Heatmap:  analysis.WeeklyHeatmap(user, msgs),
	}, nil
}

// Sentiment scores every message, aggregates per user, and summarizes the
// current selection.
func (s *AnalysisService) Sentiment(ctx context.Context, reportID, user string) (Sentiment, error) {
	_, span := s.span(ctx, "Sentiment", selectionAttrs(reportID, user)...)
	defer span.End()

	msgs, err := s.collection(reportID, user)
	if err != nil {
		return Sentiment{}, err
	}
	rows := s.Scorer.ScoreByUser(msgs)
	summary, err := sentiment.Summarize(user, rows)
	if err != nil {
		if errors.Is(err, sentiment.ErrUserNotScored) {
			return Sentiment{}, ErrUnknownUser
		}
		return Sentiment{}, err
	}
	return Sentiment{Users: rows, Summary: summary}, nil
}

// Similarity builds the full user-to-user similarity matrix for a report.
func (s *AnalysisService) Similarity(ctx context.Context, reportID string) (similarity.Matrix, error) {
	_, span := s.span(ctx, "Similarity", attribute.String("report.id", reportID))
	defer span.End()

	msgs, err := s.collection(reportID, domain.OverallUser)
	if err != nil {
		return similarity.Matrix{}, err
	}
	return similarity.Build(msgs, s.EnglishStopwords), nil
}

// TopSimilar ranks the users most similar to the selected one. Requests for
// the Overall sentinel or for a sender missing from the matrix surface
// ErrSimilarityUnavailable rather than an index error.
func (s *AnalysisService) TopSimilar(ctx context.Context, reportID, user string) ([]similarity.UserSimilarity, error) {
	_, span := s.span(ctx, "TopSimilar", selectionAttrs(reportID, user)...)
	defer span.End()

	msgs, err := s.collection(reportID, user)
	if err != nil {
		return nil, err
	}
	m := similarity.Build(msgs, s.EnglishStopwords)
	top, err := similarity.TopSimilar(m, user)
	if err != nil {
		return nil, ErrSimilarityUnavailable
	}
	return top, nil
}

// collection resolves a report id and validates the user selection. The
// full collection is always returned; per-operation filtering happens in
// the engines so Overall aggregates stay correct.
func (s *AnalysisService) collection(reportID, user string) (domain.Collection, error) {
	r, ok := s.Store.Get(reportID)
	if !ok {
		return nil, ErrReportNotFound
	}
	if !r.Messages.HasSender(user) {
		return nil, ErrUnknownUser
	}
	return r.Messages, nil
}

// span starts an OpenTelemetry span for a service method.
func (s *AnalysisService) span(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tr := otel.Tracer("services/AnalysisService")
	return tr.Start(ctx, name, trace.WithAttributes(attrs...))
}

// selectionAttrs builds the common span attributes for (report, user).
func selectionAttrs(reportID, user string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("report.id", reportID),
		attribute.String("report.user", user),
	}
}
