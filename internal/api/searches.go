package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/nutriscope/backend/internal/activity"
	"github.com/pageza/nutriscope/backend/internal/logger"
	"github.com/pageza/nutriscope/backend/internal/metrics"
	"github.com/pageza/nutriscope/backend/internal/middleware"
	"github.com/pageza/nutriscope/backend/internal/models"
	"github.com/pageza/nutriscope/backend/internal/search"
)

const htmlContentType = "text/html; charset=utf-8"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Status(http.StatusInternalServerError)
	c.Abort()
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// searches runs the bookkeeping shared by every search endpoint: supersession,
// activity recording and the searches counter
type searches struct {
	tracker  *search.Tracker
	activity activity.Recorder
	metrics  *metrics.Metrics
}

// run is one search in flight
type run struct {
	Ctx   context.Context
	Token search.Token
	kind  search.Kind
	query string
	start time.Time
}

// begin starts a search for the request's session and page load. When the
// client's sequence number is older than one already seen for that page load it
// answers superseded and returns false.
func (s *searches) begin(c *gin.Context, kind search.Kind, query string) (*run, bool) {
	seq, err := strconv.ParseInt(c.GetHeader(search.SeqHeader), 10, 64)
	if err != nil || seq < 0 {
		seq = 0
	}

	ctx, tok, err := s.tracker.Begin(c.Request.Context(), middleware.SessionID(c), pageID(c), kind, seq)
	r := &run{Ctx: ctx, Token: tok, kind: kind, query: query, start: time.Now()}
	if err != nil {
		s.superseded(c, r)
		return nil, false
	}
	return r, true
}

// finish ends r. A search superseded while it ran is answered with 204 and
// false is returned; the caller must then drop its result.
func (s *searches) finish(c *gin.Context, r *run) bool {
	if err := s.tracker.Finish(r.Token); err != nil {
		s.superseded(c, r)
		return false
	}
	return true
}

// stale answers superseded when err says a newer search took over
func (s *searches) stale(c *gin.Context, r *run, err error) bool {
	if errors.Is(err, search.ErrStale) {
		s.superseded(c, r)
		return true
	}
	return false
}

func (s *searches) superseded(c *gin.Context, r *run) {
	s.record(c, r, models.OutcomeSuperseded, 0)
	c.Header(search.SupersededHeader, "true")
	c.Status(http.StatusNoContent)
}

// record logs the search in the activity log and counts it
func (s *searches) record(c *gin.Context, r *run, outcome string, count int) {
	s.metrics.SearchesTotal.WithLabelValues(string(r.kind), outcome).Inc()

	event := activity.NewEvent(middleware.SessionID(c), string(r.kind), r.query, r.start)
	event.Outcome = outcome
	event.ResultCount = count

	// Recorded even when the client has gone away
	ctx := context.WithoutCancel(c.Request.Context())
	if err := s.activity.Record(ctx, event); err != nil {
		logger.FromContext(c.Request.Context()).Warn("Failed to record search activity",
			zap.String("kind", string(r.kind)),
			zap.Error(err),
		)
	}
}

// pageID returns the page load id the client sent, or "" when it is missing or
// not one this server issued
func pageID(c *gin.Context) string {
	id, err := uuid.Parse(c.GetHeader(search.PageHeader))
	if err != nil {
		return ""
	}
	return id.String()
}

func outcomeFor(count int) string {
	if count == 0 {
		return models.OutcomeEmpty
	}
	return models.OutcomeResults
}
