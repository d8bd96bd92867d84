package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"orarctl/pkg/exporter"
	"orarctl/pkg/scraper"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// GroupNotFoundResponse also lists the groups that can be requested.
type GroupNotFoundResponse struct {
	Detail          string   `json:"detail"`
	AvailableGroups []string `json:"available_groups"`
}

// HealthStatus is served by /healthz.
type HealthStatus struct {
	Status      string    `json:"status"`
	CachedPages int       `json:"cached_pages"`
	CheckedAt   time.Time `json:"checked_at"`
}

func (s *server) catalogHandler(c *gin.Context) {
	entries, err := s.client.ListCatalog()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *server) allSchedulesHandler(c *gin.Context) {
	schedules, err := s.client.AllSchedules()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func (s *server) scheduleHandler(c *gin.Context) {
	schedule, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (s *server) calendarHandler(c *gin.Context) {
	schedule, ok := s.lookup(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if _, err := exporter.GenerateICS([]scraper.GroupSchedule{schedule}, s.export, &buf); err != nil {
		s.fail(c, fmt.Errorf("failed to render calendar: %w", err))
		return
	}

	filename := strings.ReplaceAll(strings.ToLower(schedule.GroupName), " ", "-") + ".ics"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (s *server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{
		Status:      "ok",
		CachedPages: s.client.Cache().Len(),
		CheckedAt:   time.Now().UTC(),
	})
}

// lookup resolves the group query parameter, writing the error response itself.
func (s *server) lookup(c *gin.Context) (scraper.GroupSchedule, bool) {
	group := c.Query("group")
	if group == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Query parameter 'group' is required."})
		return scraper.GroupSchedule{}, false
	}

	schedule, err := s.client.FindSchedule(group)
	if err != nil {
		s.fail(c, err)
		return scraper.GroupSchedule{}, false
	}
	return schedule, true
}

// fail maps scraper errors onto HTTP statuses.
func (s *server) fail(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		requestLogger(c, s.log).Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, body)
}

func errorResponse(err error) (int, any) {
	var notFound *scraper.NotFoundError
	var fetch *scraper.FetchError

	switch {
	case errors.As(err, &notFound):
		if notFound.Kind != scraper.KindGroup {
			return http.StatusNotFound, ErrorResponse{Detail: notFound.Error()}
		}
		available := notFound.Available
		if available == nil {
			available = []string{}
		}
		return http.StatusNotFound, GroupNotFoundResponse{Detail: notFound.Error(), AvailableGroups: available}
	case errors.Is(err, scraper.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Detail: err.Error()}
	case errors.Is(err, scraper.ErrShapeMismatch):
		return http.StatusBadGateway, ErrorResponse{Detail: "The timetable page has an unexpected layout."}
	case errors.As(err, &fetch):
		return http.StatusBadGateway, ErrorResponse{Detail: "The timetable site could not be reached."}
	default:
		return http.StatusInternalServerError, ErrorResponse{Detail: "Internal Server Error"}
	}
}
