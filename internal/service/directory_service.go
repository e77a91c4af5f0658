package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tapovan/attendance-api/internal/models"
	"github.com/tapovan/attendance-api/pkg/config"
)

// DirectoryService fetches student identity records from the external
// registry. Enrichment is best effort: every failure path returns an empty
// map so callers render fallback identity fields instead of erroring.
type DirectoryService struct {
	baseURL string
	client  *http.Client
	metrics *MetricsService
	logger  *zap.Logger
}

// NewDirectoryService constructs a directory client with a bounded timeout.
func NewDirectoryService(cfg config.DirectoryConfig, metrics *MetricsService, logger *zap.Logger) *DirectoryService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &DirectoryService{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		metrics: metrics,
		logger:  logger,
	}
}

// FetchBatch resolves the given student ids in a single outbound call and
// returns the results keyed by id. Ids absent from the response are simply
// missing from the map.
func (s *DirectoryService) FetchBatch(ctx context.Context, studentIDs []int64) map[int64]models.Student {
	if len(studentIDs) == 0 {
		return map[int64]models.Student{}
	}

	parts := make([]string, len(studentIDs))
	for i, id := range studentIDs {
		parts[i] = strconv.FormatInt(id, 10)
	}
	url := fmt.Sprintf("%s/students/batch?ids=%s", s.baseURL, strings.Join(parts, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return s.degrade("build_request", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return s.degrade("request_failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return s.degrade("bad_status", fmt.Errorf("directory returned %d", resp.StatusCode))
	}

	var students []models.Student
	if err := json.NewDecoder(resp.Body).Decode(&students); err != nil {
		return s.degrade("malformed_payload", err)
	}

	lookup := make(map[int64]models.Student, len(students))
	for _, student := range students {
		lookup[student.ID] = student
	}
	if s.metrics != nil {
		s.metrics.RecordDirectoryLookup("ok")
	}
	return lookup
}

func (s *DirectoryService) degrade(outcome string, err error) map[int64]models.Student {
	if s.metrics != nil {
		s.metrics.RecordDirectoryLookup(outcome)
	}
	if s.logger != nil {
		s.logger.Warn("student directory lookup failed", zap.String("outcome", outcome), zap.Error(err))
	}
	return map[int64]models.Student{}
}
