package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"

	"github.com/404Health/universal-dataCleaner/internal/cleaning"
	"github.com/404Health/universal-dataCleaner/internal/config"
	"github.com/404Health/universal-dataCleaner/internal/dataset"
)

// ErrLoad wraps input parsing failures so transports can map them to
// client errors.
var ErrLoad = errors.New("failed to load input")

// Run holds the result of one cleaning invocation, retained for preview
// and download.
type Run struct {
	ID         string
	FileName   string
	Original   *dataset.Table
	Cleaned    *dataset.Table
	Report     *cleaning.Report
	Comparison []cleaning.MissingComparison
	Options    cleaning.Options
	CreatedAt  time.Time
}

// cacheKey identifies a whole run by input bytes and configuration.
type cacheKey struct {
	dataHash uint64
	options  string
}

// CleanService loads uploads, runs the cleaning pipeline, and retains a
// bounded number of results. Whole runs are memoized by input hash plus
// configuration, so re-submitting the same file with the same settings
// returns the prior result without recomputation.
type CleanService struct {
	logger   *slog.Logger
	defaults cleaning.Options
	maxRuns  int

	mu       sync.Mutex
	runs     map[string]*Run
	runOrder []string
	cache    map[cacheKey]string
}

// NewCleanService creates a clean service with defaults taken from
// configuration.
func NewCleanService(cfg config.CleaningConfig, logger *slog.Logger) *CleanService {
	return &CleanService{
		logger: logger.With(slog.String("component", "clean_service")),
		defaults: cleaning.Options{
			FillStrategy:       cleaning.FillStrategy(cfg.FillStrategy),
			ApplyOutliers:      cfg.ApplyOutliers,
			OutlierMethod:      cleaning.OutlierMethod(cfg.OutlierMethod),
			OutlierThreshold:   cfg.OutlierThreshold,
			OutlierReplacement: cleaning.Replacement(cfg.OutlierReplacement),
		},
		maxRuns: cfg.MaxCachedRuns,
		runs:    make(map[string]*Run),
		cache:   make(map[cacheKey]string),
	}
}

// DefaultOptions returns the configured pipeline defaults.
func (s *CleanService) DefaultOptions() cleaning.Options {
	return s.defaults
}

// CleanFile parses the uploaded bytes and runs the cleaning pipeline.
func (s *CleanService) CleanFile(ctx context.Context, name string, data []byte, opts cleaning.Options) (*Run, error) {
	key := cacheKey{dataHash: xxh3.Hash(data), options: optionsKey(opts)}
	if run, ok := s.cachedRun(key); ok {
		cleanCacheHitsTotal.Inc()
		s.logger.InfoContext(ctx, "Serving cleaning run from cache",
			slog.String("run_id", run.ID),
			slog.String("file", name))
		return run, nil
	}

	start := time.Now()
	table, err := dataset.Load(name, data)
	if err != nil {
		cleanRunsTotal.WithLabelValues("load_error").Inc()
		return nil, fmt.Errorf("%w: %s", ErrLoad, err)
	}

	cleaned, report, err := cleaning.Clean(table, opts)
	if err != nil {
		cleanRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("cleaning %s: %w", name, err)
	}

	run := &Run{
		ID:         uuid.NewString(),
		FileName:   name,
		Original:   table,
		Cleaned:    cleaned,
		Report:     report,
		Comparison: cleaning.CompareMissing(table, cleaned),
		Options:    opts,
		CreatedAt:  time.Now(),
	}
	s.store(key, run)

	cleanRunsTotal.WithLabelValues("ok").Inc()
	cleanDuration.Observe(time.Since(start).Seconds())
	s.logger.InfoContext(ctx, "Cleaning run completed",
		slog.String("run_id", run.ID),
		slog.String("file", name),
		slog.Int("rows_in", table.NumRows()),
		slog.Int("rows_out", cleaned.NumRows()),
		slog.Duration("duration", time.Since(start)))

	return run, nil
}

// Run returns a retained run by ID.
func (s *CleanService) Run(id string) (*Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	return run, ok
}

// ExportCSV serializes a run's cleaned table as CSV with a UTF-8 BOM.
func (s *CleanService) ExportCSV(run *Run) ([]byte, error) {
	return dataset.WriteCSV(run.Cleaned, dataset.WriteOptions{BOMPrefix: true})
}

// ExportXLSX serializes a run's cleaned table as an Excel workbook.
func (s *CleanService) ExportXLSX(run *Run) ([]byte, error) {
	return dataset.WriteXLSX(run.Cleaned)
}

func (s *CleanService) cachedRun(key cacheKey) (*Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	run, ok := s.runs[id]
	return run, ok
}

// store retains the run, evicting the oldest once the bound is reached.
func (s *CleanService) store(key cacheKey, run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.runOrder) >= s.maxRuns {
		oldest := s.runOrder[0]
		s.runOrder = s.runOrder[1:]
		delete(s.runs, oldest)
		for k, id := range s.cache {
			if id == oldest {
				delete(s.cache, k)
			}
		}
	}

	s.runs[run.ID] = run
	s.runOrder = append(s.runOrder, run.ID)
	s.cache[key] = run.ID
}

// optionsKey canonically encodes options for cache lookup. Categorical
// columns are order-insensitive.
func optionsKey(opts cleaning.Options) string {
	cats := append([]string(nil), opts.CategoricalColumns...)
	sort.Strings(cats)
	return fmt.Sprintf("%s|%t|%s|%g|%s|%s",
		opts.FillStrategy, opts.ApplyOutliers, opts.OutlierMethod,
		opts.OutlierThreshold, opts.OutlierReplacement, strings.Join(cats, ","))
}
