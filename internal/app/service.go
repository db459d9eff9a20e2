// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/moniker/internal/adapters/llm"
	jobqueue "github.com/okian/moniker/internal/adapters/mq/queue"
	workerpool "github.com/okian/moniker/internal/adapters/mq/worker"
	"github.com/okian/moniker/internal/adapters/repository"
	"github.com/okian/moniker/internal/domain/dataset"
	"github.com/okian/moniker/internal/domain/dedupe"
	"github.com/okian/moniker/internal/domain/generate"
	"github.com/okian/moniker/internal/domain/match"
	"github.com/okian/moniker/internal/domain/model"
	"github.com/okian/moniker/internal/domain/review"
	"github.com/okian/moniker/pkg/logger"
	"github.com/okian/moniker/pkg/metrics"
)

// batchState tracks the per-name progress of one batch.
type batchState struct {
	total     int
	completed int
	// items keyed by job id, order preserves enqueue order.
	items map[string]*model.BatchItem
	order []string
}

// Service implements the API dependencies for the username
// recommendation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	dataset   *dataset.Dataset
	matcher   *match.Matcher
	generator *generate.Generator
	reviewer  *review.Reviewer
	store     repository.Store
	llmClient *llm.Client
	jobQueue  *jobqueue.InMemoryQueue
	pool      *workerpool.Pool
	tracker   dedupe.Tracker

	// Batch bookkeeping
	batchMu sync.RWMutex
	batches map[string]*batchState

	// Configuration
	datasetPath     string
	dbPath          string
	topK            int
	cacheSize       int
	resolveMethod   model.Method
	minCandidates   int
	maxCandidates   int
	suggestionCount int
	llmBaseURL      string
	llmModel        string
	workerCount     int
	queueSize       int
	dedupeSize      int
	seedUsernames   int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatasetPath sets the path of the reference name table.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.datasetPath = path
		}
	}
}

// WithDBPath sets the path of the username database.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithTopK sets the per-column top-k count used during resolution.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithCacheSize bounds the matcher's memoization cache.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithResolveMethod sets the similarity metric used by resolution.
func WithResolveMethod(m model.Method) Option {
	return func(s *Service) {
		if m.Valid() {
			s.resolveMethod = m
		}
	}
}

// WithCandidateRange bounds the generated candidate set.
func WithCandidateRange(minCount, maxCount int) Option {
	return func(s *Service) {
		if minCount > 0 && maxCount >= minCount {
			s.minCandidates = minCount
			s.maxCandidates = maxCount
		}
	}
}

// WithSuggestionCount sets how many usernames a suggestion returns.
func WithSuggestionCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.suggestionCount = count
		}
	}
}

// WithLLMBaseURL points the chat client at an OpenAI-compatible endpoint.
func WithLLMBaseURL(url string) Option {
	return func(s *Service) {
		s.llmBaseURL = url
	}
}

// WithLLMModel names the chat model.
func WithLLMModel(m string) Option {
	return func(s *Service) {
		if m != "" {
			s.llmModel = m
		}
	}
}

// WithWorkerCount sets the number of batch pipeline workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the batch job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the duplicate name tracker.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithSeedUsernames sets how many usernames a fresh database is seeded with.
func WithSeedUsernames(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.seedUsernames = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		datasetPath:     "data/names.csv",
		dbPath:          "usernames.db",
		topK:            3,
		cacheSize:       1024,
		resolveMethod:   model.Levenshtein,
		minCandidates:   10,
		maxCandidates:   12,
		suggestionCount: 3,
		llmModel:        "gpt-4.1-nano",
		workerCount:     runtime.NumCPU() * 2,
		queueSize:       10_000,
		dedupeSize:      50_000,
		seedUsernames:   200,
		batches:         make(map[string]*batchState),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting username service...")

	ds, err := dataset.Load(s.datasetPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	s.dataset = ds
	metrics.UpdateDatasetRows(ds.Len())

	store, err := repository.Open(s.dbPath, repository.WithSeedCount(s.seedUsernames))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	s.store = store

	s.llmClient = llm.New(
		llm.WithBaseURL(s.llmBaseURL),
		llm.WithModel(s.llmModel),
	)
	if !s.llmClient.Enabled() {
		s.logger.Warn(ctx, "chat model disabled, running offline generation and heuristic review")
	}

	matcher, err := match.New(ds,
		match.WithTopK(s.topK),
		match.WithCacheSize(s.cacheSize),
		match.WithResolveMethod(s.resolveMethod),
	)
	if err != nil {
		return fmt.Errorf("build matcher: %w", err)
	}
	s.matcher = matcher

	s.generator = generate.New(
		generate.WithCompleter(s.llmClient),
		generate.WithCandidateRange(s.minCandidates, s.maxCandidates),
	)
	s.reviewer = review.New(store,
		review.WithCompleter(s.llmClient),
		review.WithSuggestionCount(s.suggestionCount),
	)

	s.tracker = dedupe.NewInMemoryTracker(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
	)
	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s, s)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "username service started",
		logger.Int("datasetRows", ds.Len()),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.String("resolveMethod", s.resolveMethod.String()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping username service...")

	if s.jobQueue != nil {
		_ = s.jobQueue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}
	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "username service stopped")
}

// Suggest runs the full pipeline for one name: resolve, generate,
// review.
func (s *Service) Suggest(ctx context.Context, name string) (model.Suggestion, error) {
	start := time.Now()

	m, err := s.matcher.Resolve(ctx, name)
	if err != nil {
		metrics.RecordErrorByComponent("service", "resolve_error")
		return model.Suggestion{}, fmt.Errorf("resolve %q: %w", name, err)
	}

	candidates := s.generator.Candidates(ctx, m.English)
	usernames, err := s.reviewer.Review(ctx, name, candidates)
	if err != nil {
		metrics.RecordErrorByComponent("service", "review_error")
		return model.Suggestion{}, fmt.Errorf("review candidates for %q: %w", name, err)
	}

	metrics.RecordSuggestion(float64(time.Since(start).Milliseconds()))
	return model.Suggestion{
		Input:     name,
		Resolved:  m.English,
		Usernames: usernames,
	}, nil
}

// Resolve maps a raw name to its closest reference entry.
func (s *Service) Resolve(ctx context.Context, name string) (model.Match, error) {
	return s.matcher.Resolve(ctx, name)
}

// Claim records a username as taken. Returns true when the username was
// newly recorded, false when it already existed.
func (s *Service) Claim(ctx context.Context, username string) (bool, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	exists, err := s.store.Exists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return false, nil
	}
	if err := s.store.Add(ctx, username); err != nil {
		return false, fmt.Errorf("record username: %w", err)
	}
	metrics.RecordUsernameClaimed()
	return true, nil
}

// EnqueueBatch queues names for async processing. Duplicate names
// inside a batch are skipped. Returns ok=false when the queue rejected
// every job.
func (s *Service) EnqueueBatch(ctx context.Context, names []string) (string, int, bool) {
	batchID := uuid.NewString()
	state := &batchState{items: make(map[string]*model.BatchItem)}

	accepted := 0
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		dedupeKey := batchID + ":" + strings.ToLower(name)
		if s.tracker.SeenAndRecord(ctx, dedupeKey) {
			metrics.RecordBatchJobDuplicate()
			continue
		}

		jobID := uuid.NewString()
		if !s.jobQueue.Enqueue(ctx, jobqueue.Job{JobID: jobID, BatchID: batchID, Name: name}) {
			s.tracker.Forget(ctx, dedupeKey)
			continue
		}
		state.items[jobID] = &model.BatchItem{Name: name, Pending: true}
		state.order = append(state.order, jobID)
		state.total++
		accepted++
	}

	if accepted == 0 {
		return "", 0, false
	}

	s.batchMu.Lock()
	s.batches[batchID] = state
	s.batchMu.Unlock()

	s.logger.Debug(ctx, "batch accepted",
		logger.String("batchID", batchID),
		logger.Int("accepted", accepted),
		logger.Int("requested", len(names)),
	)
	return batchID, accepted, true
}

// BatchResult reports the current state of a batch.
func (s *Service) BatchResult(_ context.Context, batchID string) (model.BatchStatus, bool) {
	s.batchMu.RLock()
	defer s.batchMu.RUnlock()

	state, ok := s.batches[batchID]
	if !ok {
		return model.BatchStatus{}, false
	}

	status := model.BatchStatus{
		BatchID:   batchID,
		Total:     state.total,
		Completed: state.completed,
		Done:      state.completed == state.total,
		Items:     make([]model.BatchItem, 0, len(state.order)),
	}
	for _, jobID := range state.order {
		item := state.items[jobID]
		copied := *item
		if item.Suggestion != nil {
			sc := *item.Suggestion
			copied.Suggestion = &sc
		}
		status.Items = append(status.Items, copied)
	}
	return status, true
}

// Collect records a finished batch job result. It implements the worker
// pool's collector contract.
func (s *Service) Collect(batchID, jobID string, suggestion model.Suggestion, err error) {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	state, ok := s.batches[batchID]
	if !ok {
		return
	}
	item, ok := state.items[jobID]
	if !ok || !item.Pending {
		return
	}

	item.Pending = false
	if err != nil {
		item.Error = err.Error()
	} else {
		sc := suggestion
		item.Suggestion = &sc
	}
	state.completed++
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"topK":        s.topK,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["datasetRows"] = s.dataset.Len()
		stats["matchCacheLength"] = s.matcher.CacheLen()
		stats["llmEnabled"] = s.llmClient.Enabled()

		if taken, err := s.store.Count(ctx); err == nil {
			stats["takenUsernames"] = taken
			metrics.UpdateTakenUsernames(taken)
		}

		s.batchMu.RLock()
		stats["batches"] = len(s.batches)
		s.batchMu.RUnlock()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateMatchCacheSize(s.matcher.CacheLen())
	}

	return stats
}
