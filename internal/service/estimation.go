package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cloo-solutions/suggestscore/internal/domain"
	"github.com/cloo-solutions/suggestscore/internal/jobs"
	"github.com/cloo-solutions/suggestscore/internal/telemetry"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
)

// SuggestionFetcher issues one query against the suggestion endpoint
type SuggestionFetcher interface {
	Fetch(ctx context.Context, query string) ([]string, error)
}

// EstimationObserver is told about every finished estimation. queries counts
// the vendor calls made, seed included.
type EstimationObserver interface {
	ObserveEstimation(score, queries int, err error)
}

// EstimationService scores how well the suggestion endpoint covers a keyword
type EstimationService struct {
	fetcher  SuggestionFetcher
	pool     *jobs.Pool
	observer EstimationObserver
}

// NewEstimationService creates a new EstimationService
func NewEstimationService(fetcher SuggestionFetcher, pool *jobs.Pool) *EstimationService {
	if pool == nil {
		pool = jobs.NewPool(jobs.DefaultPoolSize)
	}
	return &EstimationService{
		fetcher: fetcher,
		pool:    pool,
	}
}

// NewEstimationServiceWithMetrics creates an EstimationService that reports each
// outcome to observer.
func NewEstimationServiceWithMetrics(fetcher SuggestionFetcher, pool *jobs.Pool, observer EstimationObserver) *EstimationService {
	svc := NewEstimationService(fetcher, pool)
	svc.observer = observer
	return svc
}

// Estimate queries the endpoint for keyword, probes every expansion of the matched
// phrases, and scores the distinct matches found per call made. Any failed call fails
// the whole estimation; no partial score is returned.
func (s *EstimationService) Estimate(ctx context.Context, keyword string) (domain.EstimationResult, error) {
	result, queries, err := s.estimate(ctx, keyword)
	if s.observer != nil {
		s.observer.ObserveEstimation(result.Score(), queries, err)
	}
	return result, err
}

func (s *EstimationService) estimate(ctx context.Context, keyword string) (domain.EstimationResult, int, error) {
	if err := domain.ValidateKeyword(keyword); err != nil {
		return domain.EstimationResult{}, 0, err
	}

	ctx, span := telemetry.StartSpan(ctx, "estimation.estimate", telemetry.SpanAttributes{
		Keyword:   keyword,
		Operation: "estimate",
	})
	defer span.End()

	start := time.Now()

	matched, err := s.matchedSuggestions(ctx, keyword)
	if err != nil {
		span.SetError(err)
		return domain.EstimationResult{}, 1, fmt.Errorf("seed query %q: %w", keyword, err)
	}
	initial := matched.Len()

	queries := Expand(matched, keyword)

	expansions, err := s.probe(ctx, queries)
	if err != nil {
		span.SetError(err)
		return domain.EstimationResult{}, queries.Len() + 1, fmt.Errorf("expansion queries for %q: %w", keyword, err)
	}

	// Join barrier passed: merging happens on this goroutine only.
	for _, set := range expansions {
		matched.Union(set)
	}

	score := domain.ComputeScore(matched.Len(), queries.Len())

	span.SetData("queries", queries.Len()+1)
	span.SetData("matched", matched.Len())
	span.SetData("score", score)
	span.SetStatus(sentry.SpanStatusOK)

	zerolog.Ctx(ctx).Debug().
		Str("keyword", keyword).
		Int("initial_matches", initial).
		Int("expansion_queries", queries.Len()).
		Int("merged_matches", matched.Len()).
		Int("score", score).
		Dur("duration", time.Since(start)).
		Msg("estimation completed")

	return domain.NewEstimationResult(keyword, score), queries.Len() + 1, nil
}

// matchedSuggestions fetches query and keeps the phrases containing it exactly.
func (s *EstimationService) matchedSuggestions(ctx context.Context, query string) (domain.SuggestionSet, error) {
	phrases, err := s.fetcher.Fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	return domain.FilterExact(phrases, query), nil
}

// probe runs one matchedSuggestions call per query through the pool. Every query is
// submitted, so the number of calls attempted always equals queries.Len().
func (s *EstimationService) probe(ctx context.Context, queries domain.ExpansionQuerySet) ([]domain.SuggestionSet, error) {
	ordered := queries.Sorted()

	tasks := make([]jobs.Task[domain.SuggestionSet], len(ordered))
	for i, q := range ordered {
		tasks[i] = func(ctx context.Context) (domain.SuggestionSet, error) {
			set, err := s.matchedSuggestions(ctx, q)
			if err != nil {
				return nil, fmt.Errorf("query %q: %w", q, err)
			}
			return set, nil
		}
	}

	results := jobs.RunAll(ctx, s.pool, tasks)
	for i, r := range results {
		if r.Err != nil {
			telemetry.AddBreadcrumb(ctx, "vendor", fmt.Sprintf("query %q failed: %v", ordered[i], r.Err))
		}
	}
	if err := jobs.Err(results); err != nil {
		return nil, err
	}

	sets := make([]domain.SuggestionSet, len(results))
	for i, r := range results {
		sets[i] = r.Value
	}
	return sets, nil
}
