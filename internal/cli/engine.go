package cli

import (
	"github.com/cloo-solutions/suggestscore/internal/completion"
	"github.com/cloo-solutions/suggestscore/internal/config"
	"github.com/cloo-solutions/suggestscore/internal/jobs"
	"github.com/cloo-solutions/suggestscore/internal/metrics"
	"github.com/cloo-solutions/suggestscore/internal/service"
)

// NewCompletionClient builds a vendor client from the loaded configuration.
// recorder may be nil.
func NewCompletionClient(cfg *config.Config, recorder *metrics.Recorder) *completion.Client {
	clientCfg := completion.Config{
		BaseURL: cfg.VendorBaseURL,
		Timeout: cfg.VendorTimeout,
	}
	if recorder != nil {
		clientCfg.Observer = recorder
	}
	return completion.NewClientWithConfig(clientCfg)
}

// NewEstimationService wires the engine exactly as the daemon runs it, so the
// client's --local mode scores keywords the same way.
func NewEstimationService(cfg *config.Config, recorder *metrics.Recorder) *service.EstimationService {
	fetcher := NewCompletionClient(cfg, recorder)
	pool := jobs.NewPool(cfg.MaxConcurrency)
	if recorder == nil {
		return service.NewEstimationService(fetcher, pool)
	}
	return service.NewEstimationServiceWithMetrics(fetcher, pool, recorder)
}
