package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cloo-solutions/suggestscore/internal/api"
	"github.com/cloo-solutions/suggestscore/internal/domain"
	"github.com/cloo-solutions/suggestscore/internal/telemetry"
	"github.com/rs/zerolog"
)

// StatusClientClosedRequest is written when the caller went away mid-estimation.
const StatusClientClosedRequest = 499

type EstimationService interface {
	Estimate(ctx context.Context, keyword string) (domain.EstimationResult, error)
}

type EstimateHandler struct {
	svc     EstimationService
	timeout time.Duration
}

// NewEstimateHandler bounds every estimation by timeout; zero means no budget
// beyond the request's own context.
func NewEstimateHandler(svc EstimationService, timeout time.Duration) *EstimateHandler {
	return &EstimateHandler{svc: svc, timeout: timeout}
}

type EstimateResponse struct {
	Keyword string `json:"keyword"`
	Score   int    `json:"score"`
}

func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if strings.TrimSpace(keyword) == "" {
		api.Error(w, http.StatusBadRequest, "keyword is required")
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.svc.Estimate(ctx, keyword)
	if err != nil {
		logger := zerolog.Ctx(r.Context())
		switch {
		case r.Context().Err() != nil:
			logger.Info().Str("keyword", keyword).Msg("estimation abandoned by caller")
			api.Error(w, StatusClientClosedRequest, "request cancelled")
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			logger.Warn().Err(err).Str("keyword", keyword).Dur("budget", h.timeout).Msg("estimation exceeded request timeout")
			api.Error(w, http.StatusGatewayTimeout, "estimation exceeded request timeout")
		default:
			logger.Error().Err(err).Str("keyword", keyword).Msg("estimation failed")
			telemetry.CaptureError(r.Context(), err)
			api.HandleError(w, err)
		}
		return
	}

	api.JSON(w, http.StatusOK, EstimateResponse{
		Keyword: result.Keyword(),
		Score:   result.Score(),
	})
}
