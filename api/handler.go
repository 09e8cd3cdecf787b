// Package api - HTTP handler for cost estimation
// This handler wraps the estimator - it contains NO pricing logic.
package api

import (
	"context"
	"time"

	"go.uber.org/zap"

	"eventcost/core/currency"
	"eventcost/core/estimate"
	"eventcost/core/output"
	"eventcost/internal/logging"
)

// Handler turns requests into estimates
type Handler struct {
	estimator *estimate.Estimator
	currency  currency.Config
	logger    *zap.Logger
	metrics   *Metrics
}

// NewHandler creates a new handler
func NewHandler(estimator *estimate.Estimator, c currency.Config, logger *zap.Logger, metrics *Metrics) *Handler {
	return &Handler{
		estimator: estimator,
		currency:  c,
		logger:    logging.Or(logger),
		metrics:   metrics,
	}
}

func (h *Handler) execute(ctx context.Context, requestID, events string, includeReference bool) (*EstimateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	est, err := h.estimator.EstimateString(events)
	if err != nil {
		return nil, err
	}
	if h.metrics != nil {
		h.metrics.EstimatesTotal.WithLabelValues(est.Tier).Inc()
	}

	resp := &EstimateResponse{
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Estimate:  output.NewEstimateView(est, h.currency),
	}
	if includeReference {
		resp.Reference = h.reference()
	}
	resp.DurationMs = time.Since(start).Milliseconds()

	h.logger.Debug("estimate served",
		zap.String("request_id", requestID),
		zap.String("tier", est.Tier),
	)
	return resp, nil
}

func (h *Handler) tiers() *TiersResponse {
	s := h.estimator.Schedule()
	return &TiersResponse{
		Schedule: s.Name(),
		Currency: s.Currency(),
		Tiers:    h.reference(),
	}
}

func (h *Handler) reference() []output.ReferenceRow {
	return output.ReferenceTable(h.estimator.Schedule(), h.currency)
}
