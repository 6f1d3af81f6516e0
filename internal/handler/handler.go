package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/angeloszaimis/calc-service/internal/calculator"
	"github.com/angeloszaimis/calc-service/internal/metrics"
)

const (
	statusHealthy   = "healthy"
	defaultName     = "World"
	maxBodyBytes    = 100 << 10
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

const (
	msgOperandsNotNumbers = "Both a and b must be numbers"
	msgDivideByZero       = "Cannot divide by zero"
	msgInvalidOperation   = "Invalid operation"
	msgInvalidJSON        = "Invalid JSON body"
	msgBodyTooLarge       = "Request body too large"
)

type Handler struct {
	logger           *slog.Logger
	metricsCollector *metrics.Collector
	now              func() time.Time
}

// Option customizes a Handler.
type Option func(*Handler)

// WithClock overrides the time source used for health timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// NewHandler builds the endpoint handlers. collector may be nil.
func NewHandler(logger *slog.Logger, collector *metrics.Collector, opts ...Option) *Handler {
	h := &Handler{
		logger:           logger,
		metricsCollector: collector,
		now:              time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    statusHealthy,
		Timestamp: h.now().UTC().Format(timestampLayout),
	})
}

func (h *Handler) Greet(w http.ResponseWriter, r *http.Request) {
	// Repeated keys collapse into one comma-separated name.
	name := strings.Join(r.URL.Query()["name"], ",")
	if name == "" {
		name = defaultName
	}

	h.writeJSON(w, http.StatusOK, GreetResponse{
		Message: "Hello, " + name + "!",
	})
}

func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, status, err := decodeCalculateRequest(w, r)
	if err != nil {
		h.logger.Debug("Rejected calculate body", slog.Any("err", err))
		if status == http.StatusRequestEntityTooLarge {
			h.writeError(w, status, msgBodyTooLarge)
		} else {
			h.writeError(w, status, msgInvalidJSON)
		}
		return
	}

	result, err := calculator.Evaluate(req.A, req.B, req.Operation)
	if err != nil {
		h.logger.Debug("Rejected calculation", slog.Any("err", err))
		h.writeError(w, http.StatusBadRequest, calculationErrorMessage(err))
		return
	}

	operation, _ := req.Operation.(string)
	h.metricsCollector.Emit(metrics.MetricEvent{
		Type:      metrics.EventCalculation,
		Operation: operation,
	})

	if result == 0 {
		// normalize negative zero
		result = 0
	}

	resp := CalculateResponse{}
	if !math.IsInf(result, 0) && !math.IsNaN(result) {
		resp.Result = &result
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// decodeCalculateRequest treats an empty body as an empty object.
func decodeCalculateRequest(w http.ResponseWriter, r *http.Request) (CalculateRequest, int, error) {
	var req CalculateRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	if err := dec.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return req, http.StatusOK, nil
		case errors.As(err, &maxBytesErr):
			return req, http.StatusRequestEntityTooLarge, err
		default:
			return req, http.StatusBadRequest, err
		}
	}

	if dec.More() {
		return req, http.StatusBadRequest, errors.New("unexpected data after JSON body")
	}

	return req, http.StatusOK, nil
}

func calculationErrorMessage(err error) string {
	switch {
	case errors.Is(err, calculator.ErrOperandsNotNumbers):
		return msgOperandsNotNumbers
	case errors.Is(err, calculator.ErrDivideByZero):
		return msgDivideByZero
	default:
		return msgInvalidOperation
	}
}
