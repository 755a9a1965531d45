// Package repayment exposes the repayment calculation as a JSON API.
package repayment

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mortgage-calculator/internal/handlers"
	"mortgage-calculator/internal/mortgage"
	"mortgage-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("repayment")

const (
	opCalculate = "calculate"
	opSanitize  = "sanitize"
)

// Calculate handles POST /api/repayments.
func Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repayment.calculate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opCalculate, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	input, err := mortgage.Parse(req.values())
	if err != nil {
		var verr *mortgage.ValidationError
		if !errors.As(err, &verr) {
			observability.RecordError(ctx, span, logger, errorCounter, opCalculate, "invalid loan input", err, http.StatusUnprocessableEntity, w)
			return
		}
		observability.RecordFailure(ctx, span, logger, errorCounter, opCalculate, "invalid loan input", err)
		handlers.WriteJSON(w, http.StatusUnprocessableEntity, NewValidationResponse(verr))
		return
	}

	span.SetAttributes(
		attribute.String("repayment.mode", string(input.Mode)),
		attribute.Float64("repayment.principal", input.Principal),
		attribute.Int("repayment.term_years", input.TermYears),
		attribute.Float64("repayment.annual_rate_percent", input.AnnualRatePercent),
	)

	start := time.Now()
	result := mortgage.Calculate(input)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if !result.Finite() {
		observability.RecordError(ctx, span, logger, errorCounter, opCalculate, mortgage.ErrNonFiniteResult.Error(), mortgage.ErrNonFiniteResult, http.StatusUnprocessableEntity, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("mode", string(result.Mode)))
	calcCounter.Add(ctx, 1, attrs)
	calcHistogram.Record(ctx, elapsed, attrs)
	monthlyGauge.Record(ctx, result.MonthlyAmount, attrs)

	span.AddEvent("calculation.complete", trace.WithAttributes(
		attribute.Float64("monthly_amount", result.MonthlyAmount),
		attribute.Float64("total_amount", result.TotalAmount),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("repayment calculated",
		zap.String("operation", opCalculate),
		zap.String("mode", string(result.Mode)),
		zap.Float64("principal", input.Principal),
		zap.Int("term_years", input.TermYears),
		zap.Float64("annual_rate_percent", input.AnnualRatePercent),
		zap.Float64("monthly_amount", result.MonthlyAmount),
		zap.Float64("total_amount", result.TotalAmount),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, NewCalculateResponse(result))
}

// Sanitize handles POST /api/sanitize: it runs one keystroke's worth of text
// through the field's sanitizer.
func Sanitize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "repayment.sanitize")
	defer span.End()

	var req SanitizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opSanitize, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	field, err := mortgage.ParseField(req.Field)
	if err != nil || field == mortgage.FieldMode {
		if err == nil {
			err = errors.New("mortgage-type is not a text field")
		}
		observability.RecordError(ctx, span, logger, errorCounter, opSanitize, "unknown field", err, http.StatusBadRequest, w)
		return
	}

	value := mortgage.SanitizeField(field, req.Value)
	display := value
	if field == mortgage.FieldPrincipal {
		display = mortgage.GroupThousands(value)
	}

	span.SetAttributes(attribute.String("sanitize.field", string(field)))
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, SanitizeResponse{
		Field:   string(field),
		Value:   value,
		Display: display,
	})
}
