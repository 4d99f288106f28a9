package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fitsuggest/internal/suggest/inference"
	"github.com/2beens/fitsuggest/internal/suggest/schema"
	"github.com/2beens/fitsuggest/internal/telemetry/metrics"
	"github.com/2beens/fitsuggest/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Invoker executes flows. It holds no per-invocation state and is safe for
// concurrent use.
type Invoker struct {
	client         inference.Client
	metricsManager *metrics.Manager
}

func NewInvoker(client inference.Client, metricsManager *metrics.Manager) *Invoker {
	return &Invoker{
		client:         client,
		metricsManager: metricsManager,
	}
}

// Invoke validates req against the flow input schema, renders the prompt,
// calls the inference client exactly once and decodes the validated response
// into out. Errors are *RequestError, *InferenceError or *ResponseError.
// Nothing is retried and no fallback value is ever produced.
func (i *Invoker) Invoke(ctx context.Context, flow *Flow, req, out any) (err error) {
	invocationID := uuid.NewString()
	start := time.Now()

	ctx, span := tracing.GlobalTracer.Start(ctx, "suggest.invoke")
	span.SetAttributes(
		attribute.String("flow", flow.Name),
		attribute.String("invocation_id", invocationID),
	)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		i.observe(flow.Name, start, err)
	}()

	logger := log.WithFields(log.Fields{
		"flow":          flow.Name,
		"invocation_id": invocationID,
	})

	reqValue, err := schema.ToValue(req)
	if err != nil {
		return &RequestError{Flow: flow.Name, Err: err}
	}
	normalized, err := schema.Validate(flow.Input, reqValue)
	if err != nil {
		logger.Debugf("invalid request: %s", err)
		return &RequestError{Flow: flow.Name, Err: err}
	}

	rendered, err := flow.Prompt.Render(normalized)
	if err != nil {
		return &RequestError{Flow: flow.Name, Err: err}
	}
	logger.Tracef("rendered prompt, %d parts, %d media", len(rendered.Parts), len(rendered.Media()))

	raw, err := i.client.Generate(ctx, inference.Request{
		Flow:         flow.Name,
		Model:        flow.Model,
		Parts:        rendered.Parts,
		OutputSchema: flow.Output,
	})
	if err != nil {
		logger.Errorf("inference call failed: %s", err)
		return &InferenceError{Flow: flow.Name, Err: err}
	}

	respValue, err := schema.Decode(raw)
	if err != nil {
		logger.Warnf("inference returned malformed json: %s", err)
		return &ResponseError{Flow: flow.Name, Err: err, Raw: raw}
	}
	validated, err := schema.Validate(flow.Output, respValue)
	if err != nil {
		logger.Warnf("inference response does not match schema: %s", err)
		return &ResponseError{Flow: flow.Name, Err: err, Raw: raw}
	}

	validatedBytes, err := json.Marshal(validated)
	if err != nil {
		return &ResponseError{Flow: flow.Name, Err: fmt.Errorf("encode validated response: %w", err), Raw: raw}
	}
	if err := json.Unmarshal(validatedBytes, out); err != nil {
		return &ResponseError{Flow: flow.Name, Err: fmt.Errorf("decode into %T: %w", out, err), Raw: raw}
	}

	logger.Debugf("suggestion done in %s", time.Since(start))
	return nil
}

func (i *Invoker) observe(flow string, start time.Time, err error) {
	if i.metricsManager == nil {
		return
	}
	i.metricsManager.CounterSuggestions.WithLabelValues(flow, outcome(err)).Inc()
	i.metricsManager.HistogramSuggestionDuration.WithLabelValues(flow).Observe(time.Since(start).Seconds())
}
