// README: Orchestrator tries provider candidates in priority order and returns the first usable text.
package ai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"tripsmith/internal/metrics"
)

// FailureSentinel is returned by GetResponse when every candidate failed.
// It contains no JSON delimiters so extraction always reports "nothing found".
const FailureSentinel = "Sorry, no AI provider is available right now. Please try again later."

var tracer = otel.Tracer("tripsmith/internal/ai")

// Orchestrator holds a read-only, ordered candidate list. Safe for concurrent use.
type Orchestrator struct {
	log        *zap.Logger
	candidates []Candidate
}

// NewOrchestrator orders candidates by Group, keeping declaration order within a group.
// Candidates with a nil Provider are dropped.
func NewOrchestrator(log *zap.Logger, candidates ...Candidate) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	list := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Provider != nil {
			list = append(list, c)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Group < list[j].Group })
	return &Orchestrator{log: log, candidates: list}
}

// Candidates returns a copy of the ordered candidate list.
func (o *Orchestrator) Candidates() []Candidate {
	out := make([]Candidate, len(o.candidates))
	copy(out, o.candidates)
	return out
}

// GetResponse returns the first non-empty completion, or FailureSentinel.
func (o *Orchestrator) GetResponse(ctx context.Context, prompt string) string {
	return o.Generate(ctx, prompt).Text
}

// Generate runs the candidates strictly in order. It stops at the first
// candidate returning non-blank text; later candidates are never invoked.
func (o *Orchestrator) Generate(ctx context.Context, prompt string) Result {
	ctx, span := tracer.Start(ctx, "ai.generate")
	defer span.End()
	span.SetAttributes(attribute.Int("ai.candidates", len(o.candidates)))

	res := Result{Attempts: make([]Attempt, 0, len(o.candidates))}
	for _, c := range o.candidates {
		if err := ctx.Err(); err != nil {
			o.log.Warn("ai generation cancelled", zap.Error(err))
			break
		}

		name := c.Provider.Name()
		start := time.Now()
		text, err := safeComplete(ctx, c.Provider, prompt)
		elapsed := time.Since(start)

		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
		res.Attempts = append(res.Attempts, Attempt{Provider: name, Group: c.Group, Err: err, Duration: elapsed})
		metrics.ProviderLatency.WithLabelValues(name).Observe(elapsed.Seconds())

		if err != nil {
			outcome := "error"
			if errors.Is(err, ErrEmptyResponse) {
				outcome = "empty"
			}
			metrics.ProviderAttempts.WithLabelValues(name, outcome).Inc()
			o.log.Warn("ai provider attempt failed",
				zap.String("provider", name),
				zap.Stringer("group", c.Group),
				zap.Duration("latency", elapsed),
				zap.Error(err),
			)
			continue
		}

		metrics.ProviderAttempts.WithLabelValues(name, "ok").Inc()
		o.log.Info("ai provider attempt succeeded",
			zap.String("provider", name),
			zap.Stringer("group", c.Group),
			zap.Duration("latency", elapsed),
			zap.Int("chars", len(text)),
		)
		span.SetAttributes(attribute.String("ai.provider", name))

		res.Text = text
		res.Provider = name
		res.OK = true
		return res
	}

	metrics.ProviderExhausted.Inc()
	o.log.Error("all ai providers failed", zap.Int("attempts", len(res.Attempts)))
	span.SetStatus(codes.Error, "all providers failed")

	res.Text = FailureSentinel
	return res
}

// safeComplete turns a provider panic into an ordinary error.
func safeComplete(ctx context.Context, p Provider, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%s: panic: %v", p.Name(), r)
		}
	}()
	return p.Complete(ctx, prompt)
}
