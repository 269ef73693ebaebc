package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tripsmith/internal/config"
)

// Stack is the orchestrator built from configuration together with the
// resources it owns.
type Stack struct {
	*Orchestrator
	gemini *GeminiClient
}

// Close releases the Gemini client, if any.
func (s *Stack) Close() {
	if s.gemini != nil {
		s.gemini.Close()
	}
}

// NewStack wires the configured providers into priority groups. Slots without
// credentials are skipped; an empty stack is valid and always yields FailureSentinel.
func NewStack(ctx context.Context, cfg config.AIConfig, log *zap.Logger) (*Stack, error) {
	var (
		candidates []Candidate
		gemini     *GeminiClient
	)

	if cfg.GeminiKey != "" {
		gc, err := NewGeminiClient(ctx, cfg.GeminiKey, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		gemini = gc
		for _, model := range cfg.GeminiModelList() {
			candidates = append(candidates, Candidate{Group: GroupPrimary, Provider: gc.Variant(model)})
		}
	}

	candidates = append(candidates, chatCandidates(GroupSecondary, cfg.Secondary, cfg)...)
	candidates = append(candidates, chatCandidates(GroupTertiary, cfg.Tertiary, cfg)...)

	if len(candidates) == 0 {
		log.Warn("no ai provider configured, every plan will use the template fallback")
	}
	for i, c := range candidates {
		log.Debug("ai candidate", zap.Int("rank", i+1), zap.Stringer("group", c.Group), zap.String("provider", c.Provider.Name()))
	}

	return &Stack{Orchestrator: NewOrchestrator(log, candidates...), gemini: gemini}, nil
}

func chatCandidates(group Group, pc config.ChatProviderConfig, cfg config.AIConfig) []Candidate {
	keys := pc.KeyList()
	out := make([]Candidate, 0, len(keys))
	for i, key := range keys {
		name := fmt.Sprintf("%s/%s#%d", pc.Name, pc.Model, i+1)
		out = append(out, Candidate{
			Group:    group,
			Provider: NewChatProvider(name, pc.BaseURL, pc.Model, key, cfg.Timeout),
		})
	}
	return out
}
