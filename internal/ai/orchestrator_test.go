// README: Orchestrator ordering, short-circuit and exhaustion tests.
package ai

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	panic bool
	calls atomic.Int32
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Complete(_ context.Context, _ string) (string, error) {
	s.calls.Add(1)
	if s.panic {
		panic("provider blew up")
	}
	return s.text, s.err
}

func TestGetResponse_ShortCircuitsOnFirstSuccess(t *testing.T) {
	first := &stubProvider{name: "first", err: errors.New("503 service unavailable")}
	second := &stubProvider{name: "second", text: `{"ok":true}`}
	third := &stubProvider{name: "third", text: "never"}

	o := NewOrchestrator(zaptest.NewLogger(t),
		Candidate{Group: GroupPrimary, Provider: first},
		Candidate{Group: GroupPrimary, Provider: second},
		Candidate{Group: GroupSecondary, Provider: third},
	)

	got := o.GetResponse(context.Background(), "plan a trip")

	assert.Equal(t, `{"ok":true}`, got)
	assert.EqualValues(t, 1, first.calls.Load())
	assert.EqualValues(t, 1, second.calls.Load())
	assert.EqualValues(t, 0, third.calls.Load(), "candidates after the winner must not be invoked")
}

func TestGetResponse_ReturnsSentinelWhenAllFail(t *testing.T) {
	providers := []*stubProvider{
		{name: "err", err: errors.New("network down")},
		{name: "empty", text: ""},
		{name: "blank", text: "  \n\t"},
		{name: "panics", panic: true},
	}
	var cands []Candidate
	for _, p := range providers {
		cands = append(cands, Candidate{Group: GroupSecondary, Provider: p})
	}
	o := NewOrchestrator(zaptest.NewLogger(t), cands...)

	var got string
	require.NotPanics(t, func() {
		got = o.GetResponse(context.Background(), "plan a trip")
	})

	assert.Equal(t, FailureSentinel, got)
	for _, p := range providers {
		assert.EqualValues(t, 1, p.calls.Load(), p.name)
	}
	assert.NotContains(t, FailureSentinel, "{")
	assert.NotContains(t, FailureSentinel, "[")
}

func TestGenerate_RecordsAttempts(t *testing.T) {
	o := NewOrchestrator(zaptest.NewLogger(t),
		Candidate{Group: GroupPrimary, Provider: &stubProvider{name: "a", panic: true}},
		Candidate{Group: GroupPrimary, Provider: &stubProvider{name: "b", text: " "}},
		Candidate{Group: GroupTertiary, Provider: &stubProvider{name: "c", text: "hello"}},
	)

	res := o.Generate(context.Background(), "p")

	require.True(t, res.OK)
	assert.Equal(t, "c", res.Provider)
	assert.Equal(t, "hello", res.Text)
	require.Len(t, res.Attempts, 3)
	assert.True(t, strings.Contains(res.Attempts[0].Err.Error(), "panic"))
	assert.ErrorIs(t, res.Attempts[1].Err, ErrEmptyResponse)
	assert.NoError(t, res.Attempts[2].Err)
	assert.Equal(t, GroupTertiary, res.Attempts[2].Group)
}

func TestNewOrchestrator_OrdersByGroupStable(t *testing.T) {
	o := NewOrchestrator(nil,
		Candidate{Group: GroupTertiary, Provider: &stubProvider{name: "t1"}},
		Candidate{Group: GroupPrimary, Provider: &stubProvider{name: "p1"}},
		Candidate{Group: GroupSecondary, Provider: &stubProvider{name: "s1"}},
		Candidate{Group: GroupPrimary, Provider: &stubProvider{name: "p2"}},
		Candidate{Group: GroupSecondary, Provider: nil},
		Candidate{Group: GroupSecondary, Provider: &stubProvider{name: "s2"}},
	)

	var names []string
	for _, c := range o.Candidates() {
		names = append(names, c.Provider.Name())
	}
	assert.Equal(t, []string{"p1", "p2", "s1", "s2", "t1"}, names)
}

func TestGetResponse_NoCandidates(t *testing.T) {
	o := NewOrchestrator(zaptest.NewLogger(t))
	assert.Equal(t, FailureSentinel, o.GetResponse(context.Background(), "p"))
}

func TestGetResponse_StopsWhenContextCancelled(t *testing.T) {
	p := &stubProvider{name: "a", text: "hi"}
	o := NewOrchestrator(zaptest.NewLogger(t), Candidate{Provider: p})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, FailureSentinel, o.GetResponse(ctx, "p"))
	assert.EqualValues(t, 0, p.calls.Load())
}
