package ai

import "time"

// Group orders candidates coarsely: every primary candidate is tried before any secondary one.
type Group int

const (
	GroupPrimary Group = iota
	GroupSecondary
	GroupTertiary
)

func (g Group) String() string {
	switch g {
	case GroupPrimary:
		return "primary"
	case GroupSecondary:
		return "secondary"
	case GroupTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// Candidate is one entry of the orchestrator's priority list.
type Candidate struct {
	Group    Group
	Provider Provider
}

// Attempt records the outcome of one candidate call.
type Attempt struct {
	Provider string
	Group    Group
	Err      error
	Duration time.Duration
}

// Result is the outcome of Orchestrator.Generate.
// When OK is false, Text holds FailureSentinel and Provider is empty.
type Result struct {
	Text     string
	Provider string
	OK       bool
	Attempts []Attempt
}
