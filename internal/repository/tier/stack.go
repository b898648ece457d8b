package tier

import "github.com/kailas-cloud/mediadex/internal/usecase/fast"

// Stack assembles the tiers of one orchestrator. Shared tiers are built once
// per process; the request-local tier is new on every call to Tiers.
type Stack struct {
	process *Process
	shared  *Shared
}

// NewStack creates a stack over the durable tier and an optional process tier.
func NewStack(shared *Shared, process *Process) *Stack {
	return &Stack{process: process, shared: shared}
}

// Tiers returns a fresh tier list, fastest first: local, process (if any),
// shared, null.
func (s *Stack) Tiers() []fast.Tier {
	tiers := []fast.Tier{NewLocal()}
	if s.process != nil {
		tiers = append(tiers, s.process)
	}
	if s.shared != nil {
		tiers = append(tiers, s.shared)
	}
	return append(tiers, Null{})
}
