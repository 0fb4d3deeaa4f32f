package models

// TerminationReason records why redirect-chain simulation stopped.
type TerminationReason string

const (
	TerminationNoMorePatterns  TerminationReason = "NO_MORE_PATTERNS"
	TerminationMaxDepthReached TerminationReason = "MAX_DEPTH_REACHED"
	TerminationCycleDetected   TerminationReason = "CYCLE_DETECTED"
	TerminationCancelled       TerminationReason = "CANCELLED"
)

// RedirectHop is a single simulated hop from one URL to its predicted
// destination.
type RedirectHop struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Index int    `json:"index"`
}

// RedirectChain is an ordered, bounded sequence of simulated hops.
type RedirectChain struct {
	Hops        []RedirectHop     `json:"hops"`
	Termination TerminationReason `json:"termination"`
}

// Length returns the number of hops in the chain.
func (c RedirectChain) Length() int {
	return len(c.Hops)
}

// Cyclic reports whether the chain terminated because a host reappeared.
func (c RedirectChain) Cyclic() bool {
	return c.Termination == TerminationCycleDetected
}
