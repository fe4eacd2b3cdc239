package chunk

// LifecycleState is a chunk's position in the load/generate/mesh/unload
// pipeline (spec §4.9). The store holds Active and Meshing chunks; Pending
// and Unloading are bookkeeping states the ring loader and pipeline use to
// avoid double-submitting work for the same coordinate.
type LifecycleState int

const (
	// StatePending means a load has been requested but generation hasn't
	// produced a Chunk yet.
	StatePending LifecycleState = iota
	// StateGenerating means a generation job is in flight in the pipeline.
	StateGenerating
	// StateActive means the chunk is generated and present in the store.
	StateActive
	// StateMeshing means a mesh job for this chunk is in flight.
	StateMeshing
	// StateUnloading means the chunk has been asked to unload but a job
	// for it may still be draining from the pipeline.
	StateUnloading
)

func (s LifecycleState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateGenerating:
		return "generating"
	case StateActive:
		return "active"
	case StateMeshing:
		return "meshing"
	case StateUnloading:
		return "unloading"
	default:
		return "unknown"
	}
}

// transitions enumerates the legal moves out of each state. A transition
// not listed here is a programming error in the caller, not a runtime
// condition to recover from.
var transitions = map[LifecycleState][]LifecycleState{
	StatePending:    {StateGenerating, StateUnloading},
	StateGenerating: {StateActive, StateUnloading},
	StateActive:     {StateMeshing, StateUnloading},
	StateMeshing:    {StateActive, StateUnloading},
	StateUnloading:  {},
}

// CanTransition reports whether moving from `from` to `to` is a legal edge
// in the lifecycle graph.
func CanTransition(from, to LifecycleState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
