package breed

// Status tracks the progress of a single breeding action. A session
// always moves forward through the pipeline states, then rests in a
// terminal state until the cooldown resets it to StatusIdle.
type Status uint8

const (
	StatusIdle Status = iota
	StatusResolvingAddresses
	StatusBuildingInstructions
	StatusAwaitingSignature
	StatusSubmitting
	StatusConfirming
	StatusSucceeded
	StatusFailed
	StatusSuperseded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusResolvingAddresses:
		return "resolving_addresses"
	case StatusBuildingInstructions:
		return "building_instructions"
	case StatusAwaitingSignature:
		return "awaiting_signature"
	case StatusSubmitting:
		return "submitting"
	case StatusConfirming:
		return "confirming"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has finished, successfully or not.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusSuperseded:
		return true
	default:
		return false
	}
}

// DisplayText maps a status to the string shown at the presentation
// boundary. Failure detail is carried separately in SessionState.
func (s Status) DisplayText() string {
	switch s {
	case StatusResolvingAddresses:
		return "Initializing..."
	case StatusBuildingInstructions:
		return "Building transaction..."
	case StatusAwaitingSignature:
		return "Waiting for approval..."
	case StatusSubmitting:
		return "Sending transaction..."
	case StatusConfirming:
		return "Confirming transaction..."
	case StatusSucceeded:
		return "Success!"
	case StatusFailed:
		return "Something went wrong. Please try again."
	default:
		return ""
	}
}

// FailureReason classifies why a session reached StatusFailed.
type FailureReason uint8

const (
	FailureNone FailureReason = iota

	// FailurePrecondition covers errors detected before any state is
	// submitted: missing wallet, missing mint, machine not found.
	FailurePrecondition

	// FailureNetwork covers RPC transport errors where the outcome of
	// the submission is unknown.
	FailureNetwork

	// FailureProgram covers on-chain execution errors reported by the
	// network, including simulation failures on broadcast.
	FailureProgram

	// FailureTimeout indicates confirmation polling exceeded the
	// configured timeout. The transaction may still have landed.
	FailureTimeout
)

func (r FailureReason) String() string {
	switch r {
	case FailureNone:
		return "none"
	case FailurePrecondition:
		return "precondition"
	case FailureNetwork:
		return "network"
	case FailureProgram:
		return "program"
	case FailureTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}
