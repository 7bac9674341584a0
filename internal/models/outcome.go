package models

// ConnectionOutcome is the result of a bounded connect attempt.
type ConnectionOutcome int

const (
	OutcomeConnected ConnectionOutcome = iota
	OutcomeTimedOut
	OutcomeRejected
)

func (o ConnectionOutcome) String() string {
	switch o {
	case OutcomeConnected:
		return "connected"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// SupervisorState is the run state of the connection supervisor.
type SupervisorState string

const (
	SupervisorStateRunning SupervisorState = "running"
	SupervisorStatePaused  SupervisorState = "paused"
)

// SessionStatus describes the provisioning session as exposed to transports.
type SessionStatus struct {
	SessionID   string
	Identifier  string
	LastOutcome *ConnectionOutcome
	Provisioned bool
}

// SessionState is the coordinator's position in a provisioning session.
type SessionState string

const (
	SessionStateWaiting     SessionState = "waiting"
	SessionStateConnecting  SessionState = "connecting"
	SessionStateProvisioned SessionState = "provisioned"
	SessionStateRestarting  SessionState = "restarting"
)
