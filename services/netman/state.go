// services/netman/state.go
package netman

// State is the supervisor's observed view of the radio.
type State uint32

const (
	Stopped State = iota
	StartedDisconnected
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case StartedDisconnected:
		return "started_disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	}
	return "unknown"
}
