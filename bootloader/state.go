package bootloader

// State is the position of a Programmer in the upload sequence.
//
//	Idle → Starting → SendingHeader → SendingFirmware → Finishing → Done
//
// Aborted is entered from any sending state on the first error.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateSendingHeader
	StateSendingFirmware
	StateFinishing
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateSendingHeader:
		return "sending-header"
	case StateSendingFirmware:
		return "sending-firmware"
	case StateFinishing:
		return "finishing"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further packets will be sent from this state.
func (s State) Terminal() bool {
	return s == StateDone || s == StateAborted
}
