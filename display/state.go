package display

// State is the lifecycle stage of a Pipeline.
type State int

// Setup moves strictly forward through these states.
const (
	StateUninitialized State = iota
	StateWindowCreated
	StateRendererCreated
	StateTextureUploaded
	StateRunning
	StateTerminated
)

var stateNames = [...]string{
	StateUninitialized:   "uninitialized",
	StateWindowCreated:   "window-created",
	StateRendererCreated: "renderer-created",
	StateTextureUploaded: "texture-uploaded",
	StateRunning:         "running",
	StateTerminated:      "terminated",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
