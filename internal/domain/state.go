package domain

// PublishState is the position of a run in the publish state machine.
type PublishState int

const (
	StateIdle PublishState = iota
	StateConnected
	StatePageReady
	StateUploading
	StateUploaded
	StateContentFilled
	StatePublished
	StateReturned
)

// String returns a human-readable representation of the state.
func (s PublishState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateConnected:
		return "Connected"
	case StatePageReady:
		return "PageReady"
	case StateUploading:
		return "Uploading"
	case StateUploaded:
		return "Uploaded"
	case StateContentFilled:
		return "ContentFilled"
	case StatePublished:
		return "Published"
	case StateReturned:
		return "Returned"
	default:
		return "Unknown"
	}
}
