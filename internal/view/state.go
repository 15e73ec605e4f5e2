package view

// State is the lifecycle of one remote operation as seen by the view.
type State int

const (
	Idle State = iota
	Loading
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}
