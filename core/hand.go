package core

// Hand identifies a tracked hand
type Hand uint8

const (
	HandNone Hand = iota
	HandLeft
	HandRight
)

func (h Hand) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	default:
		return "none"
	}
}
