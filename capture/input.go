package capture

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/vmath"
)

// HandInput is one hand's tracking sample for a tick
type HandInput struct {
	Tracked  bool
	Root     vmath.Pose
	ThumbTip mgl64.Vec3
	IndexTip mgl64.Vec3
}

// PinchDistance is the thumb-tip to index-tip distance
func (h HandInput) PinchDistance() float64 {
	return h.ThumbTip.Sub(h.IndexTip).Len()
}

// Pinching reports a tracked hand closing below threshold
func (h HandInput) Pinching(threshold float64) bool {
	return h.Tracked && h.PinchDistance() < threshold
}

// HandSource supplies the latest sample per hand
type HandSource interface {
	Hand(h core.Hand) HandInput
}

// Hands is a fixed two-hand sample, usable directly as a HandSource
type Hands struct {
	Left  HandInput
	Right HandInput
}

func (hs Hands) Hand(h core.Hand) HandInput {
	switch h {
	case core.HandLeft:
		return hs.Left
	case core.HandRight:
		return hs.Right
	default:
		return HandInput{}
	}
}

// trackOrder is the fixed evaluation order for simultaneous pinches
var trackOrder = [...]core.Hand{core.HandLeft, core.HandRight}
