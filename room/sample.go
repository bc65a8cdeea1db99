package room

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/vmath"
)

// Sample room dimensions (meters); floor at y=0, centered on the origin
const (
	SampleWidth  = 4.0 // x
	SampleDepth  = 3.0 // z
	SampleHeight = 2.6 // y
)

// Sample builds a furnished box room: floor, ceiling, four walls, a table, a window and a door frame
func Sample(rng *vmath.FastRand) *Room {
	hw, hd, h := SampleWidth/2, SampleDepth/2, SampleHeight
	return New(rng,
		NewPlaneAnchor("floor", core.LabelFloor, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, SampleWidth, SampleDepth),
		NewPlaneAnchor("ceiling", core.LabelCeiling, mgl64.Vec3{0, h, 0}, mgl64.Vec3{0, -1, 0}, SampleWidth, SampleDepth),
		NewPlaneAnchor("wall-north", core.LabelWallFace, mgl64.Vec3{0, h / 2, hd}, mgl64.Vec3{0, 0, -1}, SampleWidth, h),
		NewPlaneAnchor("wall-south", core.LabelWallFace, mgl64.Vec3{0, h / 2, -hd}, mgl64.Vec3{0, 0, 1}, SampleWidth, h),
		NewPlaneAnchor("wall-east", core.LabelWallFace, mgl64.Vec3{hw, h / 2, 0}, mgl64.Vec3{-1, 0, 0}, SampleDepth, h),
		NewPlaneAnchor("wall-west", core.LabelWallFace, mgl64.Vec3{-hw, h / 2, 0}, mgl64.Vec3{1, 0, 0}, SampleDepth, h),
		NewPlaneAnchor("table", core.LabelTable, mgl64.Vec3{1, 0.75, 0.5}, mgl64.Vec3{0, 1, 0}, 1.0, 0.6),
		NewPlaneAnchor("window", core.LabelWindowFrame, mgl64.Vec3{-1, 1.5, hd - 0.01}, mgl64.Vec3{0, 0, -1}, 1.0, 0.8),
		NewPlaneAnchor("door", core.LabelDoorFrame, mgl64.Vec3{hw - 0.01, 1.0, -0.8}, mgl64.Vec3{-1, 0, 0}, 0.9, 2.0),
	)
}
