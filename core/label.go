package core

import (
	"fmt"
	"strings"
)

// Label is a bitmask of semantic surface categories reported by the room scan
type Label uint32

const (
	LabelFloor Label = 1 << iota
	LabelCeiling
	LabelWallFace
	LabelTable
	LabelCouch
	LabelDoorFrame
	LabelWindowFrame
	LabelStorage
	LabelBed
	LabelScreen
	LabelLamp
	LabelPlant
	LabelWallArt
	LabelOther

	LabelNone Label = 0
	LabelAll        = LabelOther<<1 - 1
)

var labelNames = []struct {
	label Label
	name  string
}{
	{LabelFloor, "floor"},
	{LabelCeiling, "ceiling"},
	{LabelWallFace, "wall_face"},
	{LabelTable, "table"},
	{LabelCouch, "couch"},
	{LabelDoorFrame, "door_frame"},
	{LabelWindowFrame, "window_frame"},
	{LabelStorage, "storage"},
	{LabelBed, "bed"},
	{LabelScreen, "screen"},
	{LabelLamp, "lamp"},
	{LabelPlant, "plant"},
	{LabelWallArt, "wall_art"},
	{LabelOther, "other"},
}

// Has reports whether any bit of other is set in l
func (l Label) Has(other Label) bool {
	return l&other != 0
}

// Names returns the lowercase names of every set bit in declaration order
func (l Label) Names() []string {
	names := make([]string, 0, 2)
	for _, ln := range labelNames {
		if l&ln.label != 0 {
			names = append(names, ln.name)
		}
	}
	return names
}

func (l Label) String() string {
	if l == LabelNone {
		return "none"
	}
	return strings.Join(l.Names(), "|")
}

// ParseLabel resolves a single label name, case-insensitive
// "all" and "any" map to LabelAll
func ParseLabel(name string) (Label, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "all" || name == "any" {
		return LabelAll, nil
	}
	for _, ln := range labelNames {
		if ln.name == name {
			return ln.label, nil
		}
	}
	return LabelNone, fmt.Errorf("unknown surface label %q", name)
}

// ParseLabels ORs together every named label
func ParseLabels(names []string) (Label, error) {
	var l Label
	for _, n := range names {
		v, err := ParseLabel(n)
		if err != nil {
			return LabelNone, err
		}
		l |= v
	}
	return l, nil
}

// SurfaceType classifies a surface by the direction its normal faces
type SurfaceType uint8

const (
	SurfaceFacingUp SurfaceType = 1 << iota
	SurfaceFacingDown
	SurfaceVertical
)

// Has reports whether any bit of other is set in s
func (s SurfaceType) Has(other SurfaceType) bool {
	return s&other != 0
}
