package graphic

import (
	"fmt"
	"strings"
)

// Anchor names a position on the stage that a layer can be pinned to.
// The zero value means the layer is not anchored.
type Anchor int

const (
	AnchorNone Anchor = iota
	AnchorTopLeft
	AnchorTopMid
	AnchorTopRight
	AnchorMidLeft
	AnchorCenter
	AnchorMidRight
	AnchorBottomLeft
	AnchorBottomMid
	AnchorBottomRight
)

var anchorNames = [...]string{
	AnchorNone:        "none",
	AnchorTopLeft:     "top-left",
	AnchorTopMid:      "top-mid",
	AnchorTopRight:    "top-right",
	AnchorMidLeft:     "mid-left",
	AnchorCenter:      "center",
	AnchorMidRight:    "mid-right",
	AnchorBottomLeft:  "bottom-left",
	AnchorBottomMid:   "bottom-mid",
	AnchorBottomRight: "bottom-right",
}

func (a Anchor) String() string {
	if a.Valid() || a == AnchorNone {
		return anchorNames[a]
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// Valid reports whether a is one of the nine named positions.
func (a Anchor) Valid() bool {
	return a >= AnchorTopLeft && a <= AnchorBottomRight
}

// ParseAnchor accepts "center", "bottom-right", "BottomRight",
// "AnchorBottomRight", "bottom_right" and similar spellings.
func ParseAnchor(s string) (Anchor, error) {
	key := strings.ToLower(s)
	key = strings.TrimPrefix(key, "anchor")
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	if key == "" || key == "none" {
		return AnchorNone, nil
	}
	for i, name := range anchorNames {
		if strings.ReplaceAll(name, "-", "") == key {
			return Anchor(i), nil
		}
	}
	return AnchorNone, fmt.Errorf("%w: %q", ErrUnknownAnchor, s)
}

// ResolveAnchor returns the offset that places a layerW×layerH layer at
// anchor a on a stageW×stageH stage. Offsets are negative when the layer
// is larger than the stage; they are never clamped. AnchorNone and
// unknown values resolve to (0,0).
func ResolveAnchor(a Anchor, layerW, layerH, stageW, stageH int) (x, y int) {
	dx, dy := stageW-layerW, stageH-layerH

	switch a {
	case AnchorTopMid, AnchorCenter, AnchorBottomMid:
		x = dx / 2
	case AnchorTopRight, AnchorMidRight, AnchorBottomRight:
		x = dx
	}
	switch a {
	case AnchorMidLeft, AnchorCenter, AnchorMidRight:
		y = dy / 2
	case AnchorBottomLeft, AnchorBottomMid, AnchorBottomRight:
		y = dy
	}
	return x, y
}
