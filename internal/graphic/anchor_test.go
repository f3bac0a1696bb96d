package graphic

import (
	"errors"
	"testing"
)

func TestResolveAnchor_Table(t *testing.T) {
	const lw, lh, sw, sh = 100, 50, 400, 300
	cases := []struct {
		a    Anchor
		x, y int
	}{
		{AnchorTopLeft, 0, 0},
		{AnchorTopMid, 150, 0},
		{AnchorTopRight, 300, 0},
		{AnchorMidLeft, 0, 125},
		{AnchorCenter, 150, 125},
		{AnchorMidRight, 300, 125},
		{AnchorBottomLeft, 0, 250},
		{AnchorBottomMid, 150, 250},
		{AnchorBottomRight, 300, 250},
	}
	for _, c := range cases {
		x, y := ResolveAnchor(c.a, lw, lh, sw, sh)
		if x != c.x || y != c.y {
			t.Errorf("%v: got (%d,%d), want (%d,%d)", c.a, x, y, c.x, c.y)
		}
	}
}

func TestResolveAnchor_Center600(t *testing.T) {
	x, y := ResolveAnchor(AnchorCenter, 420, 420, 600, 600)
	if x != 90 || y != 90 {
		t.Errorf("got (%d,%d), want (90,90)", x, y)
	}
}

func TestResolveAnchor_LargerThanStage(t *testing.T) {
	x, y := ResolveAnchor(AnchorBottomRight, 500, 400, 300, 300)
	if x != -200 || y != -100 {
		t.Errorf("got (%d,%d), want (-200,-100)", x, y)
	}
	x, y = ResolveAnchor(AnchorCenter, 301, 301, 300, 300)
	if x != 0 || y != 0 {
		t.Errorf("odd overflow truncates toward zero: got (%d,%d)", x, y)
	}
}

func TestParseAnchor(t *testing.T) {
	cases := map[string]Anchor{
		"center":        AnchorCenter,
		"Center":        AnchorCenter,
		"AnchorCenter":  AnchorCenter,
		"bottom-right":  AnchorBottomRight,
		"bottom_right":  AnchorBottomRight,
		"BottomRight":   AnchorBottomRight,
		"TopMid":        AnchorTopMid,
		"AnchorMidLeft": AnchorMidLeft,
		"":              AnchorNone,
		"none":          AnchorNone,
	}
	for in, want := range cases {
		got, err := ParseAnchor(in)
		if err != nil {
			t.Errorf("ParseAnchor(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseAnchor(%q): got %v, want %v", in, got, want)
		}
	}

	if _, err := ParseAnchor("middle-earth"); !errors.Is(err, ErrUnknownAnchor) {
		t.Errorf("got %v, want ErrUnknownAnchor", err)
	}
}

func TestAnchor_String(t *testing.T) {
	if AnchorBottomMid.String() != "bottom-mid" {
		t.Errorf("got %q", AnchorBottomMid.String())
	}
	if Anchor(42).String() != "Anchor(42)" {
		t.Errorf("got %q", Anchor(42).String())
	}
}
