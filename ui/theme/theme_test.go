package theme

import "testing"

func TestCurrent_TracksMode(t *testing.T) {
	t.Cleanup(func() { darkMode = false })
	var p PaletteSnapshot = Current()
	if p != Light {
		t.Fatalf("expected light palette by default, got %+v", p)
	}
	darkMode = true
	if Current() != Dark {
		t.Fatalf("expected dark palette")
	}
}
