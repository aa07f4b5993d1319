package form

import (
	"image"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseGeometry(t *testing.T) {
	r, ok := ParseGeometry("640x480+100+-20")
	if !ok || r != image.Rect(100, -20, 740, 460) {
		t.Fatalf("unexpected rect %v ok=%v", r, ok)
	}
	for _, bad := range []string{"", "640x480", "0x480+1+1", "axb+1+1"} {
		if _, ok := ParseGeometry(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestParseDuration(t *testing.T) {
	for in, want := range map[string]time.Duration{"1s": time.Second, "0.5": 500 * time.Millisecond, "250ms": 250 * time.Millisecond} {
		got, err := ParseDuration(in)
		if err != nil || got != want {
			t.Fatalf("ParseDuration(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseDuration("soon"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSplitList(t *testing.T) {
	if diff := cmp.Diff([]string{"3", "2", "1", "Smile!"}, SplitList(" 3, 2,,1 ,Smile! ")); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}
