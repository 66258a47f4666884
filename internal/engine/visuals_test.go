package engine

import (
	"math"
	"testing"
	"time"
)

func TestMaxTime(t *testing.T) {
	cases := []struct {
		level int
		mult  float64
		want  time.Duration
	}{
		{1, 1.0, 7700 * time.Millisecond},
		{5, 1.0, 6500 * time.Millisecond},
		{10, 1.5, 3500 * time.Millisecond},
		{16, 1.0, 3200 * time.Millisecond},
		{17, 1.0, 3000 * time.Millisecond},
		{40, 2.0, 3000 * time.Millisecond},
	}
	for _, tc := range cases {
		if got := MaxTime(tc.level, tc.mult); got != tc.want {
			t.Fatalf("MaxTime(%d, %v) = %v, want %v", tc.level, tc.mult, got, tc.want)
		}
	}
}

func TestMaxTimeMonotone(t *testing.T) {
	for _, mult := range []float64{1.0, 1.25, 1.5, 2.0} {
		prev := MaxTime(1, mult)
		for level := 2; level <= 30; level++ {
			cur := MaxTime(level, mult)
			if cur > prev {
				t.Fatalf("max time grew at level %d mult %v", level, mult)
			}
			if cur < MinTime {
				t.Fatalf("max time below floor at level %d", level)
			}
			if MaxTime(level, mult+0.05) > cur {
				t.Fatalf("max time grew with multiplier at level %d", level)
			}
			prev = cur
		}
	}
}

func TestComputeVisuals(t *testing.T) {
	full := ComputeVisuals(8*time.Second, 8*time.Second, 1, 1.0)
	if full.Corruption != 0 || full.Blur != 0 || full.Skew != 0 || full.Opacity != 1 || full.Brightness != 1 {
		t.Fatalf("expected no distortion at full time, got %+v", full)
	}
	if math.Abs(full.DifficultyFactor-1.15) > 1e-9 {
		t.Fatalf("expected difficulty factor 1.15, got %v", full.DifficultyFactor)
	}

	half := ComputeVisuals(4*time.Second, 8*time.Second, 1, 1.0)
	if half.Corruption != 50 {
		t.Fatalf("expected corruption 50, got %v", half.Corruption)
	}
	if math.Abs(half.Blur-0.5*4*1.15) > 1e-9 || math.Abs(half.Skew-0.5*10*1.15) > 1e-9 {
		t.Fatalf("unexpected blur/skew %+v", half)
	}

	prev := full
	for ms := 7500; ms >= 0; ms -= 500 {
		v := ComputeVisuals(time.Duration(ms)*time.Millisecond, 8*time.Second, 6, 1.5)
		if v.Blur < prev.Blur || v.Skew < prev.Skew || v.Opacity > prev.Opacity || v.Brightness > prev.Brightness {
			t.Fatalf("visuals not monotone at %dms: %+v after %+v", ms, v, prev)
		}
		if v.Opacity < opacityFloor || v.Brightness < brightFloor {
			t.Fatalf("visuals fell below floor: %+v", v)
		}
		prev = v
	}
}
