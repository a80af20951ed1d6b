package trajectory

import (
	"math"
	"testing"
)

// TestCalculate_Shape 测试各种发射角和初速度下路径点的形状
func TestCalculate_Shape(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		speed float64
	}{
		{"默认击球参数", 25, 75},
		{"低角度", 1, 10},
		{"高角度", 89, 40},
		{"45度", 45, 20},
		{"低速", 30, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{LaunchAngleDeg: tt.angle, InitialSpeed: tt.speed, Gravity: 32.2, InitialY: 1.5}
			pts := Calculate(p)

			if len(pts) != WaypointCount {
				t.Fatalf("Expected %d waypoints, got %d", WaypointCount, len(pts))
			}

			if pts[0].Y() != p.InitialY || pts[4].Y() != p.InitialY {
				t.Errorf("Start/end height should be %.2f, got %.4f / %.4f", p.InitialY, pts[0].Y(), pts[4].Y())
			}

			for i, pt := range pts {
				if pt.Y() < 0 {
					t.Errorf("Waypoint %d has negative height %.4f", i, pt.Y())
				}
				if i > 0 && pt.Z() < pts[i-1].Z() {
					t.Errorf("Waypoint %d travels backwards: z=%.4f < %.4f", i, pt.Z(), pts[i-1].Z())
				}
			}

			for i, pt := range pts {
				if i != 2 && pt.Y() >= pts[2].Y() {
					t.Errorf("Waypoint %d (y=%.4f) should be below the peak (y=%.4f)", i, pt.Y(), pts[2].Y())
				}
			}
		})
	}
}

// TestCalculate_DefaultValues 测试默认参数下的数值
func TestCalculate_DefaultValues(t *testing.T) {
	p := Params{LaunchAngleDeg: 25, InitialSpeed: 75, Gravity: 32.2, InitialY: 1.5}
	pts := Calculate(p)

	rad := 25 * math.Pi / 180
	v0y := 75 * math.Sin(rad)
	v0z := 75 * math.Cos(rad)
	tPeak := v0y / 32.2
	wantPeakY := 1.5 + v0y*tPeak - 0.5*32.2*tPeak*tPeak
	wantEndZ := v0z * 2 * tPeak

	if math.Abs(pts[2].Y()-wantPeakY) > 1e-9 {
		t.Errorf("Peak y: got %.6f, want %.6f", pts[2].Y(), wantPeakY)
	}
	if math.Abs(pts[4].Z()-wantEndZ) > 1e-9 {
		t.Errorf("End z: got %.6f, want %.6f", pts[4].Z(), wantEndZ)
	}
	if math.Abs(pts[1].Y()-pts[3].Y()) > 1e-9 {
		t.Errorf("Quarter points should be symmetric: %.6f vs %.6f", pts[1].Y(), pts[3].Y())
	}
	for _, pt := range pts {
		if pt.X() != 0 {
			t.Errorf("Trajectory should stay on x=0, got x=%.4f", pt.X())
		}
	}
}

// TestCalculate_Degenerate 测试退化输入不会除零
func TestCalculate_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"初速度为0", Params{LaunchAngleDeg: 25, InitialSpeed: 0, Gravity: 32.2, InitialY: 1.5}},
		{"发射角为0", Params{LaunchAngleDeg: 0, InitialSpeed: 75, Gravity: 32.2, InitialY: 1.5}},
		{"重力为0", Params{LaunchAngleDeg: 25, InitialSpeed: 75, Gravity: 0, InitialY: 1.5}},
		{"重力为负", Params{LaunchAngleDeg: 25, InitialSpeed: 75, Gravity: -9.8, InitialY: 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := Calculate(tt.p)
			if len(pts) != WaypointCount {
				t.Fatalf("Expected %d waypoints, got %d", WaypointCount, len(pts))
			}
			for i, pt := range pts {
				if math.IsNaN(pt.Y()) || math.IsInf(pt.Z(), 0) {
					t.Fatalf("Waypoint %d is not finite: %v", i, pt)
				}
				if pt != pts[0] {
					t.Errorf("Waypoint %d should collapse to start %v, got %v", i, pts[0], pt)
				}
			}
		})
	}
}

// TestSummarize 测试轨迹摘要
func TestSummarize(t *testing.T) {
	s := Summarize(Params{LaunchAngleDeg: 90, InitialSpeed: 10, Gravity: 10, InitialY: 0})

	if math.Abs(s.TimeToPeak-1) > 1e-9 {
		t.Errorf("TimeToPeak: got %.6f, want 1", s.TimeToPeak)
	}
	if math.Abs(s.FlightTime-2) > 1e-9 {
		t.Errorf("FlightTime: got %.6f, want 2", s.FlightTime)
	}
	if math.Abs(s.PeakY-5) > 1e-9 {
		t.Errorf("PeakY: got %.6f, want 5", s.PeakY)
	}
	if math.Abs(s.EndZ) > 1e-9 {
		t.Errorf("EndZ for vertical launch should be ~0, got %.6f", s.EndZ)
	}
}
