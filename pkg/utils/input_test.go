package utils

import "testing"

func TestPinchToWheel(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur float64
		perNotch  float64
		want      float64
	}{
		{"张开一格", 100, 140, 40, 1},
		{"合拢两格", 200, 120, 40, -2},
		{"距离不变", 150, 150, 40, 0},
		{"上一帧无捏合", 0, 150, 40, 0},
		{"无效比例", 100, 140, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PinchToWheel(tt.prev, tt.cur, tt.perNotch); got != tt.want {
				t.Errorf("PinchToWheel(%v, %v, %v) = %v, want %v", tt.prev, tt.cur, tt.perNotch, got, tt.want)
			}
		})
	}
}
