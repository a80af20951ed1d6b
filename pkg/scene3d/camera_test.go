package scene3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestProjectToScreen_TargetAtCenter(t *testing.T) {
	cam := NewPerspectiveCamera(75, 16.0/9.0, 0.1, 2000)
	cam.Position = mgl64.Vec3{0, 7, -13}
	cam.LookAt(mgl64.Vec3{})

	screen, depth, ok := ProjectToScreen(cam.ViewProjection(), mgl64.Vec3{}, 1280, 720)
	if !ok {
		t.Fatal("Target should be projectable")
	}
	if math.Abs(screen.X()-640) > 1e-6 || math.Abs(screen.Y()-360) > 1e-6 {
		t.Errorf("Target should land at screen center, got %v", screen)
	}
	if depth <= -1 || depth >= 1 {
		t.Errorf("Depth out of range: %v", depth)
	}
}

func TestProjectToScreen_BehindCamera(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 2000)
	cam.Position = mgl64.Vec3{0, 0, -10}
	cam.LookAt(mgl64.Vec3{})

	if _, _, ok := ProjectToScreen(cam.ViewProjection(), mgl64.Vec3{0, 0, -20}, 100, 100); ok {
		t.Error("Point behind the camera should not be projectable")
	}
}

func TestProjectToScreen_UpIsUp(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 2000)
	cam.Position = mgl64.Vec3{0, 0, -10}
	cam.LookAt(mgl64.Vec3{})

	vp := cam.ViewProjection()
	low, _, _ := ProjectToScreen(vp, mgl64.Vec3{0, 0, 0}, 100, 100)
	high, _, _ := ProjectToScreen(vp, mgl64.Vec3{0, 2, 0}, 100, 100)
	if high.Y() >= low.Y() {
		t.Errorf("Higher world point should be higher on screen: %v vs %v", high, low)
	}
}

func TestSetAspect(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 2000)

	cam.SetAspect(1920, 1080)
	if math.Abs(cam.Aspect-1920.0/1080.0) > 1e-12 {
		t.Errorf("Aspect: got %v", cam.Aspect)
	}

	cam.SetAspect(0, 100)
	if math.Abs(cam.Aspect-1920.0/1080.0) > 1e-12 {
		t.Error("Zero width should not change aspect")
	}
}
