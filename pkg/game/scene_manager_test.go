package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// mockScene 记录调用情况的测试场景
type mockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

func (m *mockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// resizableScene 额外记录 Resize 调用
type resizableScene struct {
	mockScene
	resizes [][2]int
}

func (r *resizableScene) Resize(width, height int) {
	r.resizes = append(r.resizes, [2]int{width, height})
}

func TestSceneManager_UpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()
	scene := &mockScene{}
	sm.SwitchTo(scene)

	sm.Update(0.016)
	sm.Draw(nil)

	if !scene.updateCalled || scene.deltaTime != 0.016 {
		t.Errorf("Update not forwarded: called=%v dt=%v", scene.updateCalled, scene.deltaTime)
	}
	if !scene.drawCalled {
		t.Error("Draw not forwarded")
	}
	if sm.GetCurrentScene() != scene {
		t.Error("GetCurrentScene should return the active scene")
	}
}

func TestSceneManager_NoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(nil)
	sm.Resize(100, 100)
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no active scene")
	}
}

func TestSceneManager_SwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &mockScene{}
	scene2 := &mockScene{}

	sm.SwitchTo(scene1)
	sm.Update(0.016)
	sm.SwitchTo(scene2)
	sm.Update(0.016)

	if !scene1.updateCalled || !scene2.updateCalled {
		t.Error("Both scenes should have been updated once")
	}
}

func TestSceneManager_Resize(t *testing.T) {
	tests := []struct {
		name  string
		sizes [][2]int
		want  int
	}{
		{"首次尺寸通知", [][2]int{{1280, 720}}, 1},
		{"相同尺寸不重复通知", [][2]int{{1280, 720}, {1280, 720}}, 1},
		{"尺寸变化再次通知", [][2]int{{1280, 720}, {1920, 1080}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSceneManager()
			scene := &resizableScene{}
			sm.SwitchTo(scene)
			for _, s := range tt.sizes {
				sm.Resize(s[0], s[1])
			}
			if len(scene.resizes) != tt.want {
				t.Errorf("Expected %d resize calls, got %v", tt.want, scene.resizes)
			}
		})
	}
}

func TestSceneManager_SwitchToAppliesKnownSize(t *testing.T) {
	sm := NewSceneManager()
	sm.Resize(800, 600)

	scene := &resizableScene{}
	sm.SwitchTo(scene)

	if len(scene.resizes) != 1 || scene.resizes[0] != [2]int{800, 600} {
		t.Errorf("New scene should receive the known size, got %v", scene.resizes)
	}
}
