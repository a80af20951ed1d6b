package app

import (
	"testing"

	"github.com/decker502/stadiumhit/pkg/config"
	"github.com/decker502/stadiumhit/pkg/game"
	"github.com/decker502/stadiumhit/pkg/scenes"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.DefaultSceneConfig()
	cfg.Model.Path = ""

	a, err := NewApp(Config{Verbose: true, Scene: cfg, Settings: game.NewSettingsManager(nil)})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return a
}

func TestApp_LayoutFollowsWindow(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name       string
		w, h       int
		wantAspect float64
	}{
		{"宽屏", 1600, 900, 1600.0 / 900.0},
		{"竖屏", 600, 1200, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := a.Layout(tt.w, tt.h)
			if w != tt.w || h != tt.h {
				t.Errorf("Layout: got %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
			scene := a.GetSceneManager().GetCurrentScene().(*scenes.StadiumScene)
			if scene.Camera().Aspect != tt.wantAspect {
				t.Errorf("Aspect: got %v, want %v", scene.Camera().Aspect, tt.wantAspect)
			}
		})
	}
}

func TestApp_ShutdownSavesSettings(t *testing.T) {
	a := newTestApp(t)
	if !a.Shutdown() {
		t.Error("Shutdown with in-memory settings should succeed")
	}
	if !a.IsVerbose() {
		t.Error("Verbose flag should be kept")
	}
}
