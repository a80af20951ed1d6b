package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefaultSceneConfig 测试默认配置有效且与原场景参数一致
func TestDefaultSceneConfig(t *testing.T) {
	cfg := DefaultSceneConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}

	if cfg.Animation.Duration != 15 {
		t.Errorf("Animation.Duration: got %v, want 15", cfg.Animation.Duration)
	}
	if cfg.Animation.MaxProgress != 0.999 {
		t.Errorf("Animation.MaxProgress: got %v, want 0.999", cfg.Animation.MaxProgress)
	}
	if cfg.Camera.Position != (Vec3{0, 7, -13}) {
		t.Errorf("Camera.Position: got %v", cfg.Camera.Position)
	}
	if cfg.Hit.Color != 0x00ffff || cfg.Hit.BallColor != 0xffffff {
		t.Errorf("Hit colors: got %#06x / %#06x", cfg.Hit.Color, cfg.Hit.BallColor)
	}
	if len(cfg.CameraPresets) != 8 {
		t.Errorf("Expected 8 camera presets, got %d", len(cfg.CameraPresets))
	}
}

// TestParseSceneConfig 测试 YAML 覆盖部分字段，其余保持默认
func TestParseSceneConfig(t *testing.T) {
	data := []byte(`
trajectory:
  launchAngleDeg: 40
  initialSpeed: 50
  gravity: 9.8
  initialY: 0
hit:
  color: 0xff0000
  opacity: 0.5
animation:
  duration: 4
`)

	cfg, err := ParseSceneConfig(data)
	if err != nil {
		t.Fatalf("ParseSceneConfig() error: %v", err)
	}

	if cfg.Trajectory.LaunchAngleDeg != 40 || cfg.Trajectory.Gravity != 9.8 {
		t.Errorf("Trajectory not parsed: %+v", cfg.Trajectory)
	}
	if cfg.Hit.Color != 0xff0000 {
		t.Errorf("Hit.Color: got %#06x, want 0xff0000", cfg.Hit.Color)
	}
	if cfg.Hit.BallColor != 0xffffff {
		t.Errorf("Hit.BallColor should keep default, got %#06x", cfg.Hit.BallColor)
	}
	if cfg.Animation.Duration != 4 {
		t.Errorf("Animation.Duration: got %v, want 4", cfg.Animation.Duration)
	}
	if cfg.Animation.MaxProgress != 0.999 {
		t.Errorf("Animation.MaxProgress should keep default, got %v", cfg.Animation.MaxProgress)
	}
}

// TestSceneConfigValidate 测试无效配置被拒绝
func TestSceneConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *SceneConfig)
		wantErr string
	}{
		{"动画时长为0", func(c *SceneConfig) { c.Animation.Duration = 0 }, "duration"},
		{"进度上限超过1", func(c *SceneConfig) { c.Animation.MaxProgress = 1.5 }, "maxProgress"},
		{"近平面为0", func(c *SceneConfig) { c.Camera.Near = 0 }, "camera planes"},
		{"远平面小于近平面", func(c *SceneConfig) { c.Camera.Far = 0.01 }, "camera planes"},
		{"视角无效", func(c *SceneConfig) { c.Camera.FOV = 180 }, "fov"},
		{"不透明度为负", func(c *SceneConfig) { c.Hit.Opacity = -0.1 }, "opacity"},
		{"窗口尺寸无效", func(c *SceneConfig) { c.Window.Width = 0 }, "window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSceneConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q should mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestLoadSceneConfig 测试从文件加载
func TestLoadSceneConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("animation:\n  duration: 3\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadSceneConfig(path)
	if err != nil {
		t.Fatalf("LoadSceneConfig() error: %v", err)
	}
	if cfg.Animation.Duration != 3 {
		t.Errorf("Animation.Duration: got %v, want 3", cfg.Animation.Duration)
	}

	if _, err := LoadSceneConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("animation:\n  duration: -1\n"), 0o644)
	if _, err := LoadSceneConfig(bad); err == nil {
		t.Error("Expected validation error for negative duration")
	}
}

// TestLoadSceneConfig_ShippedFile 测试仓库自带的场景配置
func TestLoadSceneConfig_ShippedFile(t *testing.T) {
	cfg, err := LoadSceneConfig("../../data/scene.yaml")
	if err != nil {
		t.Fatalf("Shipped scene config should load: %v", err)
	}

	names := cfg.PresetNames()
	if len(names) != 8 || names[0] != "P1" || names[7] != "P8" {
		t.Errorf("PresetNames: got %v", names)
	}
	if cfg.PlaysFile == "" {
		t.Error("Shipped config should reference a plays file")
	}
}

// TestParsePlays 测试击球数据解析与校验
func TestParsePlays(t *testing.T) {
	plays, err := LoadPlays("../../data/plays.yaml")
	if err != nil {
		t.Fatalf("Shipped plays should load: %v", err)
	}
	if len(plays) == 0 {
		t.Fatal("Expected at least one play")
	}
	for _, p := range plays {
		if p.ID == "" {
			t.Error("Shipped plays should carry ids")
		}
	}

	tests := []struct {
		name string
		yaml string
	}{
		{"坐标数不是3的倍数", "plays:\n  - id: a\n    result:\n      hit:\n        path: [0, 1, 2, 3]\n"},
		{"只有一个点", "plays:\n  - id: b\n    result:\n      hit:\n        path: [0, 1, 2]\n"},
		{"YAML 格式错误", "plays: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePlays([]byte(tt.yaml)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
