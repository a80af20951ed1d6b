package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/decker502/stadiumhit/pkg/trajectory"
	"gopkg.in/yaml.v3"
)

// SceneConfig 场景配置
//
// 包含窗口、相机、灯光、击球轨迹、动画与模型的全部参数。
//
// 配置文件位置: data/scene.yaml
type SceneConfig struct {
	Window     WindowConfig      `yaml:"window"`
	Camera     CameraConfig      `yaml:"camera"`
	Lights     LightsConfig      `yaml:"lights"`
	Trajectory trajectory.Params `yaml:"trajectory"`
	Hit        HitConfig         `yaml:"hit"`
	Animation  AnimationConfig   `yaml:"animation"`
	Model      ModelConfig       `yaml:"model"`

	// CameraPresets 相机预设位置，键为预设名（P1..P8），数字键 1..8 按名称排序切换
	CameraPresets map[string]Vec3 `yaml:"cameraPresets"`

	// PlaysFile 额外击球数据文件（可选，为空则不加载）
	PlaysFile string `yaml:"playsFile"`
}

// Vec3 YAML 中的三维坐标，写作 [x, y, z]
type Vec3 [3]float64

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// CameraConfig 透视相机配置
type CameraConfig struct {
	FOV      float64 `yaml:"fov"` // 垂直视角（度）
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Position Vec3    `yaml:"position"`
	Target   Vec3    `yaml:"target"`
}

// LightsConfig 灯光配置
type LightsConfig struct {
	AmbientColor         uint32  `yaml:"ambientColor"`
	AmbientIntensity     float64 `yaml:"ambientIntensity"`
	DirectionalColor     uint32  `yaml:"directionalColor"`
	DirectionalIntensity float64 `yaml:"directionalIntensity"`
	DirectionalPosition  Vec3    `yaml:"directionalPosition"`
}

// HitConfig 预设击球轨迹的外观
type HitConfig struct {
	Name      string  `yaml:"name"`
	Color     uint32  `yaml:"color"`
	BallColor uint32  `yaml:"ballColor"`
	Opacity   float64 `yaml:"opacity"`
}

// AnimationConfig 动画配置
type AnimationConfig struct {
	// Duration 一次完整播放的时长（秒）
	Duration float64 `yaml:"duration"`
	// MaxProgress 传给轨迹的进度上限，避免在曲线端点求值
	MaxProgress float64 `yaml:"maxProgress"`
}

// ModelConfig 场景模型配置
type ModelConfig struct {
	Path string `yaml:"path"`
	// RotationY 模型绕 Y 轴旋转（度）
	RotationY float64 `yaml:"rotationY"`
	// ColliderName 需要隐藏的碰撞体节点名
	ColliderName string `yaml:"colliderName"`
	// AxesSize 模型加载后添加的坐标轴长度，0 表示不添加
	AxesSize float64 `yaml:"axesSize"`
}

// DefaultSceneConfig 返回默认场景配置
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Stadium Hit"},
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      2000,
			Position: Vec3{0, 7, -13},
			Target:   Vec3{0, 0, 0},
		},
		Lights: LightsConfig{
			AmbientColor:         0xffffff,
			AmbientIntensity:     2.0,
			DirectionalColor:     0xffffff,
			DirectionalIntensity: 2.0,
			DirectionalPosition:  Vec3{5, 10, 7.5},
		},
		Trajectory: trajectory.Params{
			LaunchAngleDeg: 25,
			InitialSpeed:   75,
			Gravity:        32.2,
			InitialY:       1.5,
		},
		Hit: HitConfig{
			Name:      "predefinedTrajectory",
			Color:     0x00ffff,
			BallColor: 0xffffff,
			Opacity:   0.9,
		},
		Animation: AnimationConfig{Duration: 15, MaxProgress: 0.999},
		Model: ModelConfig{
			Path:         "Stadium_DET.glb",
			RotationY:    180,
			ColliderName: "CameraCollider",
			AxesSize:     5,
		},
		CameraPresets: DefaultCameraPresets(),
	}
}

// DefaultCameraPresets 返回 8 个默认相机预设位置
func DefaultCameraPresets() map[string]Vec3 {
	return map[string]Vec3{
		"P1": {-6, 6, 6},
		"P2": {-2, 6, 6},
		"P3": {2, 6, 6},
		"P4": {6, 6, 6},
		"P5": {-6, 6, 0},
		"P6": {6, 6, 0},
		"P7": {-6, 6, -6},
		"P8": {6, 6, -6},
	}
}

// LoadSceneConfig 加载场景配置
//
// 参数:
//   - path: 配置文件路径（如 "data/scene.yaml"）
//
// 返回:
//   - *SceneConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig 解析 YAML 场景配置
//
// 未出现在 YAML 中的字段保留默认值。
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 动画时长必须为正，进度上限在 (0,1] 内
//   - 相机近远平面 0 < near < far，视角在 (0,180) 内
//   - 轨迹不透明度在 [0,1] 内
//   - 窗口尺寸为正
func (c *SceneConfig) Validate() error {
	if c.Animation.Duration <= 0 {
		return fmt.Errorf("animation duration must be > 0, got %.3f", c.Animation.Duration)
	}
	if c.Animation.MaxProgress <= 0 || c.Animation.MaxProgress > 1 {
		return fmt.Errorf("animation maxProgress must be in (0, 1], got %.4f", c.Animation.MaxProgress)
	}

	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera planes invalid: near(%.3f) far(%.3f)", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov must be in (0, 180), got %.1f", c.Camera.FOV)
	}

	if c.Hit.Opacity < 0 || c.Hit.Opacity > 1 {
		return fmt.Errorf("hit opacity must be in [0, 1], got %.3f", c.Hit.Opacity)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size invalid: %dx%d", c.Window.Width, c.Window.Height)
	}

	return nil
}

// PresetNames 返回按名称排序的相机预设名
func (c *SceneConfig) PresetNames() []string {
	names := make([]string, 0, len(c.CameraPresets))
	for name := range c.CameraPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
