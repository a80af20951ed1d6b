package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/stadiumhit/pkg/components"
	"github.com/decker502/stadiumhit/pkg/config"
	"github.com/decker502/stadiumhit/pkg/ecs"
	"github.com/decker502/stadiumhit/pkg/entities"
	"github.com/decker502/stadiumhit/pkg/game"
	"github.com/decker502/stadiumhit/pkg/scene3d"
	"github.com/decker502/stadiumhit/pkg/systems"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ModelState 场景模型的加载状态
type ModelState int

const (
	ModelNone    ModelState = iota // 未配置模型
	ModelLoading                   // 正在加载
	ModelLoaded                    // 加载完成
	ModelFailed                    // 加载失败，场景继续运行
)

// String 返回状态名
func (s ModelState) String() string {
	switch s {
	case ModelLoading:
		return "loading"
	case ModelLoaded:
		return "loaded"
	case ModelFailed:
		return "failed"
	default:
		return "none"
	}
}

// StadiumSceneOptions 创建场景所需的依赖
//
// 除 Config 外均可为空：Settings 为空时使用内存设置，Clock 为空时使用真实时钟，
// Input/KeyJustPressed 为空时读取 ebiten 输入，ModelLoader 为空时创建新的加载器。
type StadiumSceneOptions struct {
	Config   *config.SceneConfig
	Plays    []config.Play
	Settings *game.SettingsManager

	Clock          systems.Clock
	Input          systems.OrbitInput
	KeyJustPressed func(ebiten.Key) bool
	ModelLoader    *game.ModelLoader

	// LoadPlays 按 R 键时重新读取击球数据，为空时 R 键无效
	LoadPlays func() ([]config.Play, error)
}

// StadiumScene 球场场景
//
// 组合透视相机、灯光、预设击球轨迹（循环动画）、外部击球数据（静态显示）
// 以及异步加载的球场模型。
type StadiumScene struct {
	cfg      *config.SceneConfig
	settings *game.SettingsManager

	entityManager   *ecs.EntityManager
	camera          *scene3d.PerspectiveCamera
	animationSystem *systems.AnimationSystem
	orbitSystem     *systems.OrbitSystem
	renderSystem    *systems.RenderSystem

	modelLoader    *game.ModelLoader
	keyJustPressed func(ebiten.Key) bool
	loadPlays      func() ([]config.Play, error)

	predefinedHit *entities.Hit
	plays         []*entities.Hit

	model        *scene3d.Node
	modelState   ModelState
	modelLoaded  int64
	modelTotal   int64
	modelErr     error
	axes         *scene3d.Node
	activePreset string
}

// NewStadiumScene 创建球场场景并开始异步加载模型
//
// 返回:
//   - *StadiumScene: 场景实例
//   - error: 预设轨迹无法创建时返回错误
func NewStadiumScene(opts StadiumSceneOptions) (*StadiumScene, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultSceneConfig()
	}

	s := &StadiumScene{
		cfg:            cfg,
		settings:       opts.Settings,
		entityManager:  ecs.NewEntityManager(),
		modelLoader:    opts.ModelLoader,
		keyJustPressed: opts.KeyJustPressed,
		loadPlays:      opts.LoadPlays,
	}
	if s.settings == nil {
		s.settings = game.NewSettingsManager(nil)
	}
	if s.modelLoader == nil {
		s.modelLoader = game.NewModelLoader()
	}
	if s.keyJustPressed == nil {
		s.keyJustPressed = inpututil.IsKeyJustPressed
	}
	clock := opts.Clock
	if clock == nil {
		clock = systems.NewWallClock()
	}

	s.initCamera()

	s.animationSystem = systems.NewAnimationSystem(s.entityManager, clock, cfg.Animation.Duration, cfg.Animation.MaxProgress)
	s.orbitSystem = systems.NewOrbitSystem(s.entityManager, s.camera, cfg, opts.Input)
	s.renderSystem = systems.NewRenderSystem(s.entityManager, s.camera, cfg.Lights)

	if err := s.initPredefinedHit(); err != nil {
		return nil, err
	}
	s.initPlays(opts.Plays)
	s.restoreSettings()
	s.loadModel()

	log.Printf("[StadiumScene] Initialized: %d entities, driver %s", s.entityManager.EntityCount(), s.animationSystem.State())
	return s, nil
}

func (s *StadiumScene) initCamera() {
	c := s.cfg.Camera
	aspect := float64(s.cfg.Window.Width) / float64(s.cfg.Window.Height)
	s.camera = scene3d.NewPerspectiveCamera(c.FOV, aspect, c.Near, c.Far)
	s.camera.Position = mgl64.Vec3{c.Position[0], c.Position[1], c.Position[2]}
	s.camera.LookAt(mgl64.Vec3{c.Target[0], c.Target[1], c.Target[2]})
}

// restoreSettings 恢复上次保存的相机预设
func (s *StadiumScene) restoreSettings() {
	preset := s.settings.GetSettings().CameraPreset
	if preset == "" {
		return
	}
	if s.orbitSystem.ApplyPreset(preset) {
		s.activePreset = preset
	}
}

// addNodeEntity 把节点注册为可渲染实体
func (s *StadiumScene) addNodeEntity(node *scene3d.Node) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.NodeComponent{Node: node})
	return id
}

// Update 推进一帧：执行模型加载回调、处理输入、推进动画
func (s *StadiumScene) Update(deltaTime float64) {
	s.modelLoader.Poll()

	if s.keyJustPressed(ebiten.KeyA) {
		s.ToggleAxes()
	}
	if s.loadPlays != nil && s.keyJustPressed(ebiten.KeyR) {
		if plays, err := s.loadPlays(); err != nil {
			log.Printf("[StadiumScene] Failed to reload plays: %v", err)
		} else {
			s.ReloadPlays(plays)
		}
	}

	s.orbitSystem.Update()
	if preset := s.orbitSystem.ActivePreset(); preset != s.activePreset {
		s.activePreset = preset
		if preset != "" {
			s.settings.SetCameraPreset(preset)
		}
	}

	s.animationSystem.Update()
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制场景和状态信息
func (s *StadiumScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
	s.drawOverlay(screen)
}

// Resize 渲染表面尺寸变化时更新相机宽高比
func (s *StadiumScene) Resize(width, height int) {
	s.camera.SetAspect(width, height)
}

// SaveOnExit 退出时保存查看器设置，并关闭模型加载器
func (s *StadiumScene) SaveOnExit() bool {
	s.modelLoader.Close()
	if err := s.settings.Save(); err != nil {
		log.Printf("[StadiumScene] Failed to save settings: %v", err)
		return false
	}
	return true
}

// ToggleAxes 切换坐标轴显示并记录到设置
func (s *StadiumScene) ToggleAxes() {
	show := !s.settings.GetSettings().ShowAxes
	s.settings.SetShowAxes(show)
	if s.axes != nil {
		s.axes.Visible = show
	}
	log.Printf("[StadiumScene] Axes visible: %v", show)
}

// Camera 返回场景相机
func (s *StadiumScene) Camera() *scene3d.PerspectiveCamera {
	return s.camera
}

// PredefinedHit 返回循环播放的预设击球轨迹
func (s *StadiumScene) PredefinedHit() *entities.Hit {
	return s.predefinedHit
}

// Plays 返回由外部数据创建的击球轨迹
func (s *StadiumScene) Plays() []*entities.Hit {
	return s.plays
}

// ModelState 返回模型加载状态
func (s *StadiumScene) ModelState() ModelState {
	return s.modelState
}

// Model 返回已加载的模型根节点（未加载时为 nil）
func (s *StadiumScene) Model() *scene3d.Node {
	return s.model
}

// Axes 返回坐标轴节点（模型加载前为 nil）
func (s *StadiumScene) Axes() *scene3d.Node {
	return s.axes
}

// AnimationSystem 返回动画驱动器
func (s *StadiumScene) AnimationSystem() *systems.AnimationSystem {
	return s.animationSystem
}

// statusLine 返回状态栏文本
func (s *StadiumScene) statusLine() string {
	switch s.modelState {
	case ModelLoading:
		if s.modelTotal > 0 {
			return fmt.Sprintf("Loading model %.0f%%", 100*float64(s.modelLoaded)/float64(s.modelTotal))
		}
		return "Loading model..."
	case ModelFailed:
		return fmt.Sprintf("Model failed to load: %v", s.modelErr)
	default:
		return fmt.Sprintf("Progress %.3f", s.animationSystem.Progress())
	}
}
