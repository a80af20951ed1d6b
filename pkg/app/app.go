// Package app 提供查看器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/decker502/stadiumhit/pkg/config"
	"github.com/decker502/stadiumhit/pkg/game"
	"github.com/decker502/stadiumhit/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Scene 场景配置，为空时使用默认配置
	Scene *config.SceneConfig
	// Plays 额外显示的击球数据
	Plays []config.Play
	// Settings 查看器设置，为空时仅使用内存设置
	Settings *game.SettingsManager
}

// App 是查看器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	verbose      bool
}

// NewApp 创建并初始化查看器应用
//
// 返回:
//   - *App: 应用实例
//   - error: 场景创建失败时返回错误
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	opts := scenes.StadiumSceneOptions{
		Config:   cfg.Scene,
		Plays:    cfg.Plays,
		Settings: cfg.Settings,
	}
	if cfg.Scene != nil && cfg.Scene.PlaysFile != "" {
		sceneCfg := cfg.Scene
		opts.LoadPlays = func() ([]config.Play, error) { return LoadPlays(sceneCfg) }
	}

	scene, err := scenes.NewStadiumScene(opts)
	if err != nil {
		return nil, fmt.Errorf("场景初始化失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)
	log.Printf("[App] Stadium scene ready")

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新场景
// 每个 tick 调用一次（通常每秒 60 次）；窗口关闭时保存设置并结束循环
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制场景
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸跟随窗口尺寸，尺寸变化时相机宽高比随之更新
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Shutdown 通知当前场景保存需要持久化的数据
//
// 返回:
//   - bool: 当前场景保存成功，或者无需保存
func (a *App) Shutdown() bool {
	if s, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
