package main

import (
	"flag"
	"log"

	"github.com/decker502/stadiumhit/pkg/app"
	"github.com/decker502/stadiumhit/pkg/embedded"
	"github.com/decker502/stadiumhit/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// 设置存储使用的应用名
const appName = "stadiumhit"

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	configPath = flag.String("config", "", "场景配置文件路径（默认使用内置 data/scene.yaml）")
	modelPath  = flag.String("model", "", "覆盖配置中的球场模型路径（.glb）")
	playsPath  = flag.String("plays", "", "覆盖配置中的击球数据文件路径")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	cfg, err := app.LoadSceneConfig(*configPath)
	if err != nil {
		log.Fatalf("场景配置加载失败: %v", err)
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}
	if *playsPath != "" {
		cfg.PlaysFile = *playsPath
	}

	// 击球数据无效时只显示预设轨迹
	plays, err := app.LoadPlays(cfg)
	if err != nil {
		log.Printf("[Main] Warning: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:  *verbose,
		Scene:    cfg,
		Plays:    plays,
		Settings: game.OpenSettingsManager(appName),
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
