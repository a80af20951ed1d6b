//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.stadiumhit -o build/android/stadiumhit.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/StadiumHit.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/stadiumhit/pkg/app"
	"github.com/decker502/stadiumhit/pkg/embedded"
	"github.com/decker502/stadiumhit/pkg/game"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	cfg, err := app.LoadSceneConfig("")
	if err != nil {
		log.Fatalf("场景配置加载失败: %v", err)
	}
	plays, err := app.LoadPlays(cfg)
	if err != nil {
		log.Printf("[Mobile] Warning: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:  true,
		Scene:    cfg,
		Plays:    plays,
		Settings: game.OpenSettingsManager("stadiumhit"),
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
