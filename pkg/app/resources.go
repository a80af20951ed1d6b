package app

import (
	"fmt"
	"log"

	"github.com/decker502/stadiumhit/pkg/config"
	"github.com/decker502/stadiumhit/pkg/embedded"
)

// DefaultSceneConfigPath 嵌入的默认场景配置
const DefaultSceneConfigPath = "data/scene.yaml"

// LoadSceneConfig 加载场景配置
//
// path 为空时读取嵌入的 data/scene.yaml；嵌入资源不可用时使用默认配置。
//
// 参数:
//   - path: 外部配置文件路径，可为空
//
// 返回:
//   - *config.SceneConfig: 场景配置
//   - error: 外部文件读取或解析失败时返回错误
func LoadSceneConfig(path string) (*config.SceneConfig, error) {
	if path != "" {
		return config.LoadSceneConfig(path)
	}

	if !embedded.Exists(DefaultSceneConfigPath) {
		log.Printf("[App] Embedded %s not found, using defaults", DefaultSceneConfigPath)
		return config.DefaultSceneConfig(), nil
	}
	data, err := embedded.ReadFile(DefaultSceneConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded scene config: %w", err)
	}
	return config.ParseSceneConfig(data)
}

// LoadPlays 加载配置中指定的击球数据文件
//
// 以 "data/" 开头且已嵌入的路径从嵌入资源读取，其余从磁盘读取。
// 未配置文件时返回空列表。
func LoadPlays(cfg *config.SceneConfig) ([]config.Play, error) {
	path := cfg.PlaysFile
	if path == "" {
		return nil, nil
	}

	if embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded plays: %w", err)
		}
		return config.ParsePlays(data)
	}
	return config.LoadPlays(path)
}
