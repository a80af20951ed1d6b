package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Play 一条外部击球记录
//
// 结构与追踪数据一致：击球路径位于 result.hit.path，
// 为扁平的 [x0, y0, z0, x1, y1, z1, ...] 坐标数组。
type Play struct {
	ID     string     `yaml:"id"`
	Batter string     `yaml:"batter,omitempty"`
	Inning int        `yaml:"inning,omitempty"`
	Result PlayResult `yaml:"result"`
}

// PlayResult 击球结果
type PlayResult struct {
	Hit HitTracking `yaml:"hit"`
}

// HitTracking 击球追踪数据
type HitTracking struct {
	Path []float32 `yaml:"path"`
}

// PlaysFile 击球数据文件结构
type PlaysFile struct {
	Plays []Play `yaml:"plays"`
}

// LoadPlays 从文件加载击球数据
func LoadPlays(path string) ([]Play, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plays file: %w", err)
	}
	return ParsePlays(data)
}

// ParsePlays 解析 YAML 击球数据并验证路径
//
// 路径长度必须是 3 的倍数且至少包含 2 个点。
func ParsePlays(data []byte) ([]Play, error) {
	var file PlaysFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse plays file: %w", err)
	}

	for i, p := range file.Plays {
		n := len(p.Result.Hit.Path)
		if n%3 != 0 {
			return nil, fmt.Errorf("play %d (%q): path length %d is not a multiple of 3", i, p.ID, n)
		}
		if n < 6 {
			return nil, fmt.Errorf("play %d (%q): path needs at least 2 points, got %d", i, p.ID, n/3)
		}
	}

	return file.Plays, nil
}
