//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureStorageDir 确保 Android 上的设置目录存在并可写
// gdata 在 Android 上使用 /data/data/{package}/ 作为根目录，但不会预先创建子目录
//
// 返回：
//   - error: 创建目录失败或目录不可写时返回错误
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return fmt.Errorf("failed to detect Android package name")
	}

	dir := filepath.Join(root, "settings")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("settings directory %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 返回 /data/data/{package}，包名取自 /proc/self/cmdline
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	// cmdline 以 NUL 分隔参数，包名是第一个参数
	pkg := strings.TrimSpace(strings.SplitN(string(data), "\x00", 2)[0])
	if pkg == "" {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
