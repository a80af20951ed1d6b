//go:build !mobile

package utils

import "os"

// mobileEmulateEnv 设为 "1" 时桌面端按移动端处理（用于本地调试触摸提示）
const mobileEmulateEnv = "STADIUMHIT_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false，除非设置了 STADIUMHIT_MOBILE_EMULATE=1
func IsMobile() bool {
	return os.Getenv(mobileEmulateEnv) == "1"
}
