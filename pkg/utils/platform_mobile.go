//go:build mobile

package utils

const mobileEmulateEnv = "STADIUMHIT_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
// 移动端编译时返回 true
func IsMobile() bool {
	return true
}
