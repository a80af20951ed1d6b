// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// GetPointerState 获取指针的完整状态
// 同时支持鼠标和触摸输入，优先检测触摸
//
// 返回：是否按下、X坐标、Y坐标
func GetPointerState() (pressed bool, x, y int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y
}

// IsPinching 是否有两个或更多活动触摸
func IsPinching() bool {
	return len(ebiten.AppendTouchIDs(nil)) >= 2
}

// PinchDistance 返回前两个触摸点之间的像素距离
// 少于两个触摸点时返回 false
func PinchDistance() (float64, bool) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) < 2 {
		return 0, false
	}
	x0, y0 := ebiten.TouchPosition(touchIDs[0])
	x1, y1 := ebiten.TouchPosition(touchIDs[1])
	return math.Hypot(float64(x1-x0), float64(y1-y0)), true
}

// PinchToWheel 把两帧之间的捏合距离变化换算为滚轮格数
//
// 参数:
//   - prev, cur: 上一帧与本帧的两指距离（像素）
//   - pixelsPerNotch: 相当于一格滚轮的距离变化
//
// 返回:
//   - float64: 张开为正（拉近），合拢为负；参数无效时为 0
func PinchToWheel(prev, cur, pixelsPerNotch float64) float64 {
	if prev <= 0 || cur <= 0 || pixelsPerNotch <= 0 {
		return 0
	}
	return (cur - prev) / pixelsPerNotch
}
