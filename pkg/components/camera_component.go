package components

import "github.com/go-gl/mathgl/mgl64"

// CameraComponent 管理轨道相机的球坐标状态。
// 相机始终围绕 Target 旋转，位置由 Radius/Theta/Phi 决定。
type CameraComponent struct {
	// Target 轨道中心（世界坐标）
	Target mgl64.Vec3

	// Radius 相机到中心的距离
	Radius float64

	// Theta 绕 Y 轴的方位角（弧度），0 指向 +Z
	Theta float64

	// Phi 与 +Y 轴的极角（弧度），限制在 (0, π) 内
	Phi float64

	// RotateSpeed 拖动旋转速度（弧度/像素）
	RotateSpeed float64

	// ZoomSpeed 滚轮缩放比例（每格）
	ZoomSpeed float64

	// MinDistance / MaxDistance 缩放范围
	MinDistance float64
	MaxDistance float64

	// Dragging 是否正在拖动
	Dragging bool

	// LastCursorX / LastCursorY 上一帧光标位置
	LastCursorX int
	LastCursorY int

	// ActivePreset 当前相机预设名，手动旋转后清空
	ActivePreset string
}
