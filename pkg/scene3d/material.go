package scene3d

import (
	"image/color"
	"math"

	"github.com/decker502/stadiumhit/pkg/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Color 24 位 RGB 颜色（0xRRGGBB）
type Color uint32

// RGB 返回 [0,1] 范围的分量
func (c Color) RGB() (r, g, b float64) {
	return float64((c>>16)&0xff) / 255, float64((c>>8)&0xff) / 255, float64(c&0xff) / 255
}

// RGBA 返回预乘 alpha 的 color.RGBA
func (c Color) RGBA(opacity float64) color.RGBA {
	r, g, b := c.RGB()
	a := math.Max(0, math.Min(1, opacity))
	return color.RGBA{
		R: uint8(math.Round(r * a * 255)),
		G: uint8(math.Round(g * a * 255)),
		B: uint8(math.Round(b * a * 255)),
		A: uint8(math.Round(a * 255)),
	}
}

// Material 简化的 Phong 材质参数
type Material struct {
	Color       Color
	Opacity     float64
	Transparent bool
	Shininess   float64
}

// Mesh 网格 = 几何体 + 材质
type Mesh struct {
	Geometry *geometry.BufferGeometry
	Material *Material
}

// LineSegment 一条带颜色的线段
type LineSegment struct {
	A, B  mgl64.Vec3
	Color Color
}

// LineSet 线段集合（坐标轴辅助线等）
type LineSet struct {
	Segments []LineSegment
}

// NewAxesHelper 创建从原点出发、长度为 size 的 XYZ 坐标轴（红/绿/蓝）
func NewAxesHelper(size float64) *Node {
	n := NewNode("AxesHelper")
	n.Lines = &LineSet{Segments: []LineSegment{
		{A: mgl64.Vec3{}, B: mgl64.Vec3{size, 0, 0}, Color: 0xff0000},
		{A: mgl64.Vec3{}, B: mgl64.Vec3{0, size, 0}, Color: 0x00ff00},
		{A: mgl64.Vec3{}, B: mgl64.Vec3{0, 0, size}, Color: 0x0000ff},
	}}
	return n
}
