package scene3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera 透视相机
type PerspectiveCamera struct {
	FOV    float64 // 垂直视角（度）
	Aspect float64
	Near   float64
	Far    float64

	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
}

// NewPerspectiveCamera 创建朝向原点的透视相机
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	return &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     mgl64.Vec3{0, 1, 0},
	}
}

// LookAt 设置观察目标点
func (c *PerspectiveCamera) LookAt(target mgl64.Vec3) {
	c.Target = target
}

// SetAspect 根据渲染表面尺寸更新宽高比
func (c *PerspectiveCamera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
}

// ViewMatrix 返回视图矩阵
func (c *PerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// ProjectionMatrix 返回投影矩阵
func (c *PerspectiveCamera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection 返回 投影·视图 矩阵
func (c *PerspectiveCamera) ViewProjection() mgl64.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// ProjectToScreen 将世界坐标投影到屏幕像素坐标
//
// 返回:
//   - screen: 像素坐标（左上角为原点）
//   - depth: 归一化深度 [-1,1]，越小越近
//   - ok: 点位于近平面之前且未超出远平面
func ProjectToScreen(viewProj mgl64.Mat4, p mgl64.Vec3, width, height int) (screen mgl64.Vec2, depth float64, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	w := clip[3]
	if w <= 1e-9 {
		return screen, 0, false
	}

	ndc := clip.Vec3().Mul(1 / w)
	if ndc[2] < -1 || ndc[2] > 1 || math.IsNaN(ndc[0]) {
		return screen, 0, false
	}

	screen = mgl64.Vec2{
		(ndc[0] + 1) / 2 * float64(width),
		(1 - ndc[1]) / 2 * float64(height),
	}
	return screen, ndc[2], true
}
