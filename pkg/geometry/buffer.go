// Package geometry 提供轨迹渲染所需的几何体：曲线、管道、球体与管道收尖变换
//
// 所有几何体使用扁平的 float32 顶点缓冲（x,y,z 交错）和 uint32 三角形索引，
// 并支持按索引数量裁剪的绘制范围（DrawRange）。
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DrawAll 表示绘制范围不限
const DrawAll = math.MaxInt32

// BufferGeometry 索引三角形网格
type BufferGeometry struct {
	// Positions 顶点坐标（x,y,z 交错）
	Positions []float32
	// Normals 顶点法线（x,y,z 交错），可为空
	Normals []float32
	// Indices 三角形索引，每 3 个为一个三角形
	Indices []uint32

	drawStart int
	drawCount int
}

// NewBufferGeometry 创建绘制范围不限的几何体
func NewBufferGeometry(positions, normals []float32, indices []uint32) *BufferGeometry {
	return &BufferGeometry{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		drawCount: DrawAll,
	}
}

// SetDrawRange 设置绘制范围（以索引为单位）
func (g *BufferGeometry) SetDrawRange(start, count int) {
	g.drawStart = start
	g.drawCount = count
}

// DrawRange 返回当前绘制范围
func (g *BufferGeometry) DrawRange() (start, count int) {
	return g.drawStart, g.drawCount
}

// VisibleIndices 返回绘制范围内的索引切片（按整三角形截断）
func (g *BufferGeometry) VisibleIndices() []uint32 {
	start := g.drawStart
	if start < 0 {
		start = 0
	}
	if start > len(g.Indices) {
		start = len(g.Indices)
	}
	end := len(g.Indices)
	if g.drawCount < end-start {
		end = start + g.drawCount
	}
	if end < start {
		end = start
	}
	end = start + (end-start)/3*3
	return g.Indices[start:end]
}

// VertexCount 返回顶点数量
func (g *BufferGeometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Vertex 返回第 i 个顶点坐标
func (g *BufferGeometry) Vertex(i int) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(g.Positions[3*i]),
		float64(g.Positions[3*i+1]),
		float64(g.Positions[3*i+2]),
	}
}

// Bounds 返回所有顶点的轴对齐包围盒；无顶点时 ok 为 false
func (g *BufferGeometry) Bounds() (min, max mgl64.Vec3, ok bool) {
	n := g.VertexCount()
	if n == 0 {
		return min, max, false
	}
	min = g.Vertex(0)
	max = min
	for i := 1; i < n; i++ {
		v := g.Vertex(i)
		for a := 0; a < 3; a++ {
			min[a] = math.Min(min[a], v[a])
			max[a] = math.Max(max[a], v[a])
		}
	}
	return min, max, true
}
