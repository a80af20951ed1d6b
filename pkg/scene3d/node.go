// Package scene3d 提供最小的场景图：节点层级、网格、材质与线段集
//
// 实体（如击球轨迹）持有节点句柄并通过名称查找子节点，
// 渲染系统按世界矩阵遍历可见节点。
package scene3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Node 场景图节点
type Node struct {
	Name     string
	Visible  bool
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	// Mesh 三角形网格，可为 nil（纯分组节点）
	Mesh *Mesh
	// Lines 线段集，可为 nil
	Lines *LineSet
	// UserData 附加数据（不参与渲染）
	UserData any

	parent   *Node
	children []*Node
}

// NewNode 创建一个可见的空分组节点
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Visible:  true,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// NewMeshNode 创建带网格的节点
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	return n
}

// Add 添加子节点；子节点已有父节点时先从原父节点移除
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove 移除子节点
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Children 返回子节点列表
func (n *Node) Children() []*Node {
	return n.children
}

// Parent 返回父节点
func (n *Node) Parent() *Node {
	return n.parent
}

// GetObjectByName 深度优先查找名称匹配的节点（包括自身）
func (n *Node) GetObjectByName(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.GetObjectByName(name); found != nil {
			return found
		}
	}
	return nil
}

// SetRotationY 设置绕 Y 轴的旋转（弧度）
func (n *Node) SetRotationY(angle float64) {
	n.Rotation = mgl64.QuatRotate(angle, mgl64.Vec3{0, 1, 0})
}

// LocalMatrix 返回 T·R·S 本地变换矩阵
func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := n.Rotation.Normalize().Mat4()
	s := mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix 返回从根节点累积的世界变换矩阵
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Traverse 深度优先遍历所有节点
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// TraverseVisible 遍历可见节点并给出世界矩阵；不可见节点的整棵子树被跳过
func (n *Node) TraverseVisible(parentWorld mgl64.Mat4, fn func(node *Node, world mgl64.Mat4)) {
	if !n.Visible {
		return
	}
	world := parentWorld.Mul4(n.LocalMatrix())
	fn(n, world)
	for _, c := range n.children {
		c.TraverseVisible(world, fn)
	}
}

// ComputeBounds 计算节点树中所有网格顶点的世界坐标包围盒
func ComputeBounds(root *Node) (min, max mgl64.Vec3, ok bool) {
	min = mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}

	root.Traverse(func(n *Node) {
		if n.Mesh == nil || n.Mesh.Geometry == nil {
			return
		}
		world := n.WorldMatrix()
		g := n.Mesh.Geometry
		for i := 0; i < g.VertexCount(); i++ {
			v := mgl64.TransformCoordinate(g.Vertex(i), world)
			for a := 0; a < 3; a++ {
				min[a] = math.Min(min[a], v[a])
				max[a] = math.Max(max[a], v[a])
			}
			ok = true
		}
	})
	return min, max, ok
}
