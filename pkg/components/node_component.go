package components

import "github.com/decker502/stadiumhit/pkg/scene3d"

// NodeComponent 将场景节点挂到实体上，渲染系统只绘制拥有此组件的实体
type NodeComponent struct {
	Node *scene3d.Node
}
