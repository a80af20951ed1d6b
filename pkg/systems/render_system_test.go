package systems

import (
	"math"
	"testing"

	"github.com/decker502/stadiumhit/pkg/components"
	"github.com/decker502/stadiumhit/pkg/config"
	"github.com/decker502/stadiumhit/pkg/ecs"
	"github.com/decker502/stadiumhit/pkg/entities"
	"github.com/decker502/stadiumhit/pkg/geometry"
	"github.com/decker502/stadiumhit/pkg/scene3d"
	"github.com/go-gl/mathgl/mgl64"
)

func newTestRenderer() (*RenderSystem, *ecs.EntityManager) {
	cfg := config.DefaultSceneConfig()
	cam := scene3d.NewPerspectiveCamera(75, 1, 0.1, 2000)
	cam.Position = mgl64.Vec3{0, 0, -10}
	cam.LookAt(mgl64.Vec3{})

	em := ecs.NewEntityManager()
	return NewRenderSystem(em, cam, cfg.Lights), em
}

// triangleNode 在 z 平面上创建一个单三角形网格节点
func triangleNode(name string, z float32) *scene3d.Node {
	g := geometry.NewBufferGeometry(
		[]float32{-1, 0, z, 1, 0, z, 0, 1, z},
		nil,
		[]uint32{0, 1, 2},
	)
	return scene3d.NewMeshNode(name, &scene3d.Mesh{
		Geometry: g,
		Material: &scene3d.Material{Color: 0xff0000, Opacity: 1},
	})
}

func addNode(em *ecs.EntityManager, n *scene3d.Node) {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.NodeComponent{Node: n})
}

func TestRenderSystem_SortsFarToNear(t *testing.T) {
	rs, em := newTestRenderer()
	addNode(em, triangleNode("near", -2))
	addNode(em, triangleNode("far", 5))

	tris, _ := rs.Collect(200, 200)
	if len(tris) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(tris))
	}
	if tris[0].Depth <= tris[1].Depth {
		t.Errorf("Triangles should be sorted far to near: %v, %v", tris[0].Depth, tris[1].Depth)
	}
}

func TestRenderSystem_CullsBehindCamera(t *testing.T) {
	rs, em := newTestRenderer()
	addNode(em, triangleNode("behind", -20))

	tris, _ := rs.Collect(200, 200)
	if len(tris) != 0 {
		t.Errorf("Triangle behind the camera should be culled, got %d", len(tris))
	}
}

func TestRenderSystem_SkipsHiddenSubtree(t *testing.T) {
	rs, em := newTestRenderer()
	root := scene3d.NewNode("root")
	root.Add(triangleNode("child", 0))
	root.Visible = false
	addNode(em, root)

	tris, _ := rs.Collect(200, 200)
	if len(tris) != 0 {
		t.Errorf("Hidden subtree should not be drawn, got %d", len(tris))
	}
}

func TestRenderSystem_OpaqueIgnoresOpacity(t *testing.T) {
	rs, em := newTestRenderer()
	n := triangleNode("opaque", 0)
	n.Mesh.Material.Opacity = 0.3
	addNode(em, n)

	tris, _ := rs.Collect(200, 200)
	if len(tris) != 1 || tris[0].A != 1 {
		t.Fatalf("Non-transparent material should draw with alpha 1: %+v", tris)
	}

	n.Mesh.Material.Transparent = true
	tris, _ = rs.Collect(200, 200)
	if math.Abs(float64(tris[0].A)-0.3) > 1e-6 {
		t.Errorf("Transparent material alpha: got %v", tris[0].A)
	}
}

func TestRenderSystem_HitFollowsDrawRange(t *testing.T) {
	rs, em := newTestRenderer()
	hit, err := entities.NewHit([]mgl64.Vec3{{0, 0, 0}, {0, 1, 2}, {0, 0, 4}})
	if err != nil {
		t.Fatalf("NewHit failed: %v", err)
	}
	addNode(em, hit.Node())

	tris, _ := rs.Collect(400, 400)
	if len(tris) != 0 {
		t.Errorf("Unshown hit should draw nothing, got %d", len(tris))
	}

	hit.Show(0, 0.5)
	pathOnly := countPathTriangles(hit)
	if pathOnly != 25*entities.RadiusSegments*2 {
		t.Errorf("Half progress should expose 25 segments, got %d triangles", pathOnly)
	}

	tris, _ = rs.Collect(400, 400)
	if len(tris) <= pathOnly {
		t.Errorf("Ball should add triangles on top of the path: %d <= %d", len(tris), pathOnly)
	}
}

// countPathTriangles 只统计轨迹管道绘制范围内的三角形
func countPathTriangles(h *entities.Hit) int {
	return len(h.Node().GetObjectByName(entities.PathNodeName).Mesh.Geometry.VisibleIndices()) / 3
}

func TestRenderSystem_ProjectsAxes(t *testing.T) {
	rs, em := newTestRenderer()
	addNode(em, scene3d.NewAxesHelper(5))

	_, lines := rs.Collect(200, 200)
	if len(lines) != 3 {
		t.Fatalf("Expected 3 axis lines, got %d", len(lines))
	}
	if lines[0].Color.R != 255 || lines[1].Color.G != 255 || lines[2].Color.B != 255 {
		t.Errorf("Axis colors should be red, green, blue: %+v", lines)
	}
}

func TestShade(t *testing.T) {
	lights := config.DefaultSceneConfig().Lights
	up := mgl64.Vec3{0, 1, 0}

	tests := []struct {
		name   string
		normal mgl64.Vec3
		factor float64
	}{
		{"正对光源", up, 2*ambientScale + 2*diffuseScale},
		{"背向光源只有环境光", up.Mul(-1), 2 * ambientScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := Shade(1, 0.5, 0, tt.normal, up, lights)
			if math.Abs(r-math.Min(1, tt.factor)) > 1e-9 {
				t.Errorf("Red channel: got %v, want %v", r, math.Min(1, tt.factor))
			}
			if math.Abs(g-math.Min(1, 0.5*tt.factor)) > 1e-9 {
				t.Errorf("Green channel: got %v, want %v", g, math.Min(1, 0.5*tt.factor))
			}
			if b != 0 {
				t.Errorf("Blue channel should stay 0, got %v", b)
			}
		})
	}
}
