package systems

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/decker502/stadiumhit/pkg/components"
	"github.com/decker502/stadiumhit/pkg/config"
	"github.com/decker502/stadiumhit/pkg/ecs"
	"github.com/decker502/stadiumhit/pkg/scene3d"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// 环境光、方向光的亮度换算系数：两者强度均为 2 时正面受光面略微过曝
	ambientScale = 0.25
	diffuseScale = 0.35

	// 单次 DrawTriangles 的顶点上限（uint16 索引）
	maxBatchVertices = math.MaxUint16 - 2

	axesStrokeWidth = 2
)

// Triangle 投影到屏幕后的三角形
type Triangle struct {
	Points [3]mgl64.Vec2
	// Depth 三个顶点归一化深度的平均值，越大越远
	Depth float64
	// R, G, B 着色后的颜色 [0,1]，A 为不透明度
	R, G, B, A float32
}

// Line 投影到屏幕后的线段
type Line struct {
	A, B  mgl64.Vec2
	Color color.RGBA
}

// RenderSystem 软件投影渲染系统
//
// 渲染流程：
//  1. 查询拥有 NodeComponent 的实体，按世界矩阵遍历可见节点
//  2. 对每个网格的绘制范围内三角形做世界变换、Lambert 着色和透视投影
//  3. 按深度从远到近排序（画家算法），分批调用 DrawTriangles
//  4. 线段集（坐标轴）最后用 vector.StrokeLine 叠加
//
// 任一顶点位于近平面之后或远平面之外的三角形整体丢弃。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *scene3d.PerspectiveCamera
	lights        config.LightsConfig

	whiteImage *ebiten.Image

	triangles []Triangle
	lines     []Line
	vertices  []ebiten.Vertex // 复用，避免每帧分配
	indices   []uint16

	lastTriangleCount int
}

// NewRenderSystem 创建渲染系统
//
// 参数:
//   - em: 实体管理器
//   - camera: 观察相机
//   - lights: 灯光配置
func NewRenderSystem(em *ecs.EntityManager, camera *scene3d.PerspectiveCamera, lights config.LightsConfig) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		camera:        camera,
		lights:        lights,
		triangles:     make([]Triangle, 0, 4096),
		vertices:      make([]ebiten.Vertex, 0, 3*4096),
		indices:       make([]uint16, 0, 3*4096),
	}
}

// TriangleCount 返回上一帧提交的三角形数
func (s *RenderSystem) TriangleCount() int {
	return s.lastTriangleCount
}

// Collect 遍历场景并生成按深度排序的屏幕三角形和线段
//
// 参数:
//   - width, height: 渲染表面尺寸（像素）
//
// 返回:
//   - []Triangle: 从远到近排序的三角形（切片在下次调用时复用）
//   - []Line: 线段
func (s *RenderSystem) Collect(width, height int) ([]Triangle, []Line) {
	s.triangles = s.triangles[:0]
	s.lines = s.lines[:0]

	viewProj := s.camera.ViewProjection()
	lightDir := mgl64.Vec3{
		s.lights.DirectionalPosition[0],
		s.lights.DirectionalPosition[1],
		s.lights.DirectionalPosition[2],
	}
	lightDir = safeUnit(lightDir)

	for _, id := range ecs.GetEntitiesWith1[*components.NodeComponent](s.entityManager) {
		nc, ok := ecs.GetComponent[*components.NodeComponent](s.entityManager, id)
		if !ok || nc.Node == nil {
			continue
		}
		nc.Node.TraverseVisible(mgl64.Ident4(), func(node *scene3d.Node, world mgl64.Mat4) {
			if node.Mesh != nil && node.Mesh.Geometry != nil && node.Mesh.Material != nil {
				s.collectMesh(node.Mesh, world, viewProj, lightDir, width, height)
			}
			if node.Lines != nil {
				s.collectLines(node.Lines, world, viewProj, width, height)
			}
		})
	}

	sort.SliceStable(s.triangles, func(i, j int) bool {
		return s.triangles[i].Depth > s.triangles[j].Depth
	})
	return s.triangles, s.lines
}

func (s *RenderSystem) collectMesh(mesh *scene3d.Mesh, world, viewProj mgl64.Mat4, lightDir mgl64.Vec3, width, height int) {
	g := mesh.Geometry
	mat := mesh.Material
	indices := g.VisibleIndices()
	baseR, baseG, baseB := mat.Color.RGB()
	alpha := float32(math.Max(0, math.Min(1, mat.Opacity)))
	if !mat.Transparent {
		alpha = 1
	}
	if alpha == 0 {
		return
	}

	for i := 0; i+2 < len(indices); i += 3 {
		var worldPts [3]mgl64.Vec3
		var tri Triangle
		visible := true
		for k := 0; k < 3; k++ {
			worldPts[k] = mgl64.TransformCoordinate(g.Vertex(int(indices[i+k])), world)
			screen, depth, ok := scene3d.ProjectToScreen(viewProj, worldPts[k], width, height)
			if !ok {
				visible = false
				break
			}
			tri.Points[k] = screen
			tri.Depth += depth / 3
		}
		if !visible {
			continue
		}

		normal := worldPts[1].Sub(worldPts[0]).Cross(worldPts[2].Sub(worldPts[0]))
		if normal.Len() < 1e-12 {
			continue
		}
		normal = normal.Normalize()
		// 双面着色：法线朝向相机一侧
		center := worldPts[0].Add(worldPts[1]).Add(worldPts[2]).Mul(1.0 / 3)
		if normal.Dot(s.camera.Position.Sub(center)) < 0 {
			normal = normal.Mul(-1)
		}

		r, gg, b := Shade(baseR, baseG, baseB, normal, lightDir, s.lights)
		tri.R, tri.G, tri.B, tri.A = float32(r), float32(gg), float32(b), alpha
		s.triangles = append(s.triangles, tri)
	}
}

func (s *RenderSystem) collectLines(set *scene3d.LineSet, world, viewProj mgl64.Mat4, width, height int) {
	for _, seg := range set.Segments {
		a, _, okA := scene3d.ProjectToScreen(viewProj, mgl64.TransformCoordinate(seg.A, world), width, height)
		b, _, okB := scene3d.ProjectToScreen(viewProj, mgl64.TransformCoordinate(seg.B, world), width, height)
		if !okA || !okB {
			continue
		}
		s.lines = append(s.lines, Line{A: a, B: b, Color: seg.Color.RGBA(1)})
	}
}

// Shade 计算 Lambert 漫反射着色（环境光 + 单方向光）
//
// 参数:
//   - r, g, b: 材质基色 [0,1]
//   - normal: 单位法线
//   - lightDir: 指向光源的单位向量
//   - lights: 灯光配置
//
// 返回:
//   - 着色后的颜色，每个分量截断到 [0,1]
func Shade(r, g, b float64, normal, lightDir mgl64.Vec3, lights config.LightsConfig) (float64, float64, float64) {
	ar, ag, ab := scene3d.Color(lights.AmbientColor).RGB()
	dr, dg, db := scene3d.Color(lights.DirectionalColor).RGB()
	ndotl := math.Max(0, normal.Dot(lightDir))

	amb := lights.AmbientIntensity * ambientScale
	dif := lights.DirectionalIntensity * diffuseScale * ndotl

	return clamp01(r * (ar*amb + dr*dif)),
		clamp01(g * (ag*amb + dg*dif)),
		clamp01(b * (ab*amb + db*dif))
}

// Draw 绘制整个场景
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	if s.whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	bounds := screen.Bounds()
	triangles, lines := s.Collect(bounds.Dx(), bounds.Dy())
	s.lastTriangleCount = len(triangles)

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	for _, tri := range triangles {
		if len(s.vertices)+3 > maxBatchVertices {
			s.flush(screen)
		}
		base := uint16(len(s.vertices))
		for _, p := range tri.Points {
			s.vertices = append(s.vertices, ebiten.Vertex{
				DstX:   float32(p.X()),
				DstY:   float32(p.Y()),
				SrcX:   1,
				SrcY:   1,
				ColorR: tri.R,
				ColorG: tri.G,
				ColorB: tri.B,
				ColorA: tri.A,
			})
		}
		s.indices = append(s.indices, base, base+1, base+2)
	}
	s.flush(screen)

	for _, l := range lines {
		vector.StrokeLine(screen,
			float32(l.A.X()), float32(l.A.Y()),
			float32(l.B.X()), float32(l.B.Y()),
			axesStrokeWidth, l.Color, true)
	}
}

func (s *RenderSystem) flush(screen *ebiten.Image) {
	if len(s.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(s.vertices, s.indices, s.whiteImage, op)

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func safeUnit(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() < 1e-12 {
		return mgl64.Vec3{0, 1, 0}
	}
	return v.Normalize()
}
