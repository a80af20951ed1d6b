package entities

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/stadiumhit/pkg/config"
	"github.com/decker502/stadiumhit/pkg/geometry"
	"github.com/decker502/stadiumhit/pkg/scene3d"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	// TubularSegments 轨迹管道纵向分段数
	TubularSegments = 50
	// RadiusSegments 轨迹管道圆周分段数
	RadiusSegments = 8
	// TubeRadius 轨迹管道半径
	TubeRadius = 0.2
	// BallRadius 头部小球半径
	BallRadius = 0.2

	// PathNodeName 轨迹网格子节点名
	PathNodeName = "path"
	// BallNodeName 头部小球子节点名
	BallNodeName = "ball"

	pathShininess = 50
	ballShininess = 40
)

// 头部小球几何体由所有轨迹共享，只读
var ballGeometry = geometry.NewSphereGeometry(BallRadius, 16, 8)

// Options 轨迹外观选项
type Options struct {
	Color     uint32  // 轨迹颜色 0xRRGGBB
	BallColor uint32  // 小球颜色 0xRRGGBB
	Opacity   float64 // 轨迹不透明度 [0,1]
	DrawTo    float64 // 初始绘制进度 [0,1]，按 Show 的分段规则换算为索引数
}

// DefaultOptions 返回默认轨迹选项
func DefaultOptions() Options {
	return Options{
		Color:     0xcccccc,
		BallColor: 0xf8f6e4,
		Opacity:   0.1,
		DrawTo:    0,
	}
}

// Option 修改构造选项
type Option func(*Options)

// WithTrailColor 设置轨迹颜色
func WithTrailColor(c uint32) Option { return func(o *Options) { o.Color = c } }

// WithBallColor 设置小球颜色
func WithBallColor(c uint32) Option { return func(o *Options) { o.BallColor = c } }

// WithTrailOpacity 设置轨迹不透明度
func WithTrailOpacity(v float64) Option { return func(o *Options) { o.Opacity = v } }

// WithDrawTo 设置初始绘制进度
func WithDrawTo(v float64) Option { return func(o *Options) { o.DrawTo = v } }

// HitProps 构造时捕获的默认外观，之后不再修改
type HitProps struct {
	DefaultColor     scene3d.Color
	DefaultBallColor scene3d.Color
	DefaultOpacity   float64
	DefaultDrawTo    float64
}

// Range 记录最近一次 Show 的进度区间
type Range struct {
	In  float64
	Out float64
}

// HitState 轨迹的实时状态
type HitState struct {
	Range   Range
	Color   scene3d.Color
	DrawTo  float64
	Opacity float64
}

// Hit 动画击球轨迹：渐细的管道 + 头部小球
//
// Hit 持有一个场景节点句柄，其子节点 "path"（管道网格）与 "ball"（小球）
// 在构造时创建，之后只修改、不替换。
type Hit struct {
	node  *scene3d.Node
	path  *scene3d.Node
	ball  *scene3d.Node
	tube  *geometry.TubeGeometry
	props HitProps
	state HitState
}

// NewHit 根据有序路径点创建击球轨迹
//
// 参数:
//   - path: 有序路径点（至少 1 个）
//   - opts: 外观选项，未指定的字段使用 DefaultOptions
//
// 返回:
//   - *Hit: 轨迹实体
//   - error: 路径为空时返回错误
func NewHit(path []mgl64.Vec3, opts ...Option) (*Hit, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("hit path cannot be empty")
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	curve := geometry.NewCatmullRomCurve3(path)
	tube := geometry.NewTubeGeometry(curve, TubularSegments, TubeRadius, RadiusSegments)

	// 首端收尖：只在构造时执行一次
	geometry.TaperTube(tube.Positions, RadiusSegments)

	pathNode := scene3d.NewMeshNode(PathNodeName, &scene3d.Mesh{
		Geometry: tube.BufferGeometry,
		Material: &scene3d.Material{
			Color:       scene3d.Color(o.Color),
			Opacity:     o.Opacity,
			Transparent: true,
			Shininess:   pathShininess,
		},
	})
	tube.SetDrawRange(0, drawCount(o.DrawTo, tube.IndicesPerSegment()))

	ballNode := scene3d.NewMeshNode(BallNodeName, &scene3d.Mesh{
		Geometry: ballGeometry,
		Material: &scene3d.Material{
			Color:       scene3d.Color(o.BallColor),
			Opacity:     ballOpacity(o.Opacity),
			Transparent: true,
			Shininess:   ballShininess,
		},
	})
	ballNode.Visible = false
	ballNode.Position = curve.PointAt(0)

	root := scene3d.NewNode("")
	root.Add(pathNode)
	root.Add(ballNode)

	return &Hit{
		node: root,
		path: pathNode,
		ball: ballNode,
		tube: tube,
		props: HitProps{
			DefaultColor:     scene3d.Color(o.Color),
			DefaultBallColor: scene3d.Color(o.BallColor),
			DefaultOpacity:   o.Opacity,
			DefaultDrawTo:    o.DrawTo,
		},
		state: HitState{
			Color:   scene3d.Color(o.Color),
			DrawTo:  o.DrawTo,
			Opacity: o.Opacity,
		},
	}, nil
}

// NewHitFromFlat 根据扁平坐标数组 [x0,y0,z0,x1,...] 创建轨迹
func NewHitFromFlat(flat []float32, opts ...Option) (*Hit, error) {
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("flat path length %d is not a multiple of 3", len(flat))
	}
	pts := make([]mgl64.Vec3, 0, len(flat)/3)
	for i := 0; i+2 < len(flat); i += 3 {
		pts = append(pts, mgl64.Vec3{float64(flat[i]), float64(flat[i+1]), float64(flat[i+2])})
	}
	return NewHit(pts, opts...)
}

// FromData 根据外部击球记录创建轨迹
//
// 节点名取 play.ID（为空时生成 uuid），UserData 保存整条记录。
func FromData(play config.Play, opts ...Option) (*Hit, error) {
	h, err := NewHitFromFlat(play.Result.Hit.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build hit for play %q: %w", play.ID, err)
	}

	if play.ID == "" {
		play.ID = uuid.NewString()
		log.Printf("[Hit] Play without id, assigned %s", play.ID)
	}
	h.node.Name = play.ID
	h.node.UserData = play
	return h, nil
}

// Node 返回轨迹的场景节点句柄
func (h *Hit) Node() *scene3d.Node {
	return h.node
}

// Name 返回节点名
func (h *Hit) Name() string {
	return h.node.Name
}

// SetName 设置节点名
func (h *Hit) SetName(name string) {
	h.node.Name = name
}

// Props 返回构造时捕获的默认外观
func (h *Hit) Props() HitProps {
	return h.props
}

// State 返回实时状态的副本
func (h *Hit) State() HitState {
	return h.state
}

// Curve 返回轨迹中心曲线
func (h *Hit) Curve() *geometry.CatmullRomCurve3 {
	return h.tube.Path
}

// Show 按进度显示轨迹
//
// to 为沿曲线的弧长进度 [0,1)：管道按整段绘制到 ⌊to·50⌋ 段（to>0 时至少 1 段），
// 小球移动到曲线上 to 处。to = 0 时管道和小球都隐藏。
// from 只记录到状态中，不影响绘制。
func (h *Hit) Show(from, to float64) {
	visible := to > 0
	h.path.Visible = visible
	if visible {
		h.tube.SetDrawRange(0, drawCount(to, h.tube.IndicesPerSegment()))
	}

	h.ball.Visible = visible
	h.ball.Position = h.tube.Path.PointAt(to)

	h.state.DrawTo = to
	h.state.Range.In = from
	h.state.Range.Out = to
}

// ColorOption 局部覆盖实时颜色
type ColorOption func(*HitState)

// WithColor 覆盖轨迹颜色
func WithColor(c uint32) ColorOption {
	return func(s *HitState) { s.Color = scene3d.Color(c) }
}

// WithOpacity 覆盖轨迹不透明度
func WithOpacity(v float64) ColorOption {
	return func(s *HitState) { s.Opacity = v }
}

// Color 修改实时颜色与不透明度
//
// 未指定的项保持当前状态（不会回退到默认值）。
// 小球使用同一颜色，不透明度为 min(2·opacity, 1)。
func (h *Hit) Color(opts ...ColorOption) {
	for _, opt := range opts {
		opt(&h.state)
	}

	h.applyMaterials(h.state.Color, h.state.Color, h.state.Opacity)
}

// ResetColor 将材质恢复为构造时的默认颜色与不透明度
//
// 只修改材质，实时状态保持不变，之后的局部 Color 调用仍以实时状态补全。
func (h *Hit) ResetColor() {
	// 小球恢复自己的默认颜色，而 Color() 让小球跟随轨迹颜色
	h.applyMaterials(h.props.DefaultColor, h.props.DefaultBallColor, h.props.DefaultOpacity)
}

func (h *Hit) applyMaterials(pathColor, ballColor scene3d.Color, opacity float64) {
	pm := h.path.Mesh.Material
	pm.Color = pathColor
	pm.Opacity = opacity

	bm := h.ball.Mesh.Material
	bm.Color = ballColor
	bm.Opacity = ballOpacity(opacity)
}

// PathMaterial 返回管道材质
func (h *Hit) PathMaterial() *scene3d.Material {
	return h.path.Mesh.Material
}

// BallMaterial 返回小球材质
func (h *Hit) BallMaterial() *scene3d.Material {
	return h.ball.Mesh.Material
}

// PathVisible 返回管道是否可见
func (h *Hit) PathVisible() bool {
	return h.path.Visible
}

// BallVisible 返回小球是否可见
func (h *Hit) BallVisible() bool {
	return h.ball.Visible
}

// BallPosition 返回小球位置（轨迹本地坐标）
func (h *Hit) BallPosition() mgl64.Vec3 {
	return h.ball.Position
}

// DrawCount 返回管道当前绘制的索引数
func (h *Hit) DrawCount() int {
	_, count := h.tube.DrawRange()
	return count
}

// drawCount 把进度换算为索引数：按整段截断，进度大于 0 时至少 1 段
func drawCount(progress float64, indicesPerSegment int) int {
	if progress <= 0 {
		return 0
	}
	segments := int(math.Max(1, math.Floor(math.Min(progress, 1)*TubularSegments)))
	return segments * indicesPerSegment
}

// ballOpacity 小球比轨迹更不透明，上限为 1
func ballOpacity(opacity float64) float64 {
	return math.Min(2*opacity, 1)
}
