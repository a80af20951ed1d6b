package systems

import (
	"log"
	"math"

	"github.com/decker502/stadiumhit/pkg/components"
	"github.com/decker502/stadiumhit/pkg/config"
	"github.com/decker502/stadiumhit/pkg/ecs"
	"github.com/decker502/stadiumhit/pkg/scene3d"
	"github.com/decker502/stadiumhit/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// 默认拖动旋转速度（弧度/像素）
	DefaultRotateSpeed = 0.005
	// 默认滚轮缩放比例（每格）
	DefaultZoomSpeed = 0.1
	// 默认缩放范围
	DefaultMinDistance = 1.0
	DefaultMaxDistance = 500.0

	// 极角离开两极的最小距离，避免 LookAt 退化
	phiEpsilon = 1e-4
)

// OrbitInput 轨道相机需要的输入源
type OrbitInput interface {
	// CursorPosition 光标位置（像素）
	CursorPosition() (x, y int)
	// LeftPressed 左键是否按下
	LeftPressed() bool
	// WheelY 本帧垂直滚轮增量，向上为正
	WheelY() float64
	// PresetKey 本帧刚按下的预设数字键（0 基），没有则返回 -1
	PresetKey() int
}

// 两指距离变化多少像素相当于一格滚轮
const pinchPixelsPerNotch = 40.0

// ebitenInput 基于 ebiten 的输入源，触摸拖动等同左键，两指捏合等同滚轮
type ebitenInput struct {
	lastPinch float64
}

var presetKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

// NewEbitenInput 返回读取 ebiten 鼠标、触摸与键盘状态的输入源
func NewEbitenInput() OrbitInput {
	return &ebitenInput{}
}

func (in *ebitenInput) CursorPosition() (int, int) {
	_, x, y := utils.GetPointerState()
	return x, y
}

// LeftPressed 捏合期间不旋转
func (in *ebitenInput) LeftPressed() bool {
	if utils.IsPinching() {
		return false
	}
	pressed, _, _ := utils.GetPointerState()
	return pressed
}

func (in *ebitenInput) WheelY() float64 {
	_, dy := ebiten.Wheel()

	dist, ok := utils.PinchDistance()
	if !ok {
		in.lastPinch = 0
		return dy
	}
	dy += utils.PinchToWheel(in.lastPinch, dist, pinchPixelsPerNotch)
	in.lastPinch = dist
	return dy
}

func (in *ebitenInput) PresetKey() int {
	for i, k := range presetKeys {
		if inpututil.IsKeyJustPressed(k) {
			return i
		}
	}
	return -1
}

// OrbitSystem 轨道相机控制系统
//
// 左键拖动绕目标点旋转，滚轮缩放，数字键 1..8 切换到按名称排序的相机预设。
// 球坐标状态保存在相机实体的 CameraComponent 上，每帧同步到透视相机。
type OrbitSystem struct {
	entityManager *ecs.EntityManager
	camera        *scene3d.PerspectiveCamera
	input         OrbitInput
	cameraEntity  ecs.EntityID

	presets     map[string]config.Vec3
	presetNames []string
}

// NewOrbitSystem 创建轨道相机系统，并以相机当前位置初始化球坐标
//
// 参数:
//   - em: 实体管理器
//   - camera: 受控的透视相机
//   - cfg: 场景配置（提供相机预设）
//   - input: 输入源，传 nil 时使用 ebiten
func NewOrbitSystem(em *ecs.EntityManager, camera *scene3d.PerspectiveCamera, cfg *config.SceneConfig, input OrbitInput) *OrbitSystem {
	if input == nil {
		input = NewEbitenInput()
	}

	s := &OrbitSystem{
		entityManager: em,
		camera:        camera,
		input:         input,
		presets:       cfg.CameraPresets,
		presetNames:   cfg.PresetNames(),
	}

	comp := &components.CameraComponent{
		Target:      camera.Target,
		RotateSpeed: DefaultRotateSpeed,
		ZoomSpeed:   DefaultZoomSpeed,
		MinDistance: DefaultMinDistance,
		MaxDistance: DefaultMaxDistance,
	}
	comp.Radius, comp.Theta, comp.Phi = ToSpherical(camera.Position.Sub(camera.Target))

	s.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, s.cameraEntity, comp)

	return s
}

// CameraEntity 返回相机实体 ID
func (s *OrbitSystem) CameraEntity() ecs.EntityID {
	return s.cameraEntity
}

// Update 处理输入并同步相机位置
func (s *OrbitSystem) Update() {
	comp, ok := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.cameraEntity)
	if !ok {
		return
	}

	if idx := s.input.PresetKey(); idx >= 0 && idx < len(s.presetNames) {
		s.ApplyPreset(s.presetNames[idx])
	}

	x, y := s.input.CursorPosition()
	if s.input.LeftPressed() {
		if comp.Dragging {
			Rotate(comp, float64(x-comp.LastCursorX), float64(y-comp.LastCursorY))
		}
		comp.Dragging = true
		comp.LastCursorX, comp.LastCursorY = x, y
	} else {
		comp.Dragging = false
	}

	if wheel := s.input.WheelY(); wheel != 0 {
		Zoom(comp, wheel)
	}

	s.sync(comp)
}

// ApplyPreset 将相机移动到指定预设位置，目标点不变
//
// 返回:
//   - bool: 预设存在时返回 true
func (s *OrbitSystem) ApplyPreset(name string) bool {
	pos, ok := s.presets[name]
	if !ok {
		log.Printf("[OrbitSystem] Unknown camera preset %q", name)
		return false
	}
	comp, ok := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.cameraEntity)
	if !ok {
		return false
	}

	offset := mgl64.Vec3{pos[0], pos[1], pos[2]}.Sub(comp.Target)
	comp.Radius, comp.Theta, comp.Phi = ToSpherical(offset)
	comp.ActivePreset = name
	s.sync(comp)

	log.Printf("[OrbitSystem] Camera preset %s -> (%.1f, %.1f, %.1f)", name, pos[0], pos[1], pos[2])
	return true
}

// ActivePreset 返回当前预设名，手动旋转后为空
func (s *OrbitSystem) ActivePreset() string {
	comp, ok := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.cameraEntity)
	if !ok {
		return ""
	}
	return comp.ActivePreset
}

func (s *OrbitSystem) sync(comp *components.CameraComponent) {
	s.camera.Target = comp.Target
	s.camera.Position = comp.Target.Add(FromSpherical(comp.Radius, comp.Theta, comp.Phi))
}

// Rotate 根据光标位移旋转球坐标
func Rotate(comp *components.CameraComponent, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	comp.Theta -= dx * comp.RotateSpeed
	comp.Phi -= dy * comp.RotateSpeed
	comp.Phi = math.Max(phiEpsilon, math.Min(math.Pi-phiEpsilon, comp.Phi))
	comp.ActivePreset = ""
}

// Zoom 按滚轮增量缩放半径，向上滚动拉近
func Zoom(comp *components.CameraComponent, wheel float64) {
	scale := math.Pow(1-comp.ZoomSpeed, wheel)
	comp.Radius = math.Max(comp.MinDistance, math.Min(comp.MaxDistance, comp.Radius*scale))
}

// ToSpherical 将偏移向量转换为球坐标 (radius, theta, phi)
//
// theta 为绕 Y 轴的方位角（0 指向 +Z），phi 为与 +Y 轴的夹角。
func ToSpherical(v mgl64.Vec3) (radius, theta, phi float64) {
	radius = v.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = math.Atan2(v[0], v[2])
	phi = math.Acos(math.Max(-1, math.Min(1, v[1]/radius)))
	return radius, theta, phi
}

// FromSpherical 将球坐标转换为偏移向量
func FromSpherical(radius, theta, phi float64) mgl64.Vec3 {
	sinPhi := math.Sin(phi)
	return mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	}
}
