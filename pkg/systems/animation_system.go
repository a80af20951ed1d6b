package systems

import (
	"math"
	"time"

	"github.com/decker502/stadiumhit/pkg/components"
	"github.com/decker502/stadiumhit/pkg/ecs"
)

// Clock 提供单调递增的已用时间（秒）
type Clock interface {
	Elapsed() float64
}

// wallClock 以创建时刻为起点的真实时钟
type wallClock struct {
	start time.Time
}

// NewWallClock 创建从当前时刻开始计时的时钟
func NewWallClock() Clock {
	return &wallClock{start: time.Now()}
}

func (c *wallClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// DriverState 动画驱动器状态
type DriverState int

const (
	// DriverIdle 没有注册动画轨迹
	DriverIdle DriverState = iota
	// DriverRunning 至少有一条动画轨迹在推进
	DriverRunning
)

// String 返回状态名
func (s DriverState) String() string {
	if s == DriverRunning {
		return "running"
	}
	return "idle"
}

// AnimationSystem 动画驱动器
//
// 每帧读取已用时间，计算循环进度 progress = (elapsed / duration) mod 1，
// 截断到 maxProgress 后对所有动画轨迹调用 Show(0, progress)。
// 不支持暂停或取消，随进程结束而结束。
type AnimationSystem struct {
	entityManager *ecs.EntityManager
	clock         Clock
	duration      float64
	maxProgress   float64
	progress      float64
}

// NewAnimationSystem 创建动画驱动器
//
// 参数:
//   - em: 实体管理器
//   - clock: 时间源（测试可注入假时钟）
//   - duration: 一次播放的时长（秒），必须 > 0
//   - maxProgress: 进度上限，避免曲线端点求值
func NewAnimationSystem(em *ecs.EntityManager, clock Clock, duration, maxProgress float64) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
		clock:         clock,
		duration:      duration,
		maxProgress:   maxProgress,
	}
}

// State 返回驱动器当前状态
func (s *AnimationSystem) State() DriverState {
	if len(s.animatedTrails()) > 0 && s.duration > 0 {
		return DriverRunning
	}
	return DriverIdle
}

// Progress 返回最近一帧传给轨迹的进度
func (s *AnimationSystem) Progress() float64 {
	return s.progress
}

// Update 推进一帧
func (s *AnimationSystem) Update() {
	trails := s.animatedTrails()
	if len(trails) == 0 || s.duration <= 0 {
		return
	}

	s.progress = LoopProgress(s.clock.Elapsed(), s.duration, s.maxProgress)
	for _, trail := range trails {
		trail.Hit.Show(0, s.progress)
	}
}

func (s *AnimationSystem) animatedTrails() []*components.TrailComponent {
	ids := ecs.GetEntitiesWith1[*components.TrailComponent](s.entityManager)
	trails := make([]*components.TrailComponent, 0, len(ids))
	for _, id := range ids {
		trail, ok := ecs.GetComponent[*components.TrailComponent](s.entityManager, id)
		if !ok || !trail.Animated || trail.Hit == nil {
			continue
		}
		trails = append(trails, trail)
	}
	return trails
}

// LoopProgress 将已用时间转换为 [0, maxProgress] 内的锯齿波进度
func LoopProgress(elapsed, duration, maxProgress float64) float64 {
	if duration <= 0 {
		return 0
	}
	p := math.Mod(elapsed/duration, 1)
	if p < 0 {
		p += 1
	}
	return math.Min(p, maxProgress)
}
