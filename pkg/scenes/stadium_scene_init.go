package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/stadiumhit/pkg/components"
	"github.com/decker502/stadiumhit/pkg/config"
	"github.com/decker502/stadiumhit/pkg/ecs"
	"github.com/decker502/stadiumhit/pkg/entities"
	"github.com/decker502/stadiumhit/pkg/scene3d"
	"github.com/decker502/stadiumhit/pkg/trajectory"
	"github.com/go-gl/mathgl/mgl64"
)

// initPredefinedHit 根据抛射参数创建预设轨迹并交给动画驱动器
func (s *StadiumScene) initPredefinedHit() error {
	params := s.cfg.Trajectory
	points := trajectory.Calculate(params)
	sum := trajectory.Summarize(params)
	log.Printf("[StadiumScene] Trajectory: peak y=%.2f at z=%.2f, lands at z=%.2f after %.2fs",
		sum.PeakY, sum.PeakZ, sum.EndZ, sum.FlightTime)

	hit, err := entities.NewHit(points,
		entities.WithTrailColor(s.cfg.Hit.Color),
		entities.WithBallColor(s.cfg.Hit.BallColor),
		entities.WithTrailOpacity(s.cfg.Hit.Opacity),
	)
	if err != nil {
		return fmt.Errorf("failed to create predefined hit: %w", err)
	}
	hit.SetName(s.cfg.Hit.Name)

	id := s.addNodeEntity(hit.Node())
	ecs.AddComponent(s.entityManager, id, &components.TrailComponent{Hit: hit, Animated: true})
	s.predefinedHit = hit
	return nil
}

// initPlays 为外部击球数据创建静态轨迹；单条数据无效时跳过
func (s *StadiumScene) initPlays(plays []config.Play) {
	for _, play := range plays {
		hit, err := entities.FromData(play)
		if err != nil {
			log.Printf("[StadiumScene] Skipping play: %v", err)
			continue
		}
		hit.Show(0, s.cfg.Animation.MaxProgress)

		id := s.addNodeEntity(hit.Node())
		ecs.AddComponent(s.entityManager, id, &components.TrailComponent{Hit: hit, Animated: false})
		s.plays = append(s.plays, hit)
	}
	if len(s.plays) > 0 {
		log.Printf("[StadiumScene] Loaded %d play(s)", len(s.plays))
	}
}

// ReloadPlays 用新数据替换所有静态轨迹
//
// 旧轨迹实体在本帧末尾由 RemoveMarkedEntities 删除；预设轨迹不受影响。
func (s *StadiumScene) ReloadPlays(plays []config.Play) {
	removed := 0
	for _, id := range ecs.GetEntitiesWith2[*components.NodeComponent, *components.TrailComponent](s.entityManager) {
		trail, _ := ecs.GetComponent[*components.TrailComponent](s.entityManager, id)
		if trail.Animated {
			continue
		}
		s.entityManager.DestroyEntity(id)
		removed++
	}
	s.plays = nil
	log.Printf("[StadiumScene] Reloading plays: removed %d", removed)

	s.initPlays(plays)
}

// loadModel 开始异步加载球场模型
func (s *StadiumScene) loadModel() {
	path := s.cfg.Model.Path
	if path == "" {
		s.modelState = ModelNone
		return
	}

	s.modelState = ModelLoading
	s.modelLoader.Load(path,
		s.onModelLoaded,
		func(loaded, total int64) {
			s.modelLoaded, s.modelTotal = loaded, total
		},
		func(err error) {
			s.modelState = ModelFailed
			s.modelErr = err
			log.Printf("[StadiumScene] Error loading model: %v", err)
		},
	)
}

// onModelLoaded 把模型加入场景：隐藏碰撞体、绕 Y 轴旋转、输出包围盒并添加坐标轴
func (s *StadiumScene) onModelLoaded(root *scene3d.Node) {
	if name := s.cfg.Model.ColliderName; name != "" {
		if collider := root.GetObjectByName(name); collider != nil {
			collider.Visible = false
			log.Printf("[StadiumScene] Hid collider %q", name)
		}
	}

	root.SetRotationY(mgl64.DegToRad(s.cfg.Model.RotationY))

	if min, max, ok := scene3d.ComputeBounds(root); ok {
		size := max.Sub(min)
		log.Printf("[StadiumScene] Model bounds min=(%.2f, %.2f, %.2f) max=(%.2f, %.2f, %.2f) size=(%.2f, %.2f, %.2f)",
			min[0], min[1], min[2], max[0], max[1], max[2], size[0], size[1], size[2])
	}

	s.addNodeEntity(root)
	s.model = root
	s.modelState = ModelLoaded

	if s.cfg.Model.AxesSize > 0 {
		s.axes = scene3d.NewAxesHelper(s.cfg.Model.AxesSize)
		s.axes.Visible = s.settings.GetSettings().ShowAxes
		s.addNodeEntity(s.axes)
	}

	log.Printf("[StadiumScene] Model loaded: %s", root.Name)
}
