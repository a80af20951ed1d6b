package components

import "github.com/decker502/stadiumhit/pkg/entities"

// TrailComponent 标识击球轨迹实体
type TrailComponent struct {
	Hit *entities.Hit

	// Animated 是否由动画驱动器逐帧推进；false 表示静态完整显示
	Animated bool
}
