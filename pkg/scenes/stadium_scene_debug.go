package scenes

import (
	"fmt"

	"github.com/decker502/stadiumhit/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawOverlay 绘制左上角状态信息
func (s *StadiumScene) drawOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, s.statusLine())

	info := fmt.Sprintf("FPS %.0f  triangles %d", ebiten.ActualFPS(), s.renderSystem.TriangleCount())
	if s.activePreset != "" {
		info += "  camera " + s.activePreset
	}
	ebitenutil.DebugPrintAt(screen, info, 10, 20)
	ebitenutil.DebugPrintAt(screen, helpText(), 10, 40)
}

// helpText 操作提示，移动端显示触摸手势
func helpText() string {
	if utils.IsMobile() {
		return "Drag: rotate  Pinch: zoom"
	}
	return "Drag: rotate  Wheel: zoom  1-8: presets  A: axes  R: reload plays"
}
