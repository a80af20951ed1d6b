// Package trajectory 根据抛射参数计算击球轨迹的关键路径点
//
// 轨迹为单条解析抛物线，位于 x=0 平面内，沿 +Z 方向飞行。
// 计算结果为 5 个有序路径点：起点、上升中点、最高点、下降中点、落点。
package trajectory

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WaypointCount 是 Calculate 返回的路径点数量
const WaypointCount = 5

// Params 抛射参数
type Params struct {
	LaunchAngleDeg float64 `yaml:"launchAngleDeg"` // 发射角（度）
	InitialSpeed   float64 `yaml:"initialSpeed"`   // 初速度（场景单位/秒）
	Gravity        float64 `yaml:"gravity"`        // 重力加速度（场景单位/秒²）
	InitialY       float64 `yaml:"initialY"`       // 发射高度（场景单位）
}

// Summary 轨迹摘要，用于日志输出
type Summary struct {
	TimeToPeak float64
	FlightTime float64
	PeakY      float64
	PeakZ      float64
	EndZ       float64
}

// Summarize 计算轨迹的最高点、落点和飞行时间
//
// 重力不大于 0、初速度为 0 或发射角为 0 时，到达最高点的时间为 0，
// 所有坐标退化为起点。
func Summarize(p Params) Summary {
	rad := p.LaunchAngleDeg * math.Pi / 180
	v0y := p.InitialSpeed * math.Sin(rad)
	v0z := p.InitialSpeed * math.Cos(rad)

	var tPeak float64
	if p.Gravity > 0 && v0y > 0 {
		tPeak = v0y / p.Gravity
	}

	tTotal := 2 * tPeak
	return Summary{
		TimeToPeak: tPeak,
		FlightTime: tTotal,
		PeakY:      heightAt(p, v0y, tPeak),
		PeakZ:      v0z * tPeak,
		EndZ:       v0z * tTotal,
	}
}

// Calculate 计算 5 个轨迹路径点
//
// 参数:
//   - p: 抛射参数
//
// 返回:
//   - []mgl64.Vec3: 依次为起点、1/4 点、最高点、3/4 点、落点
//
// 退化输入（重力 <= 0、初速度或发射角为 0）返回 5 个与起点重合的点。
func Calculate(p Params) []mgl64.Vec3 {
	rad := p.LaunchAngleDeg * math.Pi / 180
	v0y := p.InitialSpeed * math.Sin(rad)
	s := Summarize(p)

	zQuarter := s.PeakZ / 2
	zThreeQuarter := s.PeakZ + (s.EndZ-s.PeakZ)/2
	yQuarter := heightAt(p, v0y, s.TimeToPeak/2)
	yThreeQuarter := heightAt(p, v0y, s.TimeToPeak*1.5)

	return []mgl64.Vec3{
		{0, p.InitialY, 0},
		{0, yQuarter, zQuarter},
		{0, s.PeakY, s.PeakZ},
		{0, yThreeQuarter, zThreeQuarter},
		// 落点高度回到发射高度（解析值，避免浮点误差）
		{0, p.InitialY, s.EndZ},
	}
}

// heightAt 计算 t 时刻的高度
func heightAt(p Params, v0y, t float64) float64 {
	if t == 0 {
		return p.InitialY
	}
	return p.InitialY + v0y*t - 0.5*p.Gravity*t*t
}
