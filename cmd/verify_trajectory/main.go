// verify_trajectory 在终端输出击球轨迹的路径点与动画采样，无需窗口
//
// 用法:
//
//	go run ./cmd/verify_trajectory --angle 25 --speed 75 --samples 6
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/stadiumhit/pkg/config"
	"github.com/decker502/stadiumhit/pkg/entities"
	"github.com/decker502/stadiumhit/pkg/systems"
	"github.com/decker502/stadiumhit/pkg/trajectory"
)

var (
	configPath = flag.String("config", "", "场景配置文件（默认使用内置默认值）")
	angle      = flag.Float64("angle", -1, "覆盖发射角（度）")
	speed      = flag.Float64("speed", -1, "覆盖初速度")
	samples    = flag.Int("samples", 6, "动画采样数")
	verbose    = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultSceneConfig()
	if *configPath != "" {
		loaded, err := config.LoadSceneConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	params := cfg.Trajectory
	if *angle >= 0 {
		params.LaunchAngleDeg = *angle
	}
	if *speed >= 0 {
		params.InitialSpeed = *speed
	}

	fmt.Printf("Params: angle=%.1f° speed=%.2f gravity=%.2f y0=%.2f\n",
		params.LaunchAngleDeg, params.InitialSpeed, params.Gravity, params.InitialY)

	sum := trajectory.Summarize(params)
	fmt.Printf("Peak: t=%.3fs y=%.3f z=%.3f | Landing: t=%.3fs z=%.3f\n",
		sum.TimeToPeak, sum.PeakY, sum.PeakZ, sum.FlightTime, sum.EndZ)

	points := trajectory.Calculate(params)
	fmt.Println("Waypoints:")
	for i, p := range points {
		fmt.Printf("  [%d] (%.3f, %.3f, %.3f)\n", i, p[0], p[1], p[2])
	}

	hit, err := entities.NewHit(points,
		entities.WithTrailColor(cfg.Hit.Color),
		entities.WithBallColor(cfg.Hit.BallColor),
		entities.WithTrailOpacity(cfg.Hit.Opacity),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Curve length: %.3f\n", hit.Curve().Length())

	if *samples < 1 {
		*samples = 1
	}
	duration := cfg.Animation.Duration
	fmt.Printf("Animation (duration %.1fs):\n", duration)
	fmt.Printf("  %8s %8s %8s %6s  %s\n", "time", "progress", "indices", "ball", "position")
	for i := 0; i <= *samples; i++ {
		elapsed := duration * float64(i) / float64(*samples)
		progress := systems.LoopProgress(elapsed, duration, cfg.Animation.MaxProgress)
		hit.Show(0, progress)

		p := hit.BallPosition()
		fmt.Printf("  %8.3f %8.4f %8d %6v  (%.3f, %.3f, %.3f)\n",
			elapsed, progress, hit.DrawCount(), hit.BallVisible(), p[0], p[1], p[2])
	}
}
