package geometry

// TaperTube 将管道首个关节的所有圆环顶点收拢到它们的质心
//
// 管道首端由平截面变为尖点，尖点位于曲线起点附近。
// 只修改第 0 个关节，缓冲长度不变；应在构建时调用一次，而不是每帧调用。
//
// 参数:
//   - positions: 管道顶点缓冲（x,y,z 交错），按关节分组
//   - radiusSegments: 圆周分段数，每个关节有 radiusSegments+1 个顶点
//
// TODO: 在后续关节的中心点与圆环点之间插值，实现渐变收尖
func TaperTube(positions []float32, radiusSegments int) {
	ring := radiusSegments + 1
	if ring <= 0 || len(positions) < ring*3 {
		return
	}

	var sx, sy, sz float64
	for i := 0; i < ring; i++ {
		sx += float64(positions[3*i])
		sy += float64(positions[3*i+1])
		sz += float64(positions[3*i+2])
	}
	n := float64(ring)
	x := float32(sx / n)
	y := float32(sy / n)
	z := float32(sz / n)

	for i := 0; i < ring; i++ {
		positions[3*i] = x
		positions[3*i+1] = y
		positions[3*i+2] = z
	}
}
