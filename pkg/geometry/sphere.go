package geometry

import "math"

// NewSphereGeometry 生成以原点为中心的 UV 球体
func NewSphereGeometry(radius float64, widthSegments, heightSegments int) *BufferGeometry {
	positions := make([]float32, 0, (widthSegments+1)*(heightSegments+1)*3)
	normals := make([]float32, 0, (widthSegments+1)*(heightSegments+1)*3)
	grid := make([][]uint32, heightSegments+1)

	var index uint32
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]uint32, 0, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)

			nx := -math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)
			ny := math.Cos(v * math.Pi)
			nz := math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)

			positions = append(positions, float32(radius*nx), float32(radius*ny), float32(radius*nz))
			normals = append(normals, float32(nx), float32(ny), float32(nz))
			row = append(row, index)
			index++
		}
		grid[iy] = row
	}

	indices := make([]uint32, 0, widthSegments*heightSegments*6)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			// 两极只生成一个三角形
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	return NewBufferGeometry(positions, normals, indices)
}
