package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TubeGeometry 沿曲线挤出的管道网格
//
// 顶点按"关节"分组：共 TubularSegments+1 个关节，
// 每个关节一圈 RadialSegments+1 个顶点（最后一个与第一个重合以闭合圆环）。
type TubeGeometry struct {
	*BufferGeometry

	Path            *CatmullRomCurve3
	TubularSegments int
	Radius          float64
	RadialSegments  int
}

// NewTubeGeometry 生成非闭合管道
//
// 参数:
//   - path: 中心曲线
//   - tubularSegments: 纵向分段数
//   - radius: 管道半径
//   - radialSegments: 圆周分段数
func NewTubeGeometry(path *CatmullRomCurve3, tubularSegments int, radius float64, radialSegments int) *TubeGeometry {
	_, normals, binormals := computeFrenetFrames(path, tubularSegments)

	ring := radialSegments + 1
	positions := make([]float32, 0, (tubularSegments+1)*ring*3)
	vertexNormals := make([]float32, 0, (tubularSegments+1)*ring*3)

	for i := 0; i <= tubularSegments; i++ {
		p := path.PointAt(float64(i) / float64(tubularSegments))
		n := normals[i]
		b := binormals[i]

		for j := 0; j <= radialSegments; j++ {
			v := float64(j) / float64(radialSegments) * math.Pi * 2
			sin := math.Sin(v)
			cos := -math.Cos(v)

			normal := safeNormalize(n.Mul(cos).Add(b.Mul(sin)), n)
			vertex := p.Add(normal.Mul(radius))

			vertexNormals = append(vertexNormals, float32(normal[0]), float32(normal[1]), float32(normal[2]))
			positions = append(positions, float32(vertex[0]), float32(vertex[1]), float32(vertex[2]))
		}
	}

	indices := make([]uint32, 0, tubularSegments*radialSegments*6)
	for j := 1; j <= tubularSegments; j++ {
		for i := 1; i <= radialSegments; i++ {
			a := uint32(ring*(j-1) + (i - 1))
			b := uint32(ring*j + (i - 1))
			c := uint32(ring*j + i)
			d := uint32(ring*(j-1) + i)

			indices = append(indices, a, b, d)
			indices = append(indices, b, c, d)
		}
	}

	return &TubeGeometry{
		BufferGeometry:  NewBufferGeometry(positions, vertexNormals, indices),
		Path:            path,
		TubularSegments: tubularSegments,
		Radius:          radius,
		RadialSegments:  radialSegments,
	}
}

// IndicesPerSegment 返回一个纵向分段占用的索引数量
func (t *TubeGeometry) IndicesPerSegment() int {
	return t.RadialSegments * 6
}

// computeFrenetFrames 计算沿曲线的平行传输标架
func computeFrenetFrames(path *CatmullRomCurve3, segments int) (tangents, normals, binormals []mgl64.Vec3) {
	tangents = make([]mgl64.Vec3, segments+1)
	normals = make([]mgl64.Vec3, segments+1)
	binormals = make([]mgl64.Vec3, segments+1)

	for i := 0; i <= segments; i++ {
		tangents[i] = path.TangentAt(float64(i) / float64(segments))
	}

	// 初始法线取切线分量最小的坐标轴
	var normal mgl64.Vec3
	min := math.MaxFloat64
	tx := math.Abs(tangents[0][0])
	ty := math.Abs(tangents[0][1])
	tz := math.Abs(tangents[0][2])
	if tx <= min {
		min = tx
		normal = mgl64.Vec3{1, 0, 0}
	}
	if ty <= min {
		min = ty
		normal = mgl64.Vec3{0, 1, 0}
	}
	if tz <= min {
		normal = mgl64.Vec3{0, 0, 1}
	}

	vec := safeNormalize(tangents[0].Cross(normal), mgl64.Vec3{1, 0, 0})
	normals[0] = tangents[0].Cross(vec)
	binormals[0] = tangents[0].Cross(normals[0])

	for i := 1; i <= segments; i++ {
		normals[i] = normals[i-1]
		binormals[i] = binormals[i-1]

		axis := tangents[i-1].Cross(tangents[i])
		if axis.Len() > 1e-9 {
			axis = axis.Normalize()
			theta := math.Acos(mgl64.Clamp(tangents[i-1].Dot(tangents[i]), -1, 1))
			normals[i] = mgl64.HomogRotate3D(theta, axis).Mul4x1(normals[i].Vec4(0)).Vec3()
		}

		binormals[i] = tangents[i].Cross(normals[i])
	}

	return tangents, normals, binormals
}

func safeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	if v.Len() < 1e-12 {
		return fallback
	}
	return v.Normalize()
}
