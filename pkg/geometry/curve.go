package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// ArcLengthDivisions 是弧长表的采样段数
	ArcLengthDivisions = 200

	// tangentDelta 是切线差分步长
	tangentDelta = 0.0001

	// centripetalPow 向心参数化指数（对距离平方取 0.25 次方 = 距离的 0.5 次方）
	centripetalPow = 0.25
)

// CatmullRomCurve3 是经过所有控制点的向心 Catmull-Rom 曲线（非闭合）
//
// PointAt / TangentAt 使用弧长参数 u ∈ [0,1]，
// Point / Tangent 使用原始参数 t ∈ [0,1]。
type CatmullRomCurve3 struct {
	points     []mgl64.Vec3
	arcLengths []float64
}

// NewCatmullRomCurve3 创建曲线并预计算弧长表
//
// 参数:
//   - points: 控制点，至少 2 个；只有 1 个点时曲线退化为该点
func NewCatmullRomCurve3(points []mgl64.Vec3) *CatmullRomCurve3 {
	pts := make([]mgl64.Vec3, len(points))
	copy(pts, points)
	if len(pts) == 1 {
		pts = append(pts, pts[0])
	}

	c := &CatmullRomCurve3{points: pts}
	c.arcLengths = c.computeLengths(ArcLengthDivisions)
	return c
}

// Points 返回控制点的副本
func (c *CatmullRomCurve3) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(c.points))
	copy(out, c.points)
	return out
}

// Length 返回曲线总长度（弧长表近似）
func (c *CatmullRomCurve3) Length() float64 {
	return c.arcLengths[len(c.arcLengths)-1]
}

// Point 返回原始参数 t 处的点
func (c *CatmullRomCurve3) Point(t float64) mgl64.Vec3 {
	l := len(c.points)
	if l == 0 {
		return mgl64.Vec3{}
	}

	p := float64(l-1) * t
	intPoint := int(math.Floor(p))
	weight := p - float64(intPoint)

	if intPoint >= l-1 {
		intPoint = l - 2
		weight = 1
	}
	if intPoint < 0 {
		intPoint = 0
		weight = 0
	}

	var p0, p3 mgl64.Vec3
	if intPoint > 0 {
		p0 = c.points[intPoint-1]
	} else {
		// 首端外插
		p0 = c.points[0].Sub(c.points[1]).Add(c.points[0])
	}
	p1 := c.points[intPoint]
	p2 := c.points[intPoint+1]
	if intPoint+2 < l {
		p3 = c.points[intPoint+2]
	} else {
		// 末端外插
		p3 = c.points[l-1].Sub(c.points[l-2]).Add(c.points[l-1])
	}

	dt0 := math.Pow(distSq(p0, p1), centripetalPow)
	dt1 := math.Pow(distSq(p1, p2), centripetalPow)
	dt2 := math.Pow(distSq(p2, p3), centripetalPow)

	// 重合点处理
	if dt1 < 1e-4 {
		dt1 = 1.0
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	var out mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		poly := nonuniformCatmullRom(p0[axis], p1[axis], p2[axis], p3[axis], dt0, dt1, dt2)
		out[axis] = poly.calc(weight)
	}
	return out
}

// PointAt 返回弧长参数 u 处的点
func (c *CatmullRomCurve3) PointAt(u float64) mgl64.Vec3 {
	return c.Point(c.UtoT(u))
}

// Tangent 返回原始参数 t 处的单位切线
//
// 曲线退化为一点时返回 +Z。
func (c *CatmullRomCurve3) Tangent(t float64) mgl64.Vec3 {
	t1 := math.Max(0, t-tangentDelta)
	t2 := math.Min(1, t+tangentDelta)
	d := c.Point(t2).Sub(c.Point(t1))
	if d.Len() < 1e-12 {
		return mgl64.Vec3{0, 0, 1}
	}
	return d.Normalize()
}

// TangentAt 返回弧长参数 u 处的单位切线
func (c *CatmullRomCurve3) TangentAt(u float64) mgl64.Vec3 {
	return c.Tangent(c.UtoT(u))
}

// UtoT 将弧长参数 u 映射为原始参数 t
func (c *CatmullRomCurve3) UtoT(u float64) float64 {
	lengths := c.arcLengths
	il := len(lengths)
	target := u * lengths[il-1]

	// 二分查找最后一个不大于目标弧长的位置
	low, high := 0, il-1
	for low <= high {
		i := low + (high-low)/2
		cmp := lengths[i] - target
		if cmp < 0 {
			low = i + 1
		} else if cmp > 0 {
			high = i - 1
		} else {
			high = i
			break
		}
	}

	i := high
	if i < 0 {
		i = 0
	}
	if lengths[i] == target {
		return float64(i) / float64(il-1)
	}
	if i >= il-1 {
		return 1
	}

	before := lengths[i]
	segment := lengths[i+1] - before
	if segment <= 0 {
		return float64(i) / float64(il-1)
	}
	fraction := (target - before) / segment
	return (float64(i) + fraction) / float64(il-1)
}

func (c *CatmullRomCurve3) computeLengths(divisions int) []float64 {
	lengths := make([]float64, divisions+1)
	last := c.Point(0)
	sum := 0.0
	for p := 1; p <= divisions; p++ {
		current := c.Point(float64(p) / float64(divisions))
		sum += current.Sub(last).Len()
		lengths[p] = sum
		last = current
	}
	return lengths
}

func distSq(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// cubicPoly 三次多项式 c0 + c1·t + c2·t² + c3·t³
type cubicPoly struct {
	c0, c1, c2, c3 float64
}

func hermite(x0, x1, t0, t1 float64) cubicPoly {
	return cubicPoly{
		c0: x0,
		c1: t0,
		c2: -3*x0 + 3*x1 - 2*t0 - t1,
		c3: 2*x0 - 2*x1 + t0 + t1,
	}
}

// nonuniformCatmullRom 按非均匀节点间距计算 p1→p2 段的 Hermite 切线
func nonuniformCatmullRom(x0, x1, x2, x3, dt0, dt1, dt2 float64) cubicPoly {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1
	return hermite(x1, x2, t1, t2)
}

func (p cubicPoly) calc(t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return p.c0 + p.c1*t + p.c2*t2 + p.c3*t3
}
