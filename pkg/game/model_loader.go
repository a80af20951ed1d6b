package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/decker502/stadiumhit/pkg/geometry"
	"github.com/decker502/stadiumhit/pkg/scene3d"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const (
	// 读取模型文件的分块大小，每块上报一次进度
	modelChunkSize = 1 << 20

	dracoExtension = "KHR_draco_mesh_compression"

	// 无材质图元使用的颜色
	defaultModelColor scene3d.Color = 0xb0b0b0
)

// ModelLoader 异步加载 glTF 二进制模型（.glb）
//
// 文件读取与解码在后台 goroutine 中进行，所有回调都被放入队列，
// 由 UI 线程在 Update 中调用 Poll() 执行，因此回调中可以安全地修改场景。
// 加载失败只报告一次错误，不重试。
// 不再轮询时调用 Close，仍在排队的后台 goroutine 会丢弃结果并退出。
type ModelLoader struct {
	callbacks chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewModelLoader 创建模型加载器
func NewModelLoader() *ModelLoader {
	return &ModelLoader{
		callbacks: make(chan func(), 256),
		done:      make(chan struct{}),
	}
}

// Close 停止接收回调，可重复调用
func (l *ModelLoader) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
		log.Printf("[ModelLoader] Closed")
	})
}

// Load 开始异步加载模型
//
// 参数:
//   - path: .glb 文件路径
//   - onLoad: 加载成功后收到模型根节点
//   - onProgress: 读取进度（已读字节、总字节），可为 nil
//   - onError: 读取或解码失败时调用
func (l *ModelLoader) Load(path string, onLoad func(*scene3d.Node), onProgress func(loaded, total int64), onError func(error)) {
	log.Printf("[ModelLoader] Loading %s", path)

	go func() {
		data, err := readWithProgress(path, func(loaded, total int64) {
			if onProgress != nil {
				l.tryEnqueue(func() { onProgress(loaded, total) })
			}
		})
		if err != nil {
			l.enqueue(func() { onError(err) })
			return
		}

		root, err := DecodeModel(bytes.NewReader(data))
		if err != nil {
			l.enqueue(func() { onError(fmt.Errorf("failed to decode model %s: %w", path, err)) })
			return
		}

		root.Name = path
		l.enqueue(func() { onLoad(root) })
	}()
}

// Poll 在调用方线程上执行所有已排队的回调
//
// 返回:
//   - int: 本次执行的回调数
func (l *ModelLoader) Poll() int {
	n := 0
	for {
		select {
		case cb := <-l.callbacks:
			cb()
			n++
		default:
			return n
		}
	}
}

// enqueue 等待队列空位；加载器关闭后丢弃回调
func (l *ModelLoader) enqueue(cb func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.callbacks <- cb:
	case <-l.done:
	}
}

// tryEnqueue 队列已满或加载器已关闭时丢弃回调（用于进度）
func (l *ModelLoader) tryEnqueue(cb func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.callbacks <- cb:
	default:
	}
}

func readWithProgress(path string, progress func(loaded, total int64)) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat model: %w", err)
	}
	total := info.Size()

	var buf bytes.Buffer
	buf.Grow(int(total))
	chunk := make([]byte, modelChunkSize)
	var loaded int64
	for {
		n, err := f.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			loaded += int64(n)
			progress(loaded, total)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read model: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// DecodeModel 解码 glTF 数据并转换为场景节点树
//
// 只转换三角形图元的 POSITION 和索引；使用 Draco 压缩的图元被跳过。
func DecodeModel(r io.Reader) (*scene3d.Node, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, err
	}
	return BuildScene(doc)
}

// BuildScene 将 glTF 文档的默认场景转换为场景节点树
func BuildScene(doc *gltf.Document) (*scene3d.Node, error) {
	root := scene3d.NewNode("")

	var roots []int
	switch {
	case doc.Scene != nil && *doc.Scene < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		roots = doc.Scenes[0].Nodes
	default:
		// 没有场景时把所有无父节点的节点作为根
		roots = orphanNodes(doc)
	}

	b := &sceneBuilder{doc: doc, meshes: make(map[int][]*scene3d.Mesh)}
	for _, idx := range roots {
		n, err := b.node(idx, 0)
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}

	if b.skipped > 0 {
		log.Printf("[ModelLoader] Warning: skipped %d Draco-compressed primitive(s)", b.skipped)
	}
	return root, nil
}

type sceneBuilder struct {
	doc     *gltf.Document
	meshes  map[int][]*scene3d.Mesh
	skipped int
}

// 节点层级深度上限，防止循环引用
const maxNodeDepth = 64

func (b *sceneBuilder) node(idx, depth int) (*scene3d.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if depth > maxNodeDepth {
		return nil, fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}

	src := b.doc.Nodes[idx]
	n := scene3d.NewNode(src.Name)
	applyTransform(n, src)

	if src.Mesh != nil {
		meshes, err := b.mesh(*src.Mesh)
		if err != nil {
			return nil, err
		}
		// 单图元直接挂在节点上，多图元拆为子节点
		if len(meshes) == 1 {
			n.Mesh = meshes[0]
		} else {
			for i, m := range meshes {
				n.Add(scene3d.NewMeshNode(fmt.Sprintf("%s#%d", src.Name, i), m))
			}
		}
	}

	for _, c := range src.Children {
		child, err := b.node(c, depth+1)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func (b *sceneBuilder) mesh(idx int) ([]*scene3d.Mesh, error) {
	if cached, ok := b.meshes[idx]; ok {
		return cached, nil
	}
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", idx)
	}

	var out []*scene3d.Mesh
	for _, prim := range b.doc.Meshes[idx].Primitives {
		if _, draco := prim.Extensions[dracoExtension]; draco {
			b.skipped++
			continue
		}
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		m, err := b.primitive(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", idx, err)
		}
		if m != nil {
			out = append(out, m)
		}
	}

	b.meshes[idx] = out
	return out, nil
}

func (b *sceneBuilder) primitive(prim *gltf.Primitive) (*scene3d.Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok || posIdx >= len(b.doc.Accessors) {
		return nil, nil
	}

	positions, err := modeler.ReadPosition(b.doc, b.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil && *prim.Indices < len(b.doc.Accessors) {
		indices, err = modeler.ReadIndices(b.doc, b.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	flat := make([]float32, 0, len(positions)*3)
	for _, p := range positions {
		flat = append(flat, p[0], p[1], p[2])
	}

	return &scene3d.Mesh{
		Geometry: geometry.NewBufferGeometry(flat, nil, indices),
		Material: b.material(prim.Material),
	}, nil
}

func (b *sceneBuilder) material(idx *int) *scene3d.Material {
	mat := &scene3d.Material{Color: defaultModelColor, Opacity: 1}
	if idx == nil || *idx >= len(b.doc.Materials) {
		return mat
	}

	src := b.doc.Materials[*idx]
	if src.PBRMetallicRoughness != nil {
		f := src.PBRMetallicRoughness.BaseColorFactorOrDefault()
		mat.Color = packColor(f[0], f[1], f[2])
		mat.Opacity = f[3]
	}
	mat.Transparent = src.AlphaMode == gltf.AlphaBlend
	return mat
}

func packColor(r, g, b float64) scene3d.Color {
	to8 := func(v float64) uint32 {
		return uint32(mgl64.Clamp(v, 0, 1)*255 + 0.5)
	}
	return scene3d.Color(to8(r)<<16 | to8(g)<<8 | to8(b))
}

// applyTransform 写入节点的平移、旋转与缩放；设置了矩阵时从矩阵分解
func applyTransform(n *scene3d.Node, src *gltf.Node) {
	if m := src.Matrix; m != ([16]float64{}) && m != identityMatrix {
		mat := mgl64.Mat4(m)
		n.Position = mat.Col(3).Vec3()
		sx := mat.Col(0).Vec3().Len()
		sy := mat.Col(1).Vec3().Len()
		sz := mat.Col(2).Vec3().Len()
		n.Scale = mgl64.Vec3{sx, sy, sz}
		if sx > 0 && sy > 0 && sz > 0 {
			rot := mgl64.Mat3FromCols(
				mat.Col(0).Vec3().Mul(1/sx),
				mat.Col(1).Vec3().Mul(1/sy),
				mat.Col(2).Vec3().Mul(1/sz),
			)
			n.Rotation = mgl64.Mat4ToQuat(rot.Mat4())
		}
		return
	}

	t := src.Translation
	n.Position = mgl64.Vec3{t[0], t[1], t[2]}

	if r := src.Rotation; r != ([4]float64{}) {
		n.Rotation = mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
	}
	if s := src.Scale; s != ([3]float64{}) {
		n.Scale = mgl64.Vec3{s[0], s[1], s[2]}
	}
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func orphanNodes(doc *gltf.Document) []int {
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i, p := range hasParent {
		if !p {
			roots = append(roots, i)
		}
	}
	return roots
}
