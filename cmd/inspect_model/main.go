// inspect_model 输出 glTF 二进制模型的节点树、三角形数量与包围盒
//
// 用法:
//
//	go run ./cmd/inspect_model Stadium_DET.glb
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/decker502/stadiumhit/pkg/game"
	"github.com/decker502/stadiumhit/pkg/scene3d"
)

var maxDepth = flag.Int("depth", 4, "节点树最大输出深度")

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect_model [--depth N] <model.glb>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	root, err := game.DecodeModel(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to decode %s: %v\n", path, err)
		os.Exit(1)
	}

	var nodes, meshes, triangles int
	root.Traverse(func(n *scene3d.Node) {
		nodes++
		if n.Mesh != nil {
			meshes++
			triangles += len(n.Mesh.Geometry.Indices) / 3
		}
	})
	fmt.Printf("%s: %d nodes, %d meshes, %d triangles\n", path, nodes, meshes, triangles)

	if min, max, ok := scene3d.ComputeBounds(root); ok {
		size := max.Sub(min)
		fmt.Printf("Bounds: min=(%.2f, %.2f, %.2f) max=(%.2f, %.2f, %.2f) size=(%.2f, %.2f, %.2f)\n",
			min[0], min[1], min[2], max[0], max[1], max[2], size[0], size[1], size[2])
	}

	printTree(root, 0)
}

func printTree(n *scene3d.Node, depth int) {
	if depth > *maxDepth {
		return
	}
	label := n.Name
	if label == "" {
		label = "(root)"
	}
	if n.Mesh != nil {
		label += fmt.Sprintf(" [%d tris, #%06x]", len(n.Mesh.Geometry.Indices)/3, uint32(n.Mesh.Material.Color))
	}
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), label)
	for _, c := range n.Children() {
		printTree(c, depth+1)
	}
}
