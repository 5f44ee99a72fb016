// Package asset imports meshes from glTF files.
package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"uberdrive/internal/scene"
)

// DefaultColor is used for primitives without a material.
var DefaultColor = [4]float32{0.8, 0.8, 0.8, 1}

var ErrNoGeometry = errors.New("asset contains no triangle meshes")

// Part is one drawable primitive with its node transform baked in.
type Part struct {
	Name string
	Mesh *scene.MeshPart
}

// Model is the result of an import.
type Model struct {
	Path  string
	Parts []Part
}

// Result is what ImportAsync delivers.
type Result struct {
	Model *Model
	Err   error
}

// ImportAsync runs Import on its own goroutine. Exactly one Result is sent
// on the returned channel, which is then closed.
func ImportAsync(ctx context.Context, path string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		if err := ctx.Err(); err != nil {
			out <- Result{Err: fmt.Errorf("import %s: %w", path, err)}
			return
		}
		m, err := Import(path)
		if err == nil && ctx.Err() != nil {
			m, err = nil, fmt.Errorf("import %s: %w", path, ctx.Err())
		}
		out <- Result{Model: m, Err: err}
	}()
	return out
}

// Import reads a .glb or .gltf file and flattens the default scene into
// parts, one per triangle primitive.
func Import(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	m, err := fromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

func fromDocument(doc *gltf.Document) (*Model, error) {
	m := &Model{}
	var roots []int
	switch {
	case doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes):
		for _, n := range doc.Scenes[*doc.Scene].Nodes {
			roots = append(roots, int(n))
		}
	case len(doc.Scenes) > 0:
		for _, n := range doc.Scenes[0].Nodes {
			roots = append(roots, int(n))
		}
	default:
		for i := range doc.Nodes {
			roots = append(roots, i)
		}
	}

	var walk func(idx int, parent mgl32.Mat4, depth int) error
	walk = func(idx int, parent mgl32.Mat4, depth int) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node %d out of range", idx)
		}
		if depth > len(doc.Nodes) {
			return fmt.Errorf("node %d: cyclic hierarchy", idx)
		}
		node := doc.Nodes[idx]
		world := parent.Mul4(nodeMatrix(node))
		if node.Mesh != nil {
			parts, err := readMesh(doc, int(*node.Mesh), world)
			if err != nil {
				return fmt.Errorf("node %q: %w", node.Name, err)
			}
			for i := range parts {
				parts[i].Name = partName(node.Name, i, len(parts))
			}
			m.Parts = append(m.Parts, parts...)
		}
		for _, c := range node.Children {
			if err := walk(int(c), world, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range roots {
		if err := walk(r, mgl32.Ident4(), 0); err != nil {
			return nil, err
		}
	}
	if len(m.Parts) == 0 {
		return nil, ErrNoGeometry
	}
	return m, nil
}

func partName(node string, i, n int) string {
	if n == 1 {
		return node
	}
	return fmt.Sprintf("%s_primitive%d", node, i)
}

func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	var mat mgl32.Mat4
	raw := n.MatrixOrDefault()
	for i := range raw {
		mat[i] = float32(raw[i])
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	trs := mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
	return mat.Mul4(trs)
}

func readMesh(doc *gltf.Document, idx int, world mgl32.Mat4) ([]Part, error) {
	if idx < 0 || idx >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of range", idx)
	}
	mesh := doc.Meshes[idx]
	normalMat := world.Inv().Transpose().Mat3()

	var parts []Part
	for pi, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			return nil, fmt.Errorf("mesh %q primitive %d: missing POSITION", mesh.Name, pi)
		}
		acr, err := accessor(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: positions: %w", mesh.Name, pi, err)
		}
		positions, err := modeler.ReadPosition(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: positions: %w", mesh.Name, pi, err)
		}

		var indices []uint32
		if prim.Indices != nil {
			if acr, err = accessor(doc, *prim.Indices); err == nil {
				indices, err = modeler.ReadIndices(doc, acr, nil)
			}
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: indices: %w", mesh.Name, pi, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}
		for _, i := range indices {
			if int(i) >= len(positions) {
				return nil, fmt.Errorf("mesh %q primitive %d: index %d out of range", mesh.Name, pi, i)
			}
		}

		var normals [][3]float32
		if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if acr, err = accessor(doc, nIdx); err == nil {
				normals, err = modeler.ReadNormal(doc, acr, nil)
			}
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: normals: %w", mesh.Name, pi, err)
			}
		}
		if len(normals) != len(positions) {
			normals = vertexNormals(positions, indices)
		}

		part := &scene.MeshPart{
			Positions: make([][3]float32, len(positions)),
			Normals:   make([][3]float32, len(positions)),
			Indices:   indices,
			Color:     materialColor(doc, prim),
		}
		// glTF is right-handed; the world is left-handed, so z flips.
		for i, p := range positions {
			wp := world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
			part.Positions[i] = [3]float32{wp.X(), wp.Y(), -wp.Z()}
			n := normalMat.Mul3x1(mgl32.Vec3(normals[i]))
			if l := n.Len(); l > 0 {
				n = n.Mul(1 / l)
			}
			part.Normals[i] = [3]float32{n.X(), n.Y(), -n.Z()}
		}
		parts = append(parts, Part{Mesh: part})
	}
	return parts, nil
}

func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

func materialColor(doc *gltf.Document, prim *gltf.Primitive) [4]float32 {
	if prim.Material == nil || int(*prim.Material) >= len(doc.Materials) {
		return DefaultColor
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return DefaultColor
	}
	c := *pbr.BaseColorFactor
	return [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
}

// vertexNormals averages the face normals around each vertex.
func vertexNormals(pos [][3]float32, idx []uint32) [][3]float32 {
	acc := make([]mgl32.Vec3, len(pos))
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := mgl32.Vec3(pos[idx[i]]), mgl32.Vec3(pos[idx[i+1]]), mgl32.Vec3(pos[idx[i+2]])
		fn := b.Sub(a).Cross(c.Sub(a))
		acc[idx[i]] = acc[idx[i]].Add(fn)
		acc[idx[i+1]] = acc[idx[i+1]].Add(fn)
		acc[idx[i+2]] = acc[idx[i+2]].Add(fn)
	}
	out := make([][3]float32, len(pos))
	for i, n := range acc {
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		} else {
			n = mgl32.Vec3{0, 1, 0}
		}
		out[i] = [3]float32(n)
	}
	return out
}
