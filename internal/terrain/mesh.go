package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle mesh with per-vertex colors, the unit of data
// handed between the async builder and the renderer. Builders own their mesh
// exclusively until it is swapped into a chunk on the main loop.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Colors    []mgl32.Vec4
	Indices   []uint32
}

// NewPlaneMesh builds a flat, Y-up square grid of the given edge length,
// centered on the origin. The subdivision count follows the convention of the
// render plane primitive: 0 subdivisions is a single quad (2x2 vertices), and
// each subdivision adds one interior grid line per axis.
func NewPlaneMesh(size float32, subdivisions int) *Mesh {
	if subdivisions < 0 {
		subdivisions = 0
	}
	n := subdivisions + 2 // vertices per side
	step := size / float32(n-1)
	start := -size / 2

	m := &Mesh{
		Positions: make([]mgl32.Vec3, 0, n*n),
		Indices:   make([]uint32, 0, (n-1)*(n-1)*6),
	}

	for i := 0; i < n; i++ {
		z := start + float32(i)*step
		for j := 0; j < n; j++ {
			x := start + float32(j)*step
			m.Positions = append(m.Positions, mgl32.Vec3{x, 0, z})
		}
	}

	for i := 0; i < n-1; i++ {
		for j := 0; j < n-1; j++ {
			a := uint32(i*n + j)
			b := uint32((i+1)*n + j)
			c := a + 1
			d := b + 1
			// CCW seen from above (+Y)
			m.Indices = append(m.Indices, a, b, c, c, b, d)
		}
	}

	return m
}

// Clone deep-copies the mesh so a background task can mutate it freely.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Positions: make([]mgl32.Vec3, len(m.Positions)),
		Indices:   make([]uint32, len(m.Indices)),
	}
	copy(c.Positions, m.Positions)
	copy(c.Indices, m.Indices)
	if m.Normals != nil {
		c.Normals = make([]mgl32.Vec3, len(m.Normals))
		copy(c.Normals, m.Normals)
	}
	if m.Colors != nil {
		c.Colors = make([]mgl32.Vec4, len(m.Colors))
		copy(c.Colors, m.Colors)
	}
	return c
}

// ComputeSmoothNormals derives shared-vertex normals by accumulating the face
// normal of every incident triangle and normalizing. Degenerate triangles
// contribute nothing; a vertex left with a zero accumulator defaults to
// straight up rather than propagating a NaN into the lighting.
func (m *Mesh) ComputeSmoothNormals() {
	m.Normals = make([]mgl32.Vec3, len(m.Positions))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		face := faceNormal(m.Positions[ia], m.Positions[ib], m.Positions[ic])
		m.Normals[ia] = m.Normals[ia].Add(face)
		m.Normals[ib] = m.Normals[ib].Add(face)
		m.Normals[ic] = m.Normals[ic].Add(face)
	}

	for i, n := range m.Normals {
		if n.Len() < 1e-8 {
			m.Normals[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		m.Normals[i] = n.Normalize()
	}
}

// ComputeFlatNormals duplicates vertices so every triangle carries its own
// face normal. Trades vertex count for crisp terrain silhouettes; the index
// buffer becomes a trivial 0..N sequence.
func (m *Mesh) ComputeFlatNormals() {
	count := len(m.Indices)
	positions := make([]mgl32.Vec3, 0, count)
	normals := make([]mgl32.Vec3, 0, count)
	indices := make([]uint32, 0, count)
	var colors []mgl32.Vec4
	if m.Colors != nil {
		colors = make([]mgl32.Vec4, 0, count)
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		face := faceNormal(m.Positions[ia], m.Positions[ib], m.Positions[ic])
		if face.Len() < 1e-8 {
			face = mgl32.Vec3{0, 1, 0}
		} else {
			face = face.Normalize()
		}
		for _, idx := range []uint32{ia, ib, ic} {
			positions = append(positions, m.Positions[idx])
			normals = append(normals, face)
			if colors != nil {
				colors = append(colors, m.Colors[idx])
			}
			indices = append(indices, uint32(len(positions)-1))
		}
	}

	m.Positions = positions
	m.Normals = normals
	m.Indices = indices
	if colors != nil {
		m.Colors = colors
	}
}

func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}
