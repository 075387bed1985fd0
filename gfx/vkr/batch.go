package vkr

import (
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devodev/toy-engine/model"
)

// DefaultMaxQuads is the batch capacity used when none is configured.
const DefaultMaxQuads = 2000

// quadCorners are the canonical unit quad corners, counter-clockwise
// starting bottom-left.
var quadCorners = [4]glm.Vec4{
	{-1, -1, 0, 1},
	{1, -1, 0, 1},
	{1, 1, 0, 1},
	{-1, 1, 0, 1},
}

// quadIndexPattern triangulates one quad relative to its first vertex.
var quadIndexPattern = [6]uint32{0, 1, 2, 2, 3, 0}

// QuadBatch holds the accumulated geometry of up to maxQuads quads.
type QuadBatch struct {
	Vertices []model.Vertex
	Indices  []uint32
}

func newQuadBatch(maxQuads uint32) *QuadBatch {
	return &QuadBatch{
		Vertices: make([]model.Vertex, 0, 4*maxQuads),
		Indices:  make([]uint32, 0, 6*maxQuads),
	}
}

// add appends one transformed quad. The quad is scaled about the origin
// first, then translated, so a non-uniform scale never shifts the center.
func (b *QuadBatch) add(position, scale glm.Vec3, color glm.Vec4) {
	base := uint32(len(b.Vertices))
	for _, idx := range quadIndexPattern {
		b.Indices = append(b.Indices, base+idx)
	}

	transform := glm.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(glm.Scale3D(scale.X(), scale.Y(), scale.Z()))
	for _, corner := range quadCorners {
		b.Vertices = append(b.Vertices, model.Vertex{
			Pos:   transform.Mul4x1(corner),
			Color: color,
		})
	}
}

// NewQuadBatcher creates a batcher that splits quads into batches of
// up to maxQuads each. A maxQuads of zero degenerates into one batch
// per quad and is only useful in tests.
func NewQuadBatcher(maxQuads uint32) *QuadBatcher {
	return &QuadBatcher{maxQuads: maxQuads}
}

// QuadBatcher accumulates quads into batches so that an arbitrary
// number of quads can be drawn with a bounded number of draw calls.
type QuadBatcher struct {
	maxQuads     uint32
	currentBatch int
	quadCount    uint32

	batches []*QuadBatch
}

// AddQuad appends a quad to the current batch, advancing to a fresh
// batch when the current one is at capacity.
func (q *QuadBatcher) AddQuad(position, scale glm.Vec3, color glm.Vec4) {
	full := len(q.batches) > 0 && q.quadCount >= q.maxQuads
	if full {
		q.currentBatch++
		q.quadCount = 0
	}
	if full || len(q.batches) == 0 {
		q.batches = append(q.batches, newQuadBatch(q.maxQuads))
	}
	q.batches[q.currentBatch].add(position, scale, color)
	q.quadCount++
}

// Clear drops all accumulated geometry and rewinds to the first batch.
func (q *QuadBatcher) Clear() {
	q.batches = q.batches[:0]
	q.currentBatch = 0
	q.quadCount = 0
}

// Batches returns the accumulated batches in submission order.
func (q *QuadBatcher) Batches() []*QuadBatch {
	return q.batches
}

// MaxQuads returns the configured per-batch capacity.
func (q *QuadBatcher) MaxQuads() uint32 {
	return q.maxQuads
}

// QuadCount returns the number of quads in the current batch.
func (q *QuadBatcher) QuadCount() uint32 {
	return q.quadCount
}
