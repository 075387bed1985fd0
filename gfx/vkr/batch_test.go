package vkr

import (
	"testing"

	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addQuads(b *QuadBatcher, count int) {
	for i := 0; i < count; i++ {
		b.AddQuad(glm.Vec3{float32(i), 0, 0}, glm.Vec3{1, 1, 1}, glm.Vec4{1, 1, 1, 1})
	}
}

func TestQuadBatcherSplitsAtCapacity(t *testing.T) {
	batcher := NewQuadBatcher(3)
	addQuads(batcher, 7)

	batches := batcher.Batches()
	require.Len(t, batches, 3)
	assert.Len(t, batches[0].Vertices, 12)
	assert.Len(t, batches[1].Vertices, 12)
	assert.Len(t, batches[2].Vertices, 4)
	assert.Len(t, batches[2].Indices, 6)
}

func TestQuadBatcherNeverOverfills(t *testing.T) {
	const maxQuads = 4
	batcher := NewQuadBatcher(maxQuads)
	addQuads(batcher, 42)

	batches := batcher.Batches()
	for i, batch := range batches {
		if i < len(batches)-1 {
			assert.Len(t, batch.Vertices, 4*maxQuads, "batch %d", i)
		} else {
			assert.LessOrEqual(t, len(batch.Vertices), 4*maxQuads)
		}
	}
}

func TestQuadBatcherGeometryCounts(t *testing.T) {
	batcher := NewQuadBatcher(10)
	addQuads(batcher, 6)

	batch := batcher.Batches()[0]
	require.Len(t, batch.Vertices, 24)
	require.Len(t, batch.Indices, 36)

	// Every index of quad k addresses that quad's own four vertices.
	for k := 0; k < 6; k++ {
		for _, idx := range batch.Indices[6*k : 6*k+6] {
			assert.GreaterOrEqual(t, idx, uint32(4*k))
			assert.Less(t, idx, uint32(4*k+4))
		}
	}
}

func TestQuadBatcherVertexTransform(t *testing.T) {
	batcher := NewQuadBatcher(DefaultMaxQuads)
	batcher.AddQuad(glm.Vec3{5, 0, 0}, glm.Vec3{2, 1, 1}, glm.Vec4{1, 1, 1, 1})

	first := batcher.Batches()[0].Vertices[0]
	assert.Equal(t, glm.Vec4{3, -1, 0, 1}, first.Pos)
}

func TestQuadBatcherSingleQuad(t *testing.T) {
	batcher := NewQuadBatcher(DefaultMaxQuads)
	red := glm.Vec4{1, 0, 0, 1}
	batcher.AddQuad(glm.Vec3{1, 2, 0}, glm.Vec3{3, 4, 1}, red)

	batches := batcher.Batches()
	require.Len(t, batches, 1)
	batch := batches[0]

	expected := []glm.Vec4{
		{-2, -2, 0, 1},
		{4, -2, 0, 1},
		{4, 6, 0, 1},
		{-2, 6, 0, 1},
	}
	require.Len(t, batch.Vertices, 4)
	for i, vertex := range batch.Vertices {
		assert.Equal(t, expected[i], vertex.Pos, "vertex %d", i)
		assert.Equal(t, red, vertex.Color, "vertex %d", i)
	}
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, batch.Indices)
}

func TestQuadBatcherIndexOffsets(t *testing.T) {
	batcher := NewQuadBatcher(DefaultMaxQuads)
	addQuads(batcher, 2)

	indices := batcher.Batches()[0].Indices
	require.Len(t, indices, 12)
	assert.Equal(t, []uint32{4, 5, 6, 6, 7, 4}, indices[6:])
}

func TestQuadBatcherClear(t *testing.T) {
	batcher := NewQuadBatcher(2)
	addQuads(batcher, 5)
	batcher.Clear()

	assert.Empty(t, batcher.Batches())
	assert.Zero(t, batcher.QuadCount())

	addQuads(batcher, 5)
	fresh := NewQuadBatcher(2)
	addQuads(fresh, 5)
	assert.Equal(t, fresh.Batches(), batcher.Batches())
}

func TestQuadBatcherZeroCapacity(t *testing.T) {
	batcher := NewQuadBatcher(0)
	addQuads(batcher, 3)

	batches := batcher.Batches()
	require.Len(t, batches, 3)
	for _, batch := range batches {
		assert.Len(t, batch.Vertices, 4)
	}
}

func benchmarkAddQuads(count int, b *testing.B) {
	batcher := NewQuadBatcher(DefaultMaxQuads)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		addQuads(batcher, count)
		batcher.Clear()
	}
}

func BenchmarkAddQuad1(b *testing.B)    { benchmarkAddQuads(1, b) }
func BenchmarkAddQuad10(b *testing.B)   { benchmarkAddQuads(10, b) }
func BenchmarkAddQuad100(b *testing.B)  { benchmarkAddQuads(100, b) }
func BenchmarkAddQuad1000(b *testing.B) { benchmarkAddQuads(1000, b) }

func BenchmarkAddQuadGrid(b *testing.B) {
	batcher := NewQuadBatcher(DefaultMaxQuads)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for y := -25; y <= 25; y++ {
			for x := -25; x <= 25; x++ {
				batcher.AddQuad(
					glm.Vec3{float32(x), float32(y), 0},
					glm.Vec3{0.4, 0.4, 1},
					glm.Vec4{0.5, 0.7, 0.9, 1},
				)
			}
		}
		batcher.Clear()
	}
}
