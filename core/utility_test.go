package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devodev/toy-engine/core"
)

func TestSliceUint32(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00, 0xff, 0xff, 0x00, 0x00}
	words := core.SliceUint32(data)
	assert.Equal(t, []uint32{1, 0xffff}, words)
}

func TestSliceUint32TruncatesPartialWord(t *testing.T) {
	data := make([]byte, 10)
	assert.Len(t, core.SliceUint32(data), 2)
}

func BenchmarkSliceUint32Small(b *testing.B) {
	data := make([]byte, 100)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Medium(b *testing.B) {
	data := make([]byte, 1000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Big(b *testing.B) {
	data := make([]byte, 100000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}
