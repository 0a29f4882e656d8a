package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/vec"
)

func TestNewChunkIsAir(t *testing.T) {
	c := New(0, 0)
	assert.True(t, c.Dirty, "новый чанк должен требовать перестройки меша")
	for lx := 0; lx < SizeX; lx++ {
		for lz := 0; lz < SizeZ; lz++ {
			assert.Equal(t, block.Air, c.Get(lx, 0, lz),
				"новый чанк должен состоять из воздуха")
		}
	}
}

func TestIndexUnique(t *testing.T) {
	// Упакованный индекс обязан быть биекцией локальных координат
	seen := make(map[int]bool, Volume)
	for y := 0; y < SizeY; y++ {
		for lz := 0; lz < SizeZ; lz++ {
			for lx := 0; lx < SizeX; lx++ {
				idx := Index(lx, y, lz)
				assert.False(t, seen[idx], "индекс (%d,%d,%d) не уникален", lx, y, lz)
				assert.GreaterOrEqual(t, idx, 0)
				assert.Less(t, idx, Volume)
				seen[idx] = true
			}
		}
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	c := New(3, -2)
	c.Set(5, 100, 7, block.DiamondOre)
	assert.Equal(t, block.DiamondOre, c.Get(5, 100, 7))
	assert.Equal(t, block.Air, c.Get(4, 100, 7), "соседний блок не должен меняться")
}

func TestWorldToChunkNegative(t *testing.T) {
	// Округление вниз, не усечение к нулю
	assert.Equal(t, vec.Vec2{X: 0, Z: 0}, WorldToChunk(0, 0))
	assert.Equal(t, vec.Vec2{X: 0, Z: 0}, WorldToChunk(7, 7))
	assert.Equal(t, vec.Vec2{X: 1, Z: 1}, WorldToChunk(8, 8))
	assert.Equal(t, vec.Vec2{X: -1, Z: -1}, WorldToChunk(-1, -1))
	assert.Equal(t, vec.Vec2{X: -1, Z: -1}, WorldToChunk(-8, -8))
	assert.Equal(t, vec.Vec2{X: -2, Z: -2}, WorldToChunk(-9, -9))
}

func TestLocalCoords(t *testing.T) {
	lx, lz := Local(-1, -1)
	assert.Equal(t, SizeX-1, lx, "блок -1 лежит в конце чанка -1")
	assert.Equal(t, SizeZ-1, lz)

	lx, lz = Local(10, 3)
	assert.Equal(t, 2, lx)
	assert.Equal(t, 3, lz)
}
