package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/chunk"
	"github.com/annel0/blockforge/internal/noise"
)

func newTestSampler(seed int64) *Sampler {
	return NewSampler(noise.NewField(seed))
}

func TestColumnHeightDeterminism(t *testing.T) {
	a := newTestSampler(1337)
	b := newTestSampler(1337)

	for wx := -50; wx < 50; wx += 7 {
		for wz := -50; wz < 50; wz += 7 {
			assert.Equal(t, a.ColumnHeight(wx, wz), b.ColumnHeight(wx, wz),
				"высота в (%d, %d) должна воспроизводиться из сида", wx, wz)
		}
	}
}

func TestColumnHeightRange(t *testing.T) {
	s := newTestSampler(42)

	for wx := -500; wx < 500; wx += 13 {
		for wz := -500; wz < 500; wz += 17 {
			h := s.ColumnHeight(wx, wz)
			require.GreaterOrEqual(t, h, 1, "высота не может опуститься ниже 1")
			require.Less(t, h, chunk.SizeY, "высота не может достичь потолка мира")
		}
	}
}

func TestBlendWeightRange(t *testing.T) {
	s := newTestSampler(7)

	for wx := -300; wx < 300; wx += 11 {
		for wz := -300; wz < 300; wz += 11 {
			w := s.BlendWeight(wx, wz)
			require.GreaterOrEqual(t, w, 0.0)
			require.LessOrEqual(t, w, 1.0)

			// В чистой пустыне вес обязан быть 1, в чистых равнинах 0
			switch s.Biome(wx, wz) {
			case BiomeJungle:
				assert.Equal(t, 0.0, w, "джунгли не смешиваются с пустыней")
			}
		}
	}
}

func TestBiomeConsistentWithWeight(t *testing.T) {
	// Внутри пустыни (не в переходной зоне) вес строго положительный
	s := newTestSampler(99)

	found := false
	for wx := -1000; wx < 1000 && !found; wx += 31 {
		for wz := -1000; wz < 1000 && !found; wz += 31 {
			if s.Biome(wx, wz) == BiomeDesert {
				assert.Greater(t, s.BlendWeight(wx, wz), 0.0,
					"в пустыне вес пустынного рельефа должен быть положительным")
				found = true
			}
		}
	}
}

func TestCarveCavesDeterminismAndBounds(t *testing.T) {
	a := newTestSampler(2024)
	b := newTestSampler(2024)

	carvedA := a.CarveCaves(3, -5)
	carvedB := b.CarveCaves(3, -5)
	assert.Equal(t, carvedA, carvedB, "пещеры должны воспроизводиться из сида")

	for pos := range carvedA {
		assert.GreaterOrEqual(t, pos.X, 0)
		assert.Less(t, pos.X, chunk.SizeX)
		assert.GreaterOrEqual(t, pos.Z, 0)
		assert.Less(t, pos.Z, chunk.SizeZ)
		assert.GreaterOrEqual(t, pos.Y, 1, "бедрок не вырезается")
		assert.Less(t, pos.Y, chunk.SizeY-1, "верхний слой не вырезается")
	}
}

func TestCavesExistSomewhere(t *testing.T) {
	// При шансе 15% на чанк в области 20x20 черви почти наверняка есть
	s := newTestSampler(555)

	total := 0
	for cx := 0; cx < 20; cx++ {
		for cz := 0; cz < 20; cz++ {
			total += len(s.CarveCaves(cx, cz))
		}
	}
	assert.Greater(t, total, 0, "в большой области должны встретиться пещеры")
}

func TestTreeGridSpacing(t *testing.T) {
	s := newTestSampler(1)

	// Вне сетки дерево не ставится никогда
	assert.False(t, s.ShouldPlaceTree(3, 10))
	assert.False(t, s.ShouldPlaceTree(10, 7))
	assert.False(t, s.ShouldPlaceCactus(5, 3))
}

func TestGenerateTreeShape(t *testing.T) {
	s := newTestSampler(10)

	blocks := s.GenerateTree(100, 20, 100)
	require.NotEmpty(t, blocks)

	trunk := 0
	leaves := 0
	for _, p := range blocks {
		switch p.ID {
		case block.Wood:
			trunk++
			assert.Equal(t, 100, p.Pos.X, "ствол растёт вертикально")
			assert.Equal(t, 100, p.Pos.Z)
		case block.Leaves:
			leaves++
		default:
			t.Fatalf("дуб не содержит блок %v", p.ID)
		}
	}
	assert.GreaterOrEqual(t, trunk, 4)
	assert.LessOrEqual(t, trunk, 5)
	assert.Greater(t, leaves, 0, "у дерева должна быть крона")
}

func TestGenerateJungleTreeShape(t *testing.T) {
	s := newTestSampler(10)

	blocks := s.GenerateJungleTree(0, 20, 0)
	trunk := 0
	for _, p := range blocks {
		if p.ID == block.JungleLog {
			trunk++
		}
	}
	assert.GreaterOrEqual(t, trunk, 8, "дерево джунглей высокое")
	assert.LessOrEqual(t, trunk, 12)
}

func TestGenerateCactusHeight(t *testing.T) {
	s := newTestSampler(10)

	for wx := 0; wx < 200; wx += 5 {
		blocks := s.GenerateCactus(wx, 19, 0)
		require.GreaterOrEqual(t, len(blocks), 1)
		require.LessOrEqual(t, len(blocks), 4)
		for _, p := range blocks {
			assert.Equal(t, block.Cactus, p.ID)
		}
	}
}

func TestTreeTypeDeterminism(t *testing.T) {
	a := newTestSampler(8)
	b := newTestSampler(8)
	for wx := 0; wx < 100; wx += 10 {
		assert.Equal(t, a.TreeType(wx, 0), b.TreeType(wx, 0))
	}
}
