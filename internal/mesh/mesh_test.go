package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/chunk"
)

// chunkSolid замыкает проверку твёрдости на единственный чанк:
// всё за его пределами считается воздухом
func chunkSolid(c *chunk.Chunk) SolidFunc {
	wx0, wz0 := c.Origin()
	return func(wx, wy, wz int) bool {
		lx := wx - wx0
		lz := wz - wz0
		if lx < 0 || lx >= chunk.SizeX || lz < 0 || lz >= chunk.SizeZ ||
			wy < 0 || wy >= chunk.SizeY {
			return false
		}
		return c.Get(lx, wy, lz).IsSolid()
	}
}

func noJungle(wx, wz int) bool { return false }

func TestSingleBlockSixFaces(t *testing.T) {
	c := chunk.New(0, 0)
	c.Set(3, 10, 3, block.Stone)

	b := NewBuilder(NewAtlas())
	faces := b.BuildMesh(c, chunkSolid(c), noJungle)
	assert.Len(t, faces, 6, "одиночный блок в воздухе даёт шесть граней")
}

func TestAdjacentBlocksHideSharedFaces(t *testing.T) {
	c := chunk.New(0, 0)
	c.Set(3, 10, 3, block.Stone)
	c.Set(4, 10, 3, block.Stone)

	b := NewBuilder(NewAtlas())
	faces := b.BuildMesh(c, chunkSolid(c), noJungle)
	// Две общие грани скрыты: 12 - 2 = 10
	assert.Len(t, faces, 10, "общая грань двух блоков не рисуется")
}

func TestFullyOccludedBlockSkipped(t *testing.T) {
	c := chunk.New(0, 0)
	// Блок 3x3x3: центральный блок закрыт со всех сторон
	for dx := 2; dx <= 4; dx++ {
		for dy := 9; dy <= 11; dy++ {
			for dz := 2; dz <= 4; dz++ {
				c.Set(dx, dy, dz, block.Stone)
			}
		}
	}

	b := NewBuilder(NewAtlas())
	faces := b.BuildMesh(c, chunkSolid(c), noJungle)

	// Куб 3x3x3 имеет 9 видимых граней на каждую из 6 сторон
	assert.Len(t, faces, 54, "видны только внешние грани куба")
}

func TestShadePerDirection(t *testing.T) {
	c := chunk.New(0, 0)
	c.Set(3, 10, 3, block.Stone)

	b := NewBuilder(NewAtlas())
	faces := b.BuildMesh(c, chunkSolid(c), noJungle)
	require.Len(t, faces, 6)

	for _, f := range faces {
		switch {
		case f.Normal[1] > 0.5:
			assert.Equal(t, ShadeTop, f.Shade)
		case f.Normal[1] < -0.5:
			assert.Equal(t, ShadeBottom, f.Shade)
		case f.Normal[0] > 0.5 || f.Normal[0] < -0.5:
			assert.Equal(t, ShadeEastWest, f.Shade)
		default:
			assert.Equal(t, ShadeNorthSouth, f.Shade)
		}
		// Затенение уже вшито в цвет
		base := block.Stone.FaceColor(block.FaceTop, false)
		if f.Normal[1] > 0.5 {
			assert.InDelta(t, base.R*ShadeTop, f.Color.R, 1e-9)
		}
	}
}

func TestVerticesOffsetAlongNormal(t *testing.T) {
	c := chunk.New(0, 0)
	c.Set(0, 10, 0, block.Stone)

	b := NewBuilder(NewAtlas())
	faces := b.BuildMesh(c, chunkSolid(c), noJungle)

	for _, f := range faces {
		if f.Normal[1] > 0.5 {
			for _, v := range f.Vertices {
				assert.InDelta(t, 11.0+0.001, v[1], 1e-9,
					"вершины верхней грани смещены по нормали")
			}
		}
	}
}

func TestUVFallbacks(t *testing.T) {
	c := chunk.New(0, 0)
	c.Set(0, 10, 0, block.SwordIron) // блок без текстуры

	// Атлас с одним камнем: запасной вариант должен сработать
	atlas := NewAtlas()
	stone := UVRect{UMin: 0.25, VMin: 0.25, UMax: 0.5, VMax: 0.5}
	atlas.Add("stone", stone)

	b := NewBuilder(atlas)
	faces := b.BuildMesh(c, chunkSolid(c), noJungle)
	require.NotEmpty(t, faces)
	assert.Equal(t, stone, faces[0].UV, "без своей текстуры блок получает камень")

	// Пустой атлас: весь атлас целиком
	b = NewBuilder(NewAtlas())
	faces = b.BuildMesh(c, chunkSolid(c), noJungle)
	assert.Equal(t, FullTexture, faces[0].UV)
}

func TestGrassJungleTint(t *testing.T) {
	c := chunk.New(0, 0)
	c.Set(0, 10, 0, block.Grass)

	b := NewBuilder(NewAtlas())

	plains := b.BuildMesh(c, chunkSolid(c), noJungle)
	jungle := b.BuildMesh(c, chunkSolid(c), func(wx, wz int) bool { return true })

	var plainsTop, jungleTop *Face
	for i := range plains {
		if plains[i].Normal[1] > 0.5 {
			plainsTop = &plains[i]
		}
	}
	for i := range jungle {
		if jungle[i].Normal[1] > 0.5 {
			jungleTop = &jungle[i]
		}
	}
	require.NotNil(t, plainsTop)
	require.NotNil(t, jungleTop)
	assert.NotEqual(t, plainsTop.Color, jungleTop.Color,
		"трава в джунглях тонируется иначе")
}

func TestGridAtlasDeterministicLayout(t *testing.T) {
	a := NewGridAtlas([]string{"stone", "dirt", "grass", "sand"})
	b := NewGridAtlas([]string{"sand", "grass", "dirt", "stone"})

	for _, name := range []string{"stone", "dirt", "grass", "sand"} {
		ra, ok := a.UV(name)
		require.True(t, ok)
		rb, ok := b.UV(name)
		require.True(t, ok)
		assert.Equal(t, ra, rb, "раскладка атласа не зависит от порядка имён")
		assert.Less(t, ra.UMin, ra.UMax)
		assert.Less(t, ra.VMin, ra.VMax)
	}
}
