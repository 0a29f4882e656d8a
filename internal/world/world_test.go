package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/chunk"
	"github.com/annel0/blockforge/internal/mesh"
	"github.com/annel0/blockforge/internal/noise"
	"github.com/annel0/blockforge/internal/terrain"
	"github.com/annel0/blockforge/internal/vec"
)

func newTestWorld(seed int64, opts Options) *World {
	sampler := terrain.NewSampler(noise.NewField(seed))
	builder := mesh.NewBuilder(mesh.NewAtlas())
	return New(sampler, builder, nil, nil, opts)
}

func TestEnsureDeterministic(t *testing.T) {
	a := newTestWorld(1337, DefaultOptions())
	b := newTestWorld(1337, DefaultOptions())

	ca := a.Ensure(2, -3)
	cb := b.Ensure(2, -3)
	assert.Equal(t, ca.Blocks, cb.Blocks,
		"чанк должен полностью воспроизводиться из сида")
}

func TestEnsureIdempotent(t *testing.T) {
	w := newTestWorld(1, DefaultOptions())
	c1 := w.Ensure(0, 0)
	c2 := w.Ensure(0, 0)
	assert.Same(t, c1, c2, "повторный Ensure возвращает тот же чанк")
	assert.Equal(t, 1, w.ChunkCount())
}

func TestGeneratedChunkLayers(t *testing.T) {
	w := newTestWorld(42, DefaultOptions())
	c := w.Ensure(0, 0)

	for lz := 0; lz < chunk.SizeZ; lz++ {
		for lx := 0; lx < chunk.SizeX; lx++ {
			assert.Equal(t, block.Bedrock, c.Get(lx, 0, lz),
				"нулевой уровень всегда бедрок")
			assert.Equal(t, block.Air, c.Get(lx, chunk.SizeY-1, lz),
				"потолок мира — воздух")
		}
	}
}

func TestCactusCleanupRemovesTouchingColumn(t *testing.T) {
	w := newTestWorld(0, DefaultOptions())
	c := chunk.New(0, 0)

	// Два столба кактусов, соприкасающиеся по диагонали, и один одиночный
	for y := 10; y < 13; y++ {
		c.Set(2, y, 2, block.Cactus)
		c.Set(3, y, 3, block.Cactus)
		c.Set(6, y, 6, block.Cactus)
	}

	w.cleanupCacti(c)

	columnIs := func(lx, lz int, id block.ID) bool {
		for y := 10; y < 13; y++ {
			if c.Get(lx, y, lz) != id {
				return false
			}
		}
		return true
	}

	first := columnIs(2, 2, block.Cactus)
	second := columnIs(3, 3, block.Cactus)
	require.True(t, first != second,
		"из пары соседних столбов должен уцелеть ровно один")
	if first {
		assert.True(t, columnIs(3, 3, block.Air), "удалённый столб исчезает целиком")
	} else {
		assert.True(t, columnIs(2, 2, block.Air), "удалённый столб исчезает целиком")
	}

	assert.True(t, columnIs(6, 6, block.Cactus), "одиночный столб не трогается")
}

func TestIsSolidBounds(t *testing.T) {
	w := newTestWorld(7, DefaultOptions())

	assert.True(t, w.IsSolid(0, -1, 0), "ниже мира — твёрдый бедрок")
	assert.False(t, w.IsSolid(0, chunk.SizeY, 0), "выше мира — воздух")

	// Незагруженный чанк — воздух, и запрос не должен его генерировать
	assert.False(t, w.IsSolid(1000, 10, 1000))
	assert.Equal(t, 0, w.ChunkCount(), "IsSolid не генерирует чанки")
}

func TestBlockFallback(t *testing.T) {
	w := newTestWorld(7, DefaultOptions())

	// Для незагруженного чанка отвечает аналитический ландшафт
	h := w.Sampler().ColumnHeight(500, 500)
	assert.Equal(t, block.Grass, w.Block(500, h, 500))
	assert.Equal(t, block.Air, w.Block(500, h+1, 500))
	assert.Equal(t, block.Bedrock, w.Block(500, 0, 500))
	assert.Equal(t, 0, w.ChunkCount())
}

func TestRemoveBlockRules(t *testing.T) {
	w := newTestWorld(9, DefaultOptions())
	c := w.Ensure(0, 0)

	// Найдём твёрдый блок выше бедрока
	h := 0
	for y := chunk.SizeY - 1; y > 0; y-- {
		if c.Get(3, y, 3).IsSolid() {
			h = y
			break
		}
	}
	require.Greater(t, h, 0)

	assert.False(t, w.RemoveBlock(3, 0, 3), "бедрок нельзя выкопать")
	assert.False(t, w.RemoveBlock(3, chunk.SizeY, 3), "выше мира копать нечего")
	assert.False(t, w.RemoveBlock(100, 10, 100), "незагруженный чанк не изменяется")

	assert.True(t, w.RemoveBlock(3, h, 3))
	assert.Equal(t, block.Air, c.Get(3, h, 3))
	assert.False(t, w.RemoveBlock(3, h, 3), "повторное удаление воздуха отклоняется")
}

func TestPlaceBlockRules(t *testing.T) {
	w := newTestWorld(9, DefaultOptions())
	c := w.Ensure(0, 0)

	// Воздушная позиция высоко над землёй
	assert.True(t, w.PlaceBlock(3, 100, 3, block.Brick))
	assert.Equal(t, block.Brick, c.Get(3, 100, 3))

	assert.False(t, w.PlaceBlock(3, 100, 3, block.Stone), "занятая позиция отклоняется")
	assert.False(t, w.PlaceBlock(3, 0, 3, block.Stone), "уровень бедрока защищён")
	assert.False(t, w.PlaceBlock(3, chunk.SizeY, 3, block.Stone))
}

func TestBoundaryNeighborDirtying(t *testing.T) {
	w := newTestWorld(5, DefaultOptions())
	center := w.Ensure(0, 0)
	left := w.Ensure(-1, 0)
	north := w.Ensure(0, -1)
	far := w.Ensure(1, 1)

	// Сбрасываем флаги, имитируя отстроенные меши
	center.Dirty = false
	left.Dirty = false
	north.Dirty = false
	far.Dirty = false

	// Блок на западной границе чанка (lx == 0)
	require.True(t, w.PlaceBlock(0, 100, 3, block.Stone))
	assert.True(t, center.Dirty)
	assert.True(t, left.Dirty, "сосед через границу должен перестроить меш")
	assert.False(t, north.Dirty, "блок не на северной границе")
	assert.False(t, far.Dirty)

	// Блок на северной границе (lz == 0)
	north.Dirty = false
	require.True(t, w.PlaceBlock(3, 100, 0, block.Stone))
	assert.True(t, north.Dirty)
}

func TestUpdateBudgets(t *testing.T) {
	w := newTestWorld(3, Options{RenderDistance: 2, CreateBudget: 1, MeshBudget: 1})

	w.Update(0, 0)
	assert.Equal(t, 1, w.ChunkCount(), "за тик создаётся не больше одного чанка")

	w.Update(0, 0)
	assert.Equal(t, 2, w.ChunkCount())
}

func TestUpdateUnloadsOutsideRing(t *testing.T) {
	w := newTestWorld(3, Options{RenderDistance: 1, CreateBudget: 100, MeshBudget: 100})

	w.Preload(0, 0)
	require.Equal(t, 9, w.ChunkCount(), "кольцо радиуса 1 — это 3x3 чанков")

	// Уходим далеко: старые чанки выгружаются, новое кольцо создаётся
	w.Update(1000, 1000)
	assert.Nil(t, w.ChunkAt(vec.Vec2{}), "чанк за пределами кольца должен выгрузиться")
	assert.Equal(t, 9, w.ChunkCount(), "загружено только новое кольцо")
}

func TestPreloadLoadsWholeRing(t *testing.T) {
	w := newTestWorld(11, Options{RenderDistance: 2, CreateBudget: 1, MeshBudget: 1})

	created, meshed := w.Preload(0, 0)
	assert.Equal(t, 25, created, "кольцо радиуса 2 — это 5x5 чанков")
	assert.Equal(t, 25, meshed)
	assert.Equal(t, 25, w.ChunkCount())

	// Все меши построены и чанки чистые
	for _, coords := range spiralCoords(vec.Vec2{}, 2) {
		c := w.ChunkAt(coords)
		require.NotNil(t, c)
		assert.False(t, c.Dirty)
		assert.NotEmpty(t, w.MeshAt(coords))
	}
}

func TestSpiralOrder(t *testing.T) {
	coords := spiralCoords(vec.Vec2{X: 0, Z: 0}, 3)
	assert.Equal(t, 49, len(coords), "кольцо радиуса 3 — это 7x7 чанков")
	assert.Equal(t, vec.Vec2{X: 0, Z: 0}, coords[0], "центр идёт первым")

	// Расстояние Чебышёва не убывает вдоль списка
	prev := 0
	for _, cc := range coords {
		d := cc.ChebyshevDistance(vec.Vec2{})
		assert.GreaterOrEqual(t, d, prev, "порядок от центра наружу")
		prev = d
	}
}

// memPersist — хранилище в памяти для тестов
type memPersist struct {
	chunks map[vec.Vec2][chunk.Volume]block.ID
}

func newMemPersist() *memPersist {
	return &memPersist{chunks: make(map[vec.Vec2][chunk.Volume]block.ID)}
}

func (m *memPersist) LoadChunk(cx, cz int) (*[chunk.Volume]block.ID, error) {
	blocks, ok := m.chunks[vec.Vec2{X: cx, Z: cz}]
	if !ok {
		return nil, nil
	}
	return &blocks, nil
}

func (m *memPersist) SaveChunk(cx, cz int, blocks *[chunk.Volume]block.ID) error {
	m.chunks[vec.Vec2{X: cx, Z: cz}] = *blocks
	return nil
}

func TestEditsSurviveUnload(t *testing.T) {
	persist := newMemPersist()
	sampler := terrain.NewSampler(noise.NewField(77))
	builder := mesh.NewBuilder(mesh.NewAtlas())
	w := New(sampler, builder, persist, nil, Options{RenderDistance: 1, CreateBudget: 100, MeshBudget: 100})

	w.Preload(0, 0)
	require.True(t, w.PlaceBlock(3, 100, 3, block.Brick))

	// Уходим: чанк выгружается с сохранением правок
	w.Update(1000, 1000)
	require.Nil(t, w.ChunkAt(vec.Vec2{}))

	// Возвращаемся: правка восстановлена поверх генерации
	c := w.Ensure(0, 0)
	assert.Equal(t, block.Brick, c.Get(3, 100, 3),
		"правка игрока должна пережить выгрузку чанка")
}

func TestSaveAll(t *testing.T) {
	persist := newMemPersist()
	sampler := terrain.NewSampler(noise.NewField(78))
	builder := mesh.NewBuilder(mesh.NewAtlas())
	w := New(sampler, builder, persist, nil, DefaultOptions())

	w.Ensure(0, 0)
	require.True(t, w.PlaceBlock(2, 100, 2, block.Sandstone))
	require.NoError(t, w.SaveAll())

	saved, err := persist.LoadChunk(0, 0)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, block.Sandstone, saved[chunk.Index(2, 100, 2)])
}

func TestMeshRebuildAfterEdit(t *testing.T) {
	w := newTestWorld(21, Options{RenderDistance: 1, CreateBudget: 100, MeshBudget: 100})
	w.Preload(4, 4)

	before := len(w.MeshAt(vec.Vec2{}))
	require.Greater(t, before, 0)

	// Ставим блок высоко в воздухе: добавится 6 граней
	require.True(t, w.PlaceBlock(3, 120, 3, block.Brick))
	w.Update(4, 4)

	after := len(w.MeshAt(vec.Vec2{}))
	assert.Equal(t, before+6, after, "новый блок в воздухе даёт шесть граней")
}
