// Package world управляет жизненным циклом чанков: генерацией, стримингом
// вокруг игрока, мешированием в рамках бюджетов кадра и изменением блоков.
package world

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/chunk"
	"github.com/annel0/blockforge/internal/logging"
	"github.com/annel0/blockforge/internal/mesh"
	"github.com/annel0/blockforge/internal/metrics"
	"github.com/annel0/blockforge/internal/terrain"
	"github.com/annel0/blockforge/internal/vec"
)

// Persistence сохраняет и загружает содержимое чанков. Реализации живут
// в пакете storage; nil-хранилище означает мир без сохранений.
type Persistence interface {
	// LoadChunk возвращает сохранённые блоки чанка или nil, если чанк
	// никогда не сохранялся
	LoadChunk(cx, cz int) (*[chunk.Volume]block.ID, error)
	// SaveChunk записывает полное содержимое чанка
	SaveChunk(cx, cz int, blocks *[chunk.Volume]block.ID) error
}

// Options — настройки стриминга
type Options struct {
	// RenderDistance — радиус кольца загрузки в чанках
	RenderDistance int
	// CreateBudget — максимум генераций чанков за один тик
	CreateBudget int
	// MeshBudget — максимум перестроек мешей за один тик
	MeshBudget int
}

// DefaultOptions повторяют настройки эталонного клиента
func DefaultOptions() Options {
	return Options{RenderDistance: 4, CreateBudget: 1, MeshBudget: 1}
}

// World хранит загруженные чанки и их меши
type World struct {
	sampler *terrain.Sampler
	builder *mesh.Builder
	persist Persistence
	metrics *metrics.Metrics
	opts    Options

	mu       sync.RWMutex
	chunks   map[vec.Vec2]*chunk.Chunk
	meshes   map[vec.Vec2][]mesh.Face
	modified map[vec.Vec2]bool
}

// New создаёт мир. persist и mts могут быть nil.
func New(sampler *terrain.Sampler, builder *mesh.Builder, persist Persistence, mts *metrics.Metrics, opts Options) *World {
	if opts.RenderDistance <= 0 {
		opts = DefaultOptions()
	}
	return &World{
		sampler:  sampler,
		builder:  builder,
		persist:  persist,
		metrics:  mts,
		opts:     opts,
		chunks:   make(map[vec.Vec2]*chunk.Chunk),
		meshes:   make(map[vec.Vec2][]mesh.Face),
		modified: make(map[vec.Vec2]bool),
	}
}

// SurfaceHeight возвращает аналитическую высоту поверхности столбца.
// Пещеры и правки игрока не учитываются: используется для респауна и
// выбора точек спавна мобов.
func (w *World) SurfaceHeight(wx, wz int) int {
	return w.sampler.ColumnHeight(wx, wz)
}

// Sampler возвращает сэмплер ландшафта мира
func (w *World) Sampler() *terrain.Sampler {
	return w.sampler
}

// ChunkCount возвращает количество загруженных чанков
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// ChunkAt возвращает загруженный чанк или nil
func (w *World) ChunkAt(coords vec.Vec2) *chunk.Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.chunks[coords]
}

// MeshAt возвращает последний построенный меш чанка
func (w *World) MeshAt(coords vec.Vec2) []mesh.Face {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.meshes[coords]
}

// IsSolid сообщает, твёрд ли блок в мировых координатах. Ниже мира — бедрок,
// выше — воздух. Незагруженный чанк считается воздухом и НЕ генерируется:
// иначе окклюзия скрыла бы грани деревьев, перешагнувших границу чанка.
func (w *World) IsSolid(wx, wy, wz int) bool {
	if wy < 0 {
		return true
	}
	if wy >= chunk.SizeY {
		return false
	}

	coords := chunk.WorldToChunk(wx, wz)

	w.mu.RLock()
	c := w.chunks[coords]
	w.mu.RUnlock()

	if c == nil {
		return false
	}
	lx, lz := chunk.Local(wx, wz)
	return c.Get(lx, wy, lz).IsSolid()
}

// Block возвращает блок в мировых координатах. Для незагруженных чанков
// отвечает аналитическая функция ландшафта (без пещер и руд) — этого
// достаточно для запросов вроде точки респауна.
func (w *World) Block(wx, wy, wz int) block.ID {
	if wy <= 0 {
		return block.Bedrock
	}
	if wy >= chunk.SizeY {
		return block.Air
	}

	coords := chunk.WorldToChunk(wx, wz)

	w.mu.RLock()
	c := w.chunks[coords]
	w.mu.RUnlock()

	if c != nil {
		lx, lz := chunk.Local(wx, wz)
		return c.Get(lx, wy, lz)
	}

	h := w.sampler.ColumnHeight(wx, wz)
	switch {
	case wy > h:
		return block.Air
	case wy == h:
		return block.Grass
	case wy >= h-3:
		return block.Dirt
	default:
		return block.Stone
	}
}

// Ensure возвращает чанк, генерируя его при необходимости
func (w *World) Ensure(cx, cz int) *chunk.Chunk {
	coords := vec.Vec2{X: cx, Z: cz}

	w.mu.RLock()
	c := w.chunks[coords]
	w.mu.RUnlock()
	if c != nil {
		return c
	}

	c = w.generateChunk(cx, cz)

	w.mu.Lock()
	// Кто-то мог успеть раньше
	if existing := w.chunks[coords]; existing != nil {
		w.mu.Unlock()
		return existing
	}
	w.chunks[coords] = c
	w.mu.Unlock()

	w.metrics.ChunkCreated()
	logging.LogChunkCreated(cx, cz)
	return c
}

// RemoveBlock выкапывает блок. Отказывает на уровне бедрока, за пределами
// высоты мира, в незагруженном чанке и если блок уже воздух.
func (w *World) RemoveBlock(wx, wy, wz int) bool {
	if wy <= 0 || wy >= chunk.SizeY {
		return false
	}

	coords := chunk.WorldToChunk(wx, wz)

	w.mu.Lock()
	defer w.mu.Unlock()

	c := w.chunks[coords]
	if c == nil {
		return false
	}

	lx, lz := chunk.Local(wx, wz)
	if c.Get(lx, wy, lz) == block.Air {
		return false
	}

	c.Set(lx, wy, lz, block.Air)
	c.Dirty = true
	w.modified[coords] = true
	w.markNeighborsDirty(lx, lz, coords)

	w.metrics.BlockModified("remove")
	return true
}

// PlaceBlock ставит блок. Отказывает за пределами высоты и в занятой позиции.
// Незагруженный чанк догенерируется: постановка далеко от игрока допустима.
func (w *World) PlaceBlock(wx, wy, wz int, id block.ID) bool {
	if wy <= 0 || wy >= chunk.SizeY {
		return false
	}

	coords := chunk.WorldToChunk(wx, wz)
	c := w.Ensure(coords.X, coords.Z)

	w.mu.Lock()
	defer w.mu.Unlock()

	lx, lz := chunk.Local(wx, wz)
	if c.Get(lx, wy, lz) != block.Air {
		return false
	}

	c.Set(lx, wy, lz, id)
	c.Dirty = true
	w.modified[coords] = true
	w.markNeighborsDirty(lx, lz, coords)

	w.metrics.BlockModified("place")
	return true
}

// markNeighborsDirty помечает соседние чанки на перестройку меша, когда
// изменённый блок лежит на границе. Вызывается под мьютексом.
func (w *World) markNeighborsDirty(lx, lz int, coords vec.Vec2) {
	if lx == 0 {
		if n := w.chunks[vec.Vec2{X: coords.X - 1, Z: coords.Z}]; n != nil {
			n.Dirty = true
		}
	} else if lx == chunk.SizeX-1 {
		if n := w.chunks[vec.Vec2{X: coords.X + 1, Z: coords.Z}]; n != nil {
			n.Dirty = true
		}
	}

	if lz == 0 {
		if n := w.chunks[vec.Vec2{X: coords.X, Z: coords.Z - 1}]; n != nil {
			n.Dirty = true
		}
	} else if lz == chunk.SizeZ-1 {
		if n := w.chunks[vec.Vec2{X: coords.X, Z: coords.Z + 1}]; n != nil {
			n.Dirty = true
		}
	}
}

// spiralCoords возвращает координаты чанков кольца в порядке от центра
// наружу: ближние чанки создаются и мешируются первыми.
func spiralCoords(center vec.Vec2, radius int) []vec.Vec2 {
	coords := []vec.Vec2{center}
	seen := map[vec.Vec2]bool{center: true}

	for r := 1; r <= radius; r++ {
		// Верхняя и нижняя строки кольца
		for dx := -r; dx <= r; dx++ {
			for _, dz := range [2]int{-r, r} {
				cc := vec.Vec2{X: center.X + dx, Z: center.Z + dz}
				if !seen[cc] {
					seen[cc] = true
					coords = append(coords, cc)
				}
			}
		}
		// Левая и правая колонки без углов
		for dz := -r + 1; dz <= r-1; dz++ {
			for _, dx := range [2]int{-r, r} {
				cc := vec.Vec2{X: center.X + dx, Z: center.Z + dz}
				if !seen[cc] {
					seen[cc] = true
					coords = append(coords, cc)
				}
			}
		}
	}
	return coords
}

// Update выполняет один шаг стриминга вокруг позиции игрока: выгружает
// чанки за кольцом, создаёт и меширует недостающие в рамках бюджетов.
func (w *World) Update(px, pz float64) {
	center := chunk.WorldToChunk(floorInt(px), floorInt(pz))
	desired := spiralCoords(center, w.opts.RenderDistance)

	desiredSet := make(map[vec.Vec2]bool, len(desired))
	for _, cc := range desired {
		desiredSet[cc] = true
	}

	// Выгрузка чанков за пределами кольца, изменённые сохраняются
	w.mu.Lock()
	var unloaded []vec.Vec2
	for coords, c := range w.chunks {
		if desiredSet[coords] {
			continue
		}
		if w.modified[coords] && w.persist != nil {
			if err := w.persist.SaveChunk(coords.X, coords.Z, &c.Blocks); err != nil {
				logging.LogError("Ошибка сохранения чанка (%d,%d): %v", coords.X, coords.Z, err)
			}
		}
		delete(w.chunks, coords)
		delete(w.meshes, coords)
		delete(w.modified, coords)
		unloaded = append(unloaded, coords)
	}
	w.mu.Unlock()

	for _, coords := range unloaded {
		w.metrics.ChunkUnloaded()
		logging.LogChunkUnloaded(coords.X, coords.Z)
	}

	// Генерация недостающих чанков, ближние первыми
	createsLeft := w.opts.CreateBudget
	for _, coords := range desired {
		if createsLeft <= 0 {
			break
		}
		if w.ChunkAt(coords) != nil {
			continue
		}
		w.Ensure(coords.X, coords.Z)
		createsLeft--
	}

	// Перестройка мешей устаревших чанков
	meshesLeft := w.opts.MeshBudget
	for _, coords := range desired {
		if meshesLeft <= 0 {
			break
		}
		if w.buildMeshFor(coords) {
			meshesLeft--
		}
	}
}

// Preload синхронно загружает всё кольцо вокруг точки. Генерация чанков
// распараллелена: чанки независимы, их порядок не влияет на результат.
// Меширование выполняется строго после — окклюзия на границах требует,
// чтобы соседи уже существовали.
func (w *World) Preload(px, pz float64) (created, meshed int) {
	center := chunk.WorldToChunk(floorInt(px), floorInt(pz))
	desired := spiralCoords(center, w.opts.RenderDistance)

	var g errgroup.Group
	var createdCount sync.Map

	for _, coords := range desired {
		if w.ChunkAt(coords) != nil {
			continue
		}
		cc := coords
		g.Go(func() error {
			w.Ensure(cc.X, cc.Z)
			createdCount.Store(cc, true)
			return nil
		})
	}
	// Генерация не возвращает ошибок, Wait нужен только как барьер
	_ = g.Wait()

	createdCount.Range(func(_, _ any) bool {
		created++
		return true
	})

	for _, coords := range desired {
		if w.buildMeshFor(coords) {
			meshed++
		}
	}
	return created, meshed
}

// buildMeshFor перестраивает меш чанка, если тот устарел.
// Возвращает true при фактической перестройке (расход бюджета).
func (w *World) buildMeshFor(coords vec.Vec2) bool {
	w.mu.RLock()
	c := w.chunks[coords]
	_, hasMesh := w.meshes[coords]
	w.mu.RUnlock()

	if c == nil {
		return false
	}
	if !c.Dirty && hasMesh {
		return false
	}

	faces := w.builder.BuildMesh(c, w.IsSolid, w.jungleAt)

	w.mu.Lock()
	w.meshes[coords] = faces
	c.Dirty = false
	w.mu.Unlock()

	w.metrics.ChunkMeshed()
	logging.LogChunkMeshed(coords.X, coords.Z, len(faces))
	return true
}

// jungleAt — колбэк тонирования травы для мешера
func (w *World) jungleAt(wx, wz int) bool {
	return w.sampler.Biome(wx, wz) == terrain.BiomeJungle
}

// SaveAll сохраняет все изменённые чанки
func (w *World) SaveAll() error {
	if w.persist == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for coords := range w.modified {
		c := w.chunks[coords]
		if c == nil {
			continue
		}
		if err := w.persist.SaveChunk(coords.X, coords.Z, &c.Blocks); err != nil {
			return err
		}
		delete(w.modified, coords)
	}
	return nil
}

func floorInt(v float64) int {
	i := int(v)
	if v < float64(i) {
		return i - 1
	}
	return i
}
