package world

import (
	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/chunk"
	"github.com/annel0/blockforge/internal/logging"
	"github.com/annel0/blockforge/internal/terrain"
	"github.com/annel0/blockforge/internal/vec"
)

// Шансы руд по детерминированному хэшу позиции
const (
	diamondChance = 0.001
	goldChance    = 0.003
	ironChance    = 0.01
	coalChance    = 0.02

	diamondMaxY = 16
	goldMaxY    = 32
	ironMaxY    = 64
)

// generateChunk полностью заполняет новый чанк: слои породы по биому,
// пещеры, руды, деревья и кактусы, затем сохранённые правки игрока.
func (w *World) generateChunk(cx, cz int) *chunk.Chunk {
	c := chunk.New(cx, cz)
	wx0, wz0 := c.Origin()

	// Высоты и биомы столбцов считаются один раз на чанк
	var heights [chunk.SizeZ][chunk.SizeX]int
	var biomes [chunk.SizeZ][chunk.SizeX]terrain.Biome
	for lz := 0; lz < chunk.SizeZ; lz++ {
		for lx := 0; lx < chunk.SizeX; lx++ {
			wx := wx0 + lx
			wz := wz0 + lz
			b := w.sampler.Biome(wx, wz)
			weight := w.sampler.BlendWeight(wx, wz)
			heights[lz][lx] = w.sampler.ColumnHeightFor(wx, wz, b, weight)
			biomes[lz][lx] = b
		}
	}

	carved := w.sampler.CarveCaves(cx, cz)

	for lz := 0; lz < chunk.SizeZ; lz++ {
		for lx := 0; lx < chunk.SizeX; lx++ {
			th := heights[lz][lx]
			biome := biomes[lz][lx]

			maxY := th
			if maxY > chunk.SizeY-1 {
				maxY = chunk.SizeY - 1
			}

			for y := 0; y <= maxY; y++ {
				var id block.ID
				switch {
				case y == 0:
					id = block.Bedrock
				case biome == terrain.BiomeDesert:
					// Пустыня: песок, песчаник, камень
					switch {
					case y == th:
						id = block.Sand
					case y >= th-4:
						id = block.Sandstone
					default:
						id = block.Stone
					}
				default:
					// Равнины и джунгли: трава, земля, камень
					switch {
					case y == th:
						id = block.Grass
					case y >= th-3:
						id = block.Dirt
					default:
						id = block.Stone
					}
				}

				// Пещеры не трогают бедрок
				if id != block.Bedrock {
					if _, ok := carved[vec.Vec3{X: lx, Y: y, Z: lz}]; ok {
						id = block.Air
					}
				}

				// Руды замещают только камень
				if id == block.Stone {
					id = oreAt(wx0+lx, y, wz0+lz)
				}

				c.Set(lx, y, lz, id)
			}
		}
	}

	w.placeTrees(c, &heights)
	w.placeCacti(c, &heights)
	w.cleanupCacti(c)

	// Сохранённые правки игрока перекрывают генерацию целиком
	if w.persist != nil {
		saved, err := w.persist.LoadChunk(cx, cz)
		if err != nil {
			logging.LogError("Ошибка загрузки чанка (%d,%d): %v", cx, cz, err)
		} else if saved != nil {
			c.Blocks = *saved
		}
	}

	c.Dirty = true
	return c
}

// oreAt выбирает руду по детерминированному хэшу мировой позиции.
// Редкие руды проверяются первыми и ограничены глубиной.
func oreAt(wx, y, wz int) block.ID {
	h := (int64(wx)*374761393 + int64(y)*668265263 + int64(wz)*3266489917) & 0xFFFFFFFF
	v := float64(h) / 4294967295.0

	switch {
	case v < diamondChance && y < diamondMaxY:
		return block.DiamondOre
	case v < goldChance && y < goldMaxY:
		return block.GoldOre
	case v < ironChance && y < ironMaxY:
		return block.IronOre
	case v < coalChance:
		return block.CoalOre
	default:
		return block.Stone
	}
}

// placeTrees ставит деревья на траву. Дерево генерируется в мировых
// координатах целиком, но в чанк попадают только его блоки: сосед,
// сгенерировавшись, дорисует свою часть той же детерминированной кроны.
func (w *World) placeTrees(c *chunk.Chunk, heights *[chunk.SizeZ][chunk.SizeX]int) {
	wx0, wz0 := c.Origin()

	for lz := 0; lz < chunk.SizeZ; lz++ {
		for lx := 0; lx < chunk.SizeX; lx++ {
			wx := wx0 + lx
			wz := wz0 + lz
			th := heights[lz][lx]

			if !w.sampler.ShouldPlaceTree(wx, wz) {
				continue
			}
			// Пещера могла срезать поверхность
			if c.Get(lx, th, lz) != block.Grass {
				continue
			}

			var placements []terrain.Placement
			if w.sampler.Biome(wx, wz) == terrain.BiomeJungle {
				placements = w.sampler.GenerateJungleTree(wx, th+1, wz)
			} else if w.sampler.TreeType(wx, wz) == terrain.TreeBirch {
				placements = w.sampler.GenerateBirchTree(wx, th+1, wz)
			} else {
				placements = w.sampler.GenerateTree(wx, th+1, wz)
			}

			w.clipInto(c, placements)
		}
	}
}

// placeCacti ставит кактусы на песок пустыни
func (w *World) placeCacti(c *chunk.Chunk, heights *[chunk.SizeZ][chunk.SizeX]int) {
	wx0, wz0 := c.Origin()

	for lz := 0; lz < chunk.SizeZ; lz++ {
		for lx := 0; lx < chunk.SizeX; lx++ {
			wx := wx0 + lx
			wz := wz0 + lz

			if !w.sampler.ShouldPlaceCactus(wx, wz) {
				continue
			}
			w.clipInto(c, w.sampler.GenerateCactus(wx, heights[lz][lx]+1, wz))
		}
	}
}

// clipInto записывает в чанк только блоки, попавшие в его границы
func (w *World) clipInto(c *chunk.Chunk, placements []terrain.Placement) {
	wx0, wz0 := c.Origin()
	for _, p := range placements {
		lx := p.Pos.X - wx0
		lz := p.Pos.Z - wz0
		if lx < 0 || lx >= chunk.SizeX || lz < 0 || lz >= chunk.SizeZ ||
			p.Pos.Y < 0 || p.Pos.Y >= chunk.SizeY {
			continue
		}
		c.Set(lx, p.Pos.Y, lz, p.ID)
	}
}

// cleanupCacti убирает кактусы, соприкасающиеся с другими кактусами
// по горизонтали (включая диагонали). Удаляется весь столб.
func (w *World) cleanupCacti(c *chunk.Chunk) {
	for y := 0; y < chunk.SizeY; y++ {
		for lz := 0; lz < chunk.SizeZ; lz++ {
			for lx := 0; lx < chunk.SizeX; lx++ {
				if c.Get(lx, y, lz) != block.Cactus {
					continue
				}
				if !cactusTouchingAnother(c, lx, y, lz) {
					continue
				}

				c.Set(lx, y, lz, block.Air)
				for ry := y + 1; ry < chunk.SizeY; ry++ {
					if c.Get(lx, ry, lz) != block.Cactus {
						break
					}
					c.Set(lx, ry, lz, block.Air)
				}
			}
		}
	}
}

// cactusTouchingAnother проверяет 8 соседей по горизонтали внутри чанка
func cactusTouchingAnother(c *chunk.Chunk, lx, y, lz int) bool {
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dz == 0 {
				continue
			}
			nx := lx + dx
			nz := lz + dz
			if nx < 0 || nx >= chunk.SizeX || nz < 0 || nz >= chunk.SizeZ {
				continue
			}
			if c.Get(nx, y, nz) == block.Cactus {
				return true
			}
		}
	}
	return false
}
