package terrain

import (
	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/vec"
)

// Placement — один блок растительности в мировых координатах.
// Дерево может перешагнуть границу чанка, поэтому генератор возвращает
// мировые координаты, а чанк забирает только свою часть.
type Placement struct {
	Pos vec.Vec3
	ID  block.ID
}

// TreeKind — порода дерева для равнин
type TreeKind uint8

const (
	TreeOak TreeKind = iota
	TreeBirch
)

// ShouldPlaceTree решает, растёт ли дерево в точке (wx, wz).
// Деревья привязаны к сетке (10 блоков на равнинах, 4 в джунглях),
// внутри сетки выбор делает шум. В пустыне деревьев нет.
func (s *Sampler) ShouldPlaceTree(wx, wz int) bool {
	biome := s.Biome(wx, wz)
	if biome == BiomeDesert {
		return false
	}

	x := float64(wx)
	z := float64(wz)

	if biome == BiomeJungle {
		if mod(wx, 4) != 0 || mod(wz, 4) != 0 {
			return false
		}
		treeNoise := s.noise.Noise2(x*0.03, z*0.03)
		densityNoise := s.noise.Noise2(x*0.015, z*0.015)
		return treeNoise > 0.0 && densityNoise > -0.2
	}

	if mod(wx, 10) != 0 || mod(wz, 10) != 0 {
		return false
	}

	treeNoise := s.noise.Noise2(x*0.03, z*0.03)
	densityNoise := s.noise.Noise2(x*0.015, z*0.015)

	// На крутом рельефе деревья не ставим
	terrainNoise := s.noise.Noise2(x*hillFreq, z*hillFreq)
	flatness := 1.0 - abs(terrainNoise)*0.5

	return treeNoise > 0.4 && densityNoise > 0.2 && flatness > 0.6
}

// TreeType выбирает породу дерева для равнин. Берёзы растут рощами,
// поэтому шум низкочастотный.
func (s *Sampler) TreeType(wx, wz int) TreeKind {
	if s.noise.Noise2(float64(wx)*0.05, float64(wz)*0.05) > 0.2 {
		return TreeBirch
	}
	return TreeOak
}

// GenerateTree строит дуб: ствол 4-5 блоков и негустая крона с просветами
func (s *Sampler) GenerateTree(wx, wy, wz int) []Placement {
	var blocks []Placement

	heightNoise := s.noise.Noise2(float64(wx)*0.1, float64(wz)*0.1)
	trunkHeight := 4 + int((heightNoise+1.0)*0.5)

	for dy := 0; dy < trunkHeight; dy++ {
		blocks = append(blocks, Placement{vec.Vec3{X: wx, Y: wy + dy, Z: wz}, block.Wood})
	}

	leafCenterY := wy + trunkHeight - 1

	// Верхушка: маленькая шапка с прореживанием
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			lx := wx + dx
			lz := wz + dz
			if s.noise.Noise2(float64(lx)*0.3, float64(lz)*0.3) < 0.0 {
				continue
			}
			blocks = append(blocks, Placement{vec.Vec3{X: lx, Y: leafCenterY + 1, Z: lz}, block.Leaves})
		}
	}

	// Основной слой 3x3 с шансом пропуска углов
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			lx := wx + dx
			lz := wz + dz
			if dx != 0 && dz != 0 {
				if s.noise.Noise2(float64(lx)*0.4, float64(lz)*0.4) < 0.3 {
					continue
				}
			}
			blocks = append(blocks, Placement{vec.Vec3{X: lx, Y: leafCenterY, Z: lz}, block.Leaves})
		}
	}

	// Нижний слой: только крест
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if absInt(dx)+absInt(dz) != 1 {
				continue
			}
			blocks = append(blocks, Placement{vec.Vec3{X: wx + dx, Y: leafCenterY - 1, Z: wz + dz}, block.Leaves})
		}
	}

	return blocks
}

// GenerateJungleTree строит высокое дерево джунглей с широкой плоской кроной
func (s *Sampler) GenerateJungleTree(wx, wy, wz int) []Placement {
	var blocks []Placement

	heightNoise := s.noise.Noise2(float64(wx)*0.1, float64(wz)*0.1)
	trunkHeight := 8 + int((heightNoise+1.0)*2.0)

	for dy := 0; dy < trunkHeight; dy++ {
		blocks = append(blocks, Placement{vec.Vec3{X: wx, Y: wy + dy, Z: wz}, block.JungleLog})
	}

	leafYStart := wy + trunkHeight - 3
	for dy := 0; dy < 4; dy++ {
		y := leafYStart + dy
		radius := 3
		if dy >= 2 {
			radius = 2
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if dx*dx+dz*dz > radius*radius+1 {
					continue
				}
				if dx == 0 && dz == 0 && y < wy+trunkHeight {
					continue
				}
				blocks = append(blocks, Placement{vec.Vec3{X: wx + dx, Y: y, Z: wz + dz}, block.JungleLeaves})
			}
		}
	}

	return blocks
}

// GenerateBirchTree строит берёзу: выше и прямее дуба, крона круглее
func (s *Sampler) GenerateBirchTree(wx, wy, wz int) []Placement {
	var blocks []Placement

	heightNoise := s.noise.Noise2(float64(wx)*0.1, float64(wz)*0.1)
	trunkHeight := 5 + int((heightNoise+1.0)*0.5)

	for dy := 0; dy < trunkHeight; dy++ {
		blocks = append(blocks, Placement{vec.Vec3{X: wx, Y: wy + dy, Z: wz}, block.BirchLog})
	}

	leafCenterY := wy + trunkHeight - 1

	// Верхушка крестом
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if absInt(dx)+absInt(dz) != 1 {
				continue
			}
			blocks = append(blocks, Placement{vec.Vec3{X: wx + dx, Y: leafCenterY + 1, Z: wz + dz}, block.BirchLeaves})
		}
	}

	// Средний слой: округлый диск радиуса ~2
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			if dx*dx+dz*dz > 5 || (dx == 0 && dz == 0) {
				continue
			}
			blocks = append(blocks, Placement{vec.Vec3{X: wx + dx, Y: leafCenterY, Z: wz + dz}, block.BirchLeaves})
		}
	}

	// Нижний слой той же формы, но разреженный
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			if dx*dx+dz*dz > 5 || (dx == 0 && dz == 0) {
				continue
			}
			if s.noise.Noise2(float64(wx+dx)*0.5, float64(wz+dz)*0.5) > -0.4 {
				blocks = append(blocks, Placement{vec.Vec3{X: wx + dx, Y: leafCenterY - 1, Z: wz + dz}, block.BirchLeaves})
			}
		}
	}

	return blocks
}

// ShouldPlaceCactus решает, растёт ли кактус в точке: только в пустыне,
// по сетке 5 блоков, выбор внутри сетки — шумом
func (s *Sampler) ShouldPlaceCactus(wx, wz int) bool {
	if s.Biome(wx, wz) != BiomeDesert {
		return false
	}
	if mod(wx, 5) != 0 || mod(wz, 5) != 0 {
		return false
	}

	cactusNoise := s.noise.Noise2(float64(wx)*0.04, float64(wz)*0.04)
	densityNoise := s.noise.Noise2(float64(wx)*0.02, float64(wz)*0.02)
	return cactusNoise > 0.3 && densityNoise > 0.1
}

// GenerateCactus строит вертикальный кактус высотой 1-4 блока
func (s *Sampler) GenerateCactus(wx, wy, wz int) []Placement {
	heightNoise := s.noise.Noise2(float64(wx)*0.15, float64(wz)*0.15)
	height := 1 + int((heightNoise+1.0)*1.5)

	blocks := make([]Placement, 0, height)
	for dy := 0; dy < height; dy++ {
		blocks = append(blocks, Placement{vec.Vec3{X: wx, Y: wy + dy, Z: wz}, block.Cactus})
	}
	return blocks
}

// mod — математический остаток, неотрицательный и для отрицательных координат
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
