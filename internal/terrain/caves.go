package terrain

import (
	"math"
	"math/rand"

	"github.com/annel0/blockforge/internal/chunk"
	"github.com/annel0/blockforge/internal/vec"
)

// Параметры пещер-червей
const (
	wormChance    = 0.15
	wormMinLength = 25
	wormMaxLength = 60
	wormMinRadius = 2.0
	wormMaxRadius = 4.5
	wormMinStartY = 10
	wormMaxStartY = 50

	// Червь длиной до 60 блоков может дотянуться до чанка
	// из соседа на расстоянии до трёх чанков
	wormNeighborRadius = 3
)

// worm — один туннель пещеры, начинающийся в конкретном чанке
type worm struct {
	x, y, z    float64
	yaw, pitch float64
	length     int
	radius     float64
	pathSeed   int
}

// chunkWorms детерминированно порождает червей, начинающихся в чанке (cx, cz).
// Сид выводится из координат, поэтому любой сосед получит тот же список.
func (s *Sampler) chunkWorms(cx, cz int) []worm {
	seed := (int64(cx)*3418731287 + int64(cz)*132897987543) & 0xFFFFFFFF
	rng := rand.New(rand.NewSource(seed))

	// В среднем червь стартует лишь в каждом седьмом чанке
	if rng.Float64() >= wormChance {
		return nil
	}

	return []worm{{
		x:        float64(cx*chunk.SizeX + rng.Intn(chunk.SizeX)),
		z:        float64(cz*chunk.SizeZ + rng.Intn(chunk.SizeZ)),
		y:        float64(wormMinStartY + rng.Intn(wormMaxStartY-wormMinStartY+1)),
		yaw:      rng.Float64() * 6.28,
		pitch:    rng.Float64()*2.0 - 1.0,
		length:   wormMinLength + rng.Intn(wormMaxLength-wormMinLength+1),
		radius:   wormMinRadius + rng.Float64()*(wormMaxRadius-wormMinRadius),
		pathSeed: rng.Intn(1000000),
	}}
}

// CarveCaves возвращает множество локальных координат блоков чанка (cx, cz),
// вырезанных пещерами. Симулируются черви самого чанка и всех соседей в
// радиусе трёх чанков: туннель из соседа свободно пересекает границы.
func (s *Sampler) CarveCaves(cx, cz int) map[vec.Vec3]struct{} {
	carved := make(map[vec.Vec3]struct{})

	minWX := cx * chunk.SizeX
	maxWX := minWX + chunk.SizeX
	minWZ := cz * chunk.SizeZ
	maxWZ := minWZ + chunk.SizeZ

	for ncx := cx - wormNeighborRadius; ncx <= cx+wormNeighborRadius; ncx++ {
		for ncz := cz - wormNeighborRadius; ncz <= cz+wormNeighborRadius; ncz++ {
			for _, w := range s.chunkWorms(ncx, ncz) {
				s.carveWorm(w, minWX, maxWX, minWZ, maxWZ, carved)
			}
		}
	}

	return carved
}

// carveWorm прогоняет одного червя и добавляет в carved блоки, попавшие
// в чанк с границами [minWX, maxWX) x [minWZ, maxWZ).
func (s *Sampler) carveWorm(w worm, minWX, maxWX, minWZ, maxWZ int, carved map[vec.Vec3]struct{}) {
	// Грубая отсечка: червь слишком далеко, чтобы дотянуться до чанка
	centerX := float64(minWX + chunk.SizeX)
	centerZ := float64(minWZ + chunk.SizeZ)
	if math.Abs(w.x-centerX)+math.Abs(w.z-centerZ) > float64(w.length)+20 {
		return
	}

	x, y, z := w.x, w.y, w.z
	yaw, pitch := w.yaw, w.pitch
	rSq := w.radius * w.radius

	for step := 0; step < w.length; step++ {
		// Сфера в текущей позиции
		sMinX := int(x - w.radius)
		sMaxX := int(x + w.radius + 1)
		sMinZ := int(z - w.radius)
		sMaxZ := int(z + w.radius + 1)
		sMinY := int(y - w.radius)
		sMaxY := int(y + w.radius + 1)

		if sMaxX >= minWX && sMinX < maxWX && sMaxZ >= minWZ && sMinZ < maxWZ {
			iterMinX := max(sMinX, minWX)
			iterMaxX := min(sMaxX, maxWX)
			iterMinZ := max(sMinZ, minWZ)
			iterMaxZ := min(sMaxZ, maxWZ)
			// Бедрок и верхний слой не вырезаются
			iterMinY := max(sMinY, 1)
			iterMaxY := min(sMaxY, chunk.SizeY-1)

			for bx := iterMinX; bx < iterMaxX; bx++ {
				for bz := iterMinZ; bz < iterMaxZ; bz++ {
					for by := iterMinY; by < iterMaxY; by++ {
						dx := float64(bx) - x
						dy := float64(by) - y
						dz := float64(bz) - z
						if dx*dx+dy*dy+dz*dz < rSq {
							carved[vec.Vec3{X: bx - minWX, Y: by, Z: bz - minWZ}] = struct{}{}
						}
					}
				}
			}
		}

		// Направление плавно меняется шумом вдоль пути
		const noiseScale = 0.1
		yaw += s.noise.Noise2(float64(step)*noiseScale, float64(w.pathSeed)*0.01) * 0.4
		pitch += s.noise.Noise2(float64(step)*noiseScale, float64(w.pathSeed)*0.01+100) * 0.4
		pitch = math.Max(-1.0, math.Min(1.0, pitch))

		x += math.Cos(yaw) * math.Cos(pitch)
		y += math.Sin(pitch)
		z += math.Sin(yaw) * math.Cos(pitch)
	}
}
