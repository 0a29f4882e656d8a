// Package entity содержит сущности мира: игрока, мобов и выпавшие
// предметы. Все сущности двигаются через общий свип коллизий из пакета
// physics и взаимодействуют с миром через узкие колбэки.
package entity

import (
	"math"

	"github.com/annel0/blockforge/internal/physics"
	"github.com/annel0/blockforge/internal/vec"
)

// rayStep — шаг марша луча по блокам
const rayStep = 0.1

// RayHit — результат трассировки луча по блокам
type RayHit struct {
	// Block — первый твёрдый блок на пути луча
	Block vec.Vec3
	// Previous — последний пустой блок перед попаданием.
	// HasPrevious false, если луч стартовал вплотную к блоку.
	Previous    vec.Vec3
	HasPrevious bool
	// T — расстояние вдоль луча до шага, на котором найден блок
	T float64
}

// RaycastBlock марширует луч из origin в направлении dir (нормированном)
// с шагом 0.1 до maxDist и возвращает первый твёрдый блок.
// Возвращает nil, если твёрдых блоков на пути нет.
func RaycastBlock(origin, dir vec.Vec3Float, maxDist float64, solid physics.SolidFunc) *RayHit {
	steps := int(maxDist / rayStep)

	var prev vec.Vec3
	hasPrev := false

	for i := 0; i < steps; i++ {
		t := float64(i) * rayStep
		bx := int(math.Floor(origin.X + dir.X*t))
		by := int(math.Floor(origin.Y + dir.Y*t))
		bz := int(math.Floor(origin.Z + dir.Z*t))

		cur := vec.Vec3{X: bx, Y: by, Z: bz}
		if solid(bx, by, bz) {
			return &RayHit{Block: cur, Previous: prev, HasPrevious: hasPrev, T: t}
		}
		prev = cur
		hasPrev = true
	}
	return nil
}

// RayAABB проверяет пересечение луча с AABB методом слэбов.
// Возвращает параметр t ближайшей точки входа и признак попадания.
func RayAABB(origin, dir vec.Vec3Float, box physics.AABB) (float64, bool) {
	const eps = 1e-8

	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	axes := [3]struct {
		o, d, lo, hi float64
	}{
		{origin.X, dir.X, box.MinX, box.MaxX},
		{origin.Y, dir.Y, box.MinY, box.MaxY},
		{origin.Z, dir.Z, box.MinZ, box.MaxZ},
	}

	for _, ax := range axes {
		if math.Abs(ax.d) > eps {
			t1 := (ax.lo - ax.o) / ax.d
			t2 := (ax.hi - ax.o) / ax.d
			tMin = math.Max(tMin, math.Min(t1, t2))
			tMax = math.Min(tMax, math.Max(t1, t2))
		} else if ax.o < ax.lo || ax.o > ax.hi {
			return 0, false
		}
	}

	if tMax < tMin || tMax < 0 {
		return 0, false
	}
	if tMin >= 0 {
		return tMin, true
	}
	return tMax, true
}
