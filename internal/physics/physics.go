// Package physics реализует коллизии сущностей с блочным миром.
// Единственный алгоритм — заметание AABB по одной оси с отсечением
// по граням твёрдых блоков. Игрок, мобы и дроп используют один и тот же код.
package physics

import (
	"math"

	"github.com/annel0/blockforge/internal/vec"
)

// Epsilon — зазор до поверхности, предотвращающий дрожание и залипание
const Epsilon = 0.001

// SolidFunc отвечает, твёрд ли блок в мировых координатах.
// Передаётся колбэком, чтобы физика не зависела от пакета мира.
type SolidFunc func(wx, wy, wz int) bool

// Axis — ось заметания
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// AABB — выровненный по осям параллелепипед, Min строго не больше Max
type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// NewAABB строит AABB по центру основания, половинным размерам и высоте.
// Так задаются хитбоксы сущностей: позиция — это центр ступней.
func NewAABB(pos vec.Vec3Float, halfWidth, halfDepth, height float64) AABB {
	return AABB{
		MinX: pos.X - halfWidth, MaxX: pos.X + halfWidth,
		MinY: pos.Y, MaxY: pos.Y + height,
		MinZ: pos.Z - halfDepth, MaxZ: pos.Z + halfDepth,
	}
}

// BlockAABB возвращает AABB блока с целочисленными координатами (куб 1x1x1)
func BlockAABB(bx, by, bz int) AABB {
	return AABB{
		MinX: float64(bx), MinY: float64(by), MinZ: float64(bz),
		MaxX: float64(bx) + 1.0, MaxY: float64(by) + 1.0, MaxZ: float64(bz) + 1.0,
	}
}

// Intersects проверяет пересечение с другим AABB. Касание гранями
// пересечением не считается.
func (a AABB) Intersects(b AABB) bool {
	return !(a.MaxX <= b.MinX || a.MinX >= b.MaxX ||
		a.MaxY <= b.MinY || a.MinY >= b.MaxY ||
		a.MaxZ <= b.MinZ || a.MinZ >= b.MaxZ)
}

// Moved возвращает AABB, смещённый на (dx, dy, dz)
func (a AABB) Moved(dx, dy, dz float64) AABB {
	return AABB{
		MinX: a.MinX + dx, MinY: a.MinY + dy, MinZ: a.MinZ + dz,
		MaxX: a.MaxX + dx, MaxY: a.MaxY + dy, MaxZ: a.MaxZ + dz,
	}
}

// Contains проверяет, лежит ли точка внутри AABB
func (a AABB) Contains(p vec.Vec3Float) bool {
	return p.X >= a.MinX && p.X <= a.MaxX &&
		p.Y >= a.MinY && p.Y <= a.MaxY &&
		p.Z >= a.MinZ && p.Z <= a.MaxZ
}

// axisBounds возвращает границы AABB вдоль оси
func (a AABB) axisBounds(axis Axis) (lo, hi float64) {
	switch axis {
	case AxisX:
		return a.MinX, a.MaxX
	case AxisY:
		return a.MinY, a.MaxY
	default:
		return a.MinZ, a.MaxZ
	}
}

// SweepAxis заметает AABB вдоль одной оси на delta и отсекает смещение
// по граням твёрдых блоков. Возвращает разрешённое смещение и признак
// столкновения. Блок преграждает путь только если AABB пересекается с ним
// по двум другим осям.
func SweepAxis(a AABB, delta float64, axis Axis, solid SolidFunc) (allowed float64, hit bool) {
	if delta == 0.0 {
		return 0.0, false
	}

	// Границы заметённого объёма: по оси движения расширяем на delta,
	// по остальным берём текущий AABB
	var lo, hi [3]int
	for ax := AxisX; ax <= AxisZ; ax++ {
		bMin, bMax := a.axisBounds(ax)
		if ax == axis {
			if delta > 0.0 {
				bMax += delta
			} else {
				bMin += delta
			}
		}
		lo[ax] = int(math.Floor(bMin))
		hi[ax] = int(math.Floor(bMax)) + 1
	}

	aMin, aMax := a.axisBounds(axis)
	allowed = delta

	for bx := lo[AxisX]; bx <= hi[AxisX]; bx++ {
		for by := lo[AxisY]; by <= hi[AxisY]; by++ {
			for bz := lo[AxisZ]; bz <= hi[AxisZ]; bz++ {
				if !solid(bx, by, bz) {
					continue
				}
				blk := BlockAABB(bx, by, bz)

				// Без перекрытия по поперечным осям блок не мешает
				if !crossOverlap(a, blk, axis) {
					continue
				}

				bMin, bMax := blk.axisBounds(axis)
				if delta > 0.0 {
					if aMax <= bMin && aMax+delta > bMin {
						allowed = math.Min(allowed, bMin-aMax-Epsilon)
						hit = true
					}
				} else {
					if aMin >= bMax && aMin+delta < bMax {
						allowed = math.Max(allowed, bMax-aMin+Epsilon)
						hit = true
					}
				}
			}
		}
	}

	return allowed, hit
}

// crossOverlap проверяет перекрытие двух AABB по осям, перпендикулярным axis
func crossOverlap(a, b AABB, axis Axis) bool {
	for ax := AxisX; ax <= AxisZ; ax++ {
		if ax == axis {
			continue
		}
		aMin, aMax := a.axisBounds(ax)
		bMin, bMax := b.axisBounds(ax)
		if aMax <= bMin || aMin >= bMax {
			return false
		}
	}
	return true
}

// MoveResult — итог перемещения с коллизиями
type MoveResult struct {
	// Delta — фактически разрешённое смещение по осям
	Delta vec.Vec3Float
	// HitX/HitY/HitZ — было ли столкновение по соответствующей оси
	HitX, HitY, HitZ bool
}

// Move перемещает AABB на delta, разрешая коллизии отдельно по осям
// в порядке X, Y, Z. После каждой оси AABB пересчитывается, поэтому
// туннелирование сквозь углы исключено.
func Move(a AABB, delta vec.Vec3Float, solid SolidFunc) MoveResult {
	var res MoveResult

	res.Delta.X, res.HitX = SweepAxis(a, delta.X, AxisX, solid)
	a = a.Moved(res.Delta.X, 0, 0)

	res.Delta.Y, res.HitY = SweepAxis(a, delta.Y, AxisY, solid)
	a = a.Moved(0, res.Delta.Y, 0)

	res.Delta.Z, res.HitZ = SweepAxis(a, delta.Z, AxisZ, solid)

	return res
}
