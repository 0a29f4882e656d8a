package vec

import "math"

// Vec3Float представляет позицию или скорость в мировых координатах.
// Субблоковая точность нужна для плавного движения сущностей.
type Vec3Float struct {
	X, Y, Z float64
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub вычитает вектор
func (v Vec3Float) Sub(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mul умножает вектор на скаляр
func (v Vec3Float) Mul(scalar float64) Vec3Float {
	return Vec3Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Length возвращает длину вектора
func (v Vec3Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized возвращает нормализованный вектор
func (v Vec3Float) Normalized() Vec3Float {
	length := v.Length()
	if length == 0 {
		return Vec3Float{}
	}
	return Vec3Float{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}

// Dot возвращает скалярное произведение
func (v Vec3Float) Dot(other Vec3Float) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec3Float) DistanceTo(other Vec3Float) float64 {
	return v.Sub(other).Length()
}

// PlanarDistanceSqTo вычисляет квадрат расстояния в плоскости XZ.
// Вертикальная составляющая игнорируется: ИИ мобов оценивает дистанцию
// до игрока именно по горизонтали.
func (v Vec3Float) PlanarDistanceSqTo(other Vec3Float) float64 {
	dx := v.X - other.X
	dz := v.Z - other.Z
	return dx*dx + dz*dz
}

// ToVec3 возвращает координаты блока, содержащего точку (floor по осям)
func (v Vec3Float) ToVec3() Vec3 {
	return Vec3{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
		Z: int(math.Floor(v.Z)),
	}
}
