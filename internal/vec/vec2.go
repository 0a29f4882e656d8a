package vec

// Vec2 представляет целочисленные координаты на плоскости XZ.
// Используется для координат чанков (cx, cz).
type Vec2 struct {
	X int
	Z int
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Z: v.Z + other.Z}
}

// Equals проверяет равенство векторов
func (v Vec2) Equals(other Vec2) bool {
	return v.X == other.X && v.Z == other.Z
}

// ChebyshevDistance возвращает расстояние Чебышёва до другого чанка.
// Именно эта метрика определяет квадратное "кольцо" стриминга.
func (v Vec2) ChebyshevDistance(other Vec2) int {
	dx := v.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dz := v.Z - other.Z
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}
