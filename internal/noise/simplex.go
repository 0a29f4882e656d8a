package noise

import "math/rand"

// Field — детерминированный генератор симплекс-шума.
// Таблица перестановок строится один раз из сида, после чего значение шума
// является чистой функцией координат: никакого скрытого состояния между
// вызовами нет. Это критично для генерации мира — чанки создаются и
// выгружаются в произвольном порядке, и рельеф обязан воспроизводиться
// из одного лишь сида.
type Field struct {
	seed int64
	perm [512]int
}

// Градиентные векторы для 2D/3D симплекс-шума
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Коэффициенты скоса для 2D и 3D
var (
	f2 = 0.5 * (sqrt3 - 1.0)
	g2 = (3.0 - sqrt3) / 6.0
)

const (
	sqrt3 = 1.7320508075688772
	f3    = 1.0 / 3.0
	g3    = 1.0 / 6.0
)

// NewField создаёт генератор шума с указанным сидом.
// Перестановка получается тасованием Фишера-Йетса от локального ГПСЧ,
// поэтому одинаковый сид даёт одинаковую таблицу между запусками.
func NewField(seed int64) *Field {
	f := &Field{seed: seed}

	base := make([]int, 256)
	for i := range base {
		base[i] = i
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(256, func(i, j int) {
		base[i], base[j] = base[j], base[i]
	})

	// Дублируем таблицу, чтобы не брать индексы по модулю
	for i := 0; i < 256; i++ {
		f.perm[i] = base[i]
		f.perm[i+256] = base[i]
	}

	return f
}

// Seed возвращает сид, из которого построена таблица перестановок
func (f *Field) Seed() int64 {
	return f.seed
}

// Noise2 возвращает значение 2D симплекс-шума в точке (x, y).
// Результат лежит примерно в диапазоне [-1, 1].
func (f *Field) Noise2(x, y float64) float64 {
	// Скос во "внутреннее" пространство симплексов
	s := (x + y) * f2
	i := fastFloor(x + s)
	j := fastFloor(y + s)

	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	// Определяем, в каком из двух треугольников находится точка
	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255
	gi0 := f.perm[ii+f.perm[jj]] % 12
	gi1 := f.perm[ii+i1+f.perm[jj+j1]] % 12
	gi2 := f.perm[ii+1+f.perm[jj+1]] % 12

	var n0, n1, n2 float64

	if t0 := 0.5 - x0*x0 - y0*y0; t0 > 0 {
		t0 *= t0
		n0 = t0 * t0 * dot2(grad3[gi0], x0, y0)
	}
	if t1 := 0.5 - x1*x1 - y1*y1; t1 > 0 {
		t1 *= t1
		n1 = t1 * t1 * dot2(grad3[gi1], x1, y1)
	}
	if t2 := 0.5 - x2*x2 - y2*y2; t2 > 0 {
		t2 *= t2
		n2 = t2 * t2 * dot2(grad3[gi2], x2, y2)
	}

	// Сумма вкладов углов, масштабированная к [-1, 1]
	return 70.0 * (n0 + n1 + n2)
}

// Noise3 возвращает значение 3D симплекс-шума в точке (x, y, z).
// Результат лежит примерно в диапазоне [-1, 1].
func (f *Field) Noise3(x, y, z float64) float64 {
	s := (x + y + z) * f3
	i := fastFloor(x + s)
	j := fastFloor(y + s)
	k := fastFloor(z + s)

	t := float64(i+j+k) * g3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	// Порядок обхода углов зависит от того, в каком из шести
	// тетраэдров куба находится точка
	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2.0*g3
	y2 := y0 - float64(j2) + 2.0*g3
	z2 := z0 - float64(k2) + 2.0*g3
	x3 := x0 - 1.0 + 3.0*g3
	y3 := y0 - 1.0 + 3.0*g3
	z3 := z0 - 1.0 + 3.0*g3

	ii := i & 255
	jj := j & 255
	kk := k & 255

	gi0 := f.perm[ii+f.perm[jj+f.perm[kk]]] % 12
	gi1 := f.perm[ii+i1+f.perm[jj+j1+f.perm[kk+k1]]] % 12
	gi2 := f.perm[ii+i2+f.perm[jj+j2+f.perm[kk+k2]]] % 12
	gi3 := f.perm[ii+1+f.perm[jj+1+f.perm[kk+1]]] % 12

	var n0, n1, n2, n3 float64

	if t0 := 0.6 - x0*x0 - y0*y0 - z0*z0; t0 > 0 {
		t0 *= t0
		n0 = t0 * t0 * dot3(grad3[gi0], x0, y0, z0)
	}
	if t1 := 0.6 - x1*x1 - y1*y1 - z1*z1; t1 > 0 {
		t1 *= t1
		n1 = t1 * t1 * dot3(grad3[gi1], x1, y1, z1)
	}
	if t2 := 0.6 - x2*x2 - y2*y2 - z2*z2; t2 > 0 {
		t2 *= t2
		n2 = t2 * t2 * dot3(grad3[gi2], x2, y2, z2)
	}
	if t3 := 0.6 - x3*x3 - y3*y3 - z3*z3; t3 > 0 {
		t3 *= t3
		n3 = t3 * t3 * dot3(grad3[gi3], x3, y3, z3)
	}

	return 32.0 * (n0 + n1 + n2 + n3)
}

func dot2(g [3]float64, x, y float64) float64 {
	return g[0]*x + g[1]*y
}

func dot3(g [3]float64, x, y, z float64) float64 {
	return g[0]*x + g[1]*y + g[2]*z
}

// fastFloor — floor для float64 без вызова math.Floor
func fastFloor(v float64) int {
	i := int(v)
	if v < float64(i) {
		return i - 1
	}
	return i
}
