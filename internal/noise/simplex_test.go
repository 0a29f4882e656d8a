package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldDeterminism(t *testing.T) {
	// Два независимых генератора с одним сидом обязаны давать
	// идентичные значения во всех точках
	a := NewField(42)
	b := NewField(42)

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.137
		y := float64(i) * -0.251
		z := float64(i) * 0.073

		assert.Equal(t, a.Noise2(x, y), b.Noise2(x, y),
			"2D шум должен быть детерминированным для одного сида")
		assert.Equal(t, a.Noise3(x, y, z), b.Noise3(x, y, z),
			"3D шум должен быть детерминированным для одного сида")
	}
}

func TestFieldSeedVariation(t *testing.T) {
	a := NewField(1)
	b := NewField(2)

	// Разные сиды должны давать разные поля хотя бы в одной точке
	differ := false
	for i := 0; i < 50 && !differ; i++ {
		x := float64(i) * 0.31
		y := float64(i) * 0.17
		if a.Noise2(x, y) != b.Noise2(x, y) {
			differ = true
		}
	}
	assert.True(t, differ, "разные сиды должны давать разный шум")
}

func TestFieldRange(t *testing.T) {
	f := NewField(12345)

	for i := -200; i < 200; i++ {
		x := float64(i) * 0.193
		y := float64(i) * 0.089
		z := float64(i) * 0.211

		n2 := f.Noise2(x, y)
		require.GreaterOrEqual(t, n2, -1.0, "2D шум вышел за нижнюю границу")
		require.LessOrEqual(t, n2, 1.0, "2D шум вышел за верхнюю границу")

		n3 := f.Noise3(x, y, z)
		require.GreaterOrEqual(t, n3, -1.0, "3D шум вышел за нижнюю границу")
		require.LessOrEqual(t, n3, 1.0, "3D шум вышел за верхнюю границу")
	}
}

func TestFieldContinuity(t *testing.T) {
	// Соседние точки не должны давать скачков: градиентный шум непрерывен
	f := NewField(7)

	prev := f.Noise2(0, 0)
	for i := 1; i < 1000; i++ {
		cur := f.Noise2(float64(i)*0.001, 0)
		assert.InDelta(t, prev, cur, 0.05,
			"шум должен меняться плавно на малом шаге")
		prev = cur
	}
}

func TestFieldSeed(t *testing.T) {
	f := NewField(-99)
	assert.Equal(t, int64(-99), f.Seed())
}
