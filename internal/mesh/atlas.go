package mesh

import (
	"math"
	"sort"
)

// UVRect — прямоугольник текстуры в атласе, координаты в [0, 1]
type UVRect struct {
	UMin, VMin float64
	UMax, VMax float64
}

// FullTexture покрывает весь атлас; используется как последний запасной
// вариант, когда нет ни текстуры блока, ни камня.
var FullTexture = UVRect{0, 0, 1, 1}

// Atlas отображает имена текстур в UV-прямоугольники единого атласа.
// Экземпляр передаётся мешеру явно: глобального атласа нет, в тестах
// и инструментах можно держать несколько независимых.
type Atlas struct {
	uvs map[string]UVRect
}

// NewAtlas создаёт пустой атлас
func NewAtlas() *Atlas {
	return &Atlas{uvs: make(map[string]UVRect)}
}

// NewGridAtlas раскладывает именованные текстуры одинакового размера
// по квадратной сетке. Имена сортируются, поэтому раскладка
// воспроизводима независимо от порядка на входе.
func NewGridAtlas(names []string) *Atlas {
	a := NewAtlas()
	if len(names) == 0 {
		return a
	}

	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	cols := int(math.Ceil(math.Sqrt(float64(len(sorted)))))
	rows := (len(sorted) + cols - 1) / cols

	for i, name := range sorted {
		col := i % cols
		row := i / cols

		uMin := float64(col) / float64(cols)
		uMax := float64(col+1) / float64(cols)
		// Строка 0 лежит вверху изображения, V растёт снизу вверх
		vMax := 1.0 - float64(row)/float64(rows)
		vMin := 1.0 - float64(row+1)/float64(rows)

		a.uvs[name] = UVRect{UMin: uMin, VMin: vMin, UMax: uMax, VMax: vMax}
	}
	return a
}

// Add регистрирует прямоугольник текстуры
func (a *Atlas) Add(name string, rect UVRect) {
	a.uvs[name] = rect
}

// UV возвращает прямоугольник текстуры по имени
func (a *Atlas) UV(name string) (UVRect, bool) {
	rect, ok := a.uvs[name]
	return rect, ok
}

// Len возвращает количество текстур в атласе
func (a *Atlas) Len() int {
	return len(a.uvs)
}
