// Package chunk определяет геометрию чанка и хранилище блоков.
// Чанк — вертикальный столб мира размером 8x128x8 блоков, адресуемый
// координатами (cx, cz) на плоскости XZ.
package chunk

import (
	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/vec"
)

// Размеры чанка в блоках. Узкое основание ускоряет генерацию и перестройку
// меша, большая высота оставляет место горам.
const (
	SizeX = 8
	SizeY = 128
	SizeZ = 8

	// Volume — количество блоков в чанке
	Volume = SizeX * SizeY * SizeZ
)

// Chunk хранит блоки одного столба мира. Флаг Dirty означает, что меш
// устарел и должен быть перестроен.
type Chunk struct {
	Coords vec.Vec2
	Blocks [Volume]block.ID
	Dirty  bool
}

// New создаёт пустой (заполненный воздухом) чанк с координатами (cx, cz)
func New(cx, cz int) *Chunk {
	return &Chunk{
		Coords: vec.Vec2{X: cx, Z: cz},
		Dirty:  true,
	}
}

// Index возвращает позицию локальных координат в плоском массиве блоков.
// Раскладка x-мажорная внутри z-мажорной внутри y-мажорной: столбцы одного
// горизонтального слоя лежат подряд.
func Index(lx, y, lz int) int {
	return (y*SizeZ+lz)*SizeX + lx
}

// Get возвращает блок по локальным координатам
func (c *Chunk) Get(lx, y, lz int) block.ID {
	return c.Blocks[Index(lx, y, lz)]
}

// Set записывает блок по локальным координатам
func (c *Chunk) Set(lx, y, lz int, id block.ID) {
	c.Blocks[Index(lx, y, lz)] = id
}

// WorldToChunk возвращает координаты чанка, содержащего мировой блок (wx, wz).
// Деление с округлением вниз, поэтому отрицательные координаты попадают
// в правильный чанк.
func WorldToChunk(wx, wz int) vec.Vec2 {
	return vec.Vec2{X: floorDiv(wx, SizeX), Z: floorDiv(wz, SizeZ)}
}

// Local переводит мировые координаты блока в локальные внутри его чанка
func Local(wx, wz int) (lx, lz int) {
	c := WorldToChunk(wx, wz)
	return wx - c.X*SizeX, wz - c.Z*SizeZ
}

// Origin возвращает мировые координаты угла чанка (минимальные wx, wz)
func (c *Chunk) Origin() (wx0, wz0 int) {
	return c.Coords.X * SizeX, c.Coords.Z * SizeZ
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
