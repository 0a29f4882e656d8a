// Package mesh строит геометрию чанков: по одному четырёхугольнику на
// каждую видимую грань блока. Результат не привязан к графическому движку —
// это список граней с позициями, нормалями, цветами и UV, который хост
// загружает в свой рендер.
package mesh

import (
	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/chunk"
)

// SolidFunc отвечает, твёрд ли блок в мировых координатах. Мешер опрашивает
// и соседние чанки, поэтому окклюзия корректна на границах.
type SolidFunc func(wx, wy, wz int) bool

// JungleFunc сообщает, лежит ли столбец в джунглях: трава там тонируется ярче
type JungleFunc func(wx, wz int) bool

// Коэффициенты затенения по направлению грани, имитация рассеянного света
const (
	ShadeTop        = 1.0
	ShadeBottom     = 0.5
	ShadeEastWest   = 0.75
	ShadeNorthSouth = 0.85
)

// normalOffset отодвигает вершины от поверхности блока, убирая z-fighting
const normalOffset = 0.001

// Face — одна видимая грань блока. Вершины в локальных координатах чанка,
// обход против часовой стрелки если смотреть снаружи.
type Face struct {
	Vertices [4][3]float64
	Normal   [3]float64
	Shade    float64
	Color    block.RGBA // цвет грани с уже применённым затенением
	UV       UVRect
}

// Builder строит меши чанков с фиксированным атласом
type Builder struct {
	atlas *Atlas
}

// NewBuilder создаёт мешер поверх атласа текстур
func NewBuilder(atlas *Atlas) *Builder {
	return &Builder{atlas: atlas}
}

// BuildMesh возвращает все видимые грани чанка. Грань видима, когда сосед
// блока нетвёрд; блок, закрытый со всех шести сторон, пропускается сразу.
func (b *Builder) BuildMesh(c *chunk.Chunk, solid SolidFunc, jungle JungleFunc) []Face {
	var faces []Face

	wx0, wz0 := c.Origin()

	for y := 0; y < chunk.SizeY; y++ {
		for lz := 0; lz < chunk.SizeZ; lz++ {
			for lx := 0; lx < chunk.SizeX; lx++ {
				id := c.Get(lx, y, lz)
				if !id.IsSolid() {
					continue
				}

				wx := wx0 + lx
				wz := wz0 + lz

				inJungle := false
				if id == block.Grass && jungle != nil {
					inJungle = jungle(wx, wz)
				}

				// Полностью закрытый блок не даёт ни одной грани
				if solid(wx, y+1, wz) &&
					(y == 0 || solid(wx, y-1, wz)) &&
					solid(wx+1, y, wz) && solid(wx-1, y, wz) &&
					solid(wx, y, wz+1) && solid(wx, y, wz-1) {
					continue
				}

				x := float64(lx)
				z := float64(lz)
				fy := float64(y)

				// Верх (+Y)
				if !solid(wx, y+1, wz) {
					faces = append(faces, b.face(id, block.FaceTop, inJungle,
						[4][3]float64{
							{x, fy + 1, z},
							{x + 1, fy + 1, z},
							{x + 1, fy + 1, z + 1},
							{x, fy + 1, z + 1},
						},
						[3]float64{0, 1, 0}, ShadeTop))
				}

				// Низ (-Y); нулевой уровень рисуется всегда — ниже мира
				// соседа-чанка нет
				if y == 0 || !solid(wx, y-1, wz) {
					faces = append(faces, b.face(id, block.FaceBottom, inJungle,
						[4][3]float64{
							{x, fy, z + 1},
							{x + 1, fy, z + 1},
							{x + 1, fy, z},
							{x, fy, z},
						},
						[3]float64{0, -1, 0}, ShadeBottom))
				}

				// +X
				if !solid(wx+1, y, wz) {
					faces = append(faces, b.face(id, block.FaceSide, inJungle,
						[4][3]float64{
							{x + 1, fy, z},
							{x + 1, fy, z + 1},
							{x + 1, fy + 1, z + 1},
							{x + 1, fy + 1, z},
						},
						[3]float64{1, 0, 0}, ShadeEastWest))
				}

				// -X
				if !solid(wx-1, y, wz) {
					faces = append(faces, b.face(id, block.FaceSide, inJungle,
						[4][3]float64{
							{x, fy, z + 1},
							{x, fy, z},
							{x, fy + 1, z},
							{x, fy + 1, z + 1},
						},
						[3]float64{-1, 0, 0}, ShadeEastWest))
				}

				// +Z
				if !solid(wx, y, wz+1) {
					faces = append(faces, b.face(id, block.FaceSide, inJungle,
						[4][3]float64{
							{x + 1, fy, z + 1},
							{x, fy, z + 1},
							{x, fy + 1, z + 1},
							{x + 1, fy + 1, z + 1},
						},
						[3]float64{0, 0, 1}, ShadeNorthSouth))
				}

				// -Z
				if !solid(wx, y, wz-1) {
					faces = append(faces, b.face(id, block.FaceSide, inJungle,
						[4][3]float64{
							{x, fy, z},
							{x + 1, fy, z},
							{x + 1, fy + 1, z},
							{x, fy + 1, z},
						},
						[3]float64{0, 0, -1}, ShadeNorthSouth))
				}
			}
		}
	}

	return faces
}

// face собирает одну грань: смещает вершины по нормали, затеняет цвет
// и подбирает UV с запасными вариантами.
func (b *Builder) face(id block.ID, f block.Face, jungle bool, verts [4][3]float64, normal [3]float64, shade float64) Face {
	for i := range verts {
		verts[i][0] += normal[0] * normalOffset
		verts[i][1] += normal[1] * normalOffset
		verts[i][2] += normal[2] * normalOffset
	}

	c := id.FaceColor(f, jungle)
	c.R *= shade
	c.G *= shade
	c.B *= shade

	return Face{
		Vertices: verts,
		Normal:   normal,
		Shade:    shade,
		Color:    c,
		UV:       b.uvFor(id, f),
	}
}

// uvFor возвращает UV текстуры грани. Если текстуры блока в атласе нет,
// берётся камень, если нет и его — весь атлас целиком.
func (b *Builder) uvFor(id block.ID, f block.Face) UVRect {
	if name := id.TextureName(f); name != "" {
		if rect, ok := b.atlas.UV(name); ok {
			return rect
		}
	}
	if rect, ok := b.atlas.UV("stone"); ok {
		return rect
	}
	return FullTexture
}
