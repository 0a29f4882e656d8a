package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSolid(t *testing.T) {
	assert.False(t, Air.IsSolid(), "воздух не должен быть твёрдым")
	assert.True(t, Grass.IsSolid(), "трава должна быть твёрдой")
	assert.True(t, Bedrock.IsSolid(), "бедрок должен быть твёрдым")
	assert.True(t, DiamondOre.IsSolid(), "руда должна быть твёрдой")
}

func TestHardness(t *testing.T) {
	_, breakable := Bedrock.Hardness()
	assert.False(t, breakable, "бедрок должен быть неразрушаемым")

	seconds, breakable := Stone.Hardness()
	assert.True(t, breakable)
	assert.Equal(t, 1.5, seconds, "твёрдость камня должна быть 1.5 с")

	seconds, breakable = GoldOre.Hardness()
	assert.True(t, breakable)
	assert.Equal(t, DefaultHardness, seconds,
		"блок без записи в таблице получает твёрдость по умолчанию")
}

func TestTextureNamePerFace(t *testing.T) {
	// У травы и брёвен текстура зависит от грани
	assert.Equal(t, "grass", Grass.TextureName(FaceTop))
	assert.Equal(t, "dirt", Grass.TextureName(FaceBottom))
	assert.Equal(t, "grass", Grass.TextureName(FaceSide))

	assert.Equal(t, "wood_top", Wood.TextureName(FaceTop))
	assert.Equal(t, "wood", Wood.TextureName(FaceSide))

	assert.Equal(t, "jungle_log_top", JungleLog.TextureName(FaceBottom))
	assert.Equal(t, "birch_log", BirchLog.TextureName(FaceSide))

	// Однотекстурные блоки одинаковы со всех сторон
	assert.Equal(t, "stone", Stone.TextureName(FaceTop))
	assert.Equal(t, "stone", Stone.TextureName(FaceSide))

	// Инструменты текстуры блока не имеют
	assert.Equal(t, "", SwordIron.TextureName(FaceSide))
}

func TestFaceColorBiomeTint(t *testing.T) {
	plains := Grass.FaceColor(FaceTop, false)
	jungle := Grass.FaceColor(FaceTop, true)
	assert.NotEqual(t, plains, jungle, "трава в джунглях должна отличаться цветом")

	// Биом влияет только на траву
	assert.Equal(t, Stone.FaceColor(FaceTop, false), Stone.FaceColor(FaceTop, true))
}

func TestFaceColorUnknown(t *testing.T) {
	c := ID(9999).FaceColor(FaceTop, false)
	assert.Equal(t, RGBA{1.0, 0.0, 1.0, 1.0}, c,
		"неизвестный блок должен давать заметный цвет")
}

func TestName(t *testing.T) {
	assert.Equal(t, "diamond_ore", DiamondOre.Name())
	assert.Equal(t, "unknown", ID(500).Name())
}
