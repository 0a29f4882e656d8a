package block

// Face обозначает грань блока с точки зрения выбора текстуры и цвета.
// Боковые грани не различаются между собой.
type Face uint8

const (
	FaceTop Face = iota
	FaceBottom
	FaceSide
)

// Базовые имена текстур по типу блока. Блоки с разными текстурами
// на разных гранях обрабатываются отдельно в TextureName.
var textures = map[ID]string{
	Grass:         "grass",
	Dirt:          "dirt",
	Stone:         "stone",
	Bedrock:       "bedrock",
	Sand:          "sand",
	Wood:          "wood",
	Leaves:        "leaves",
	Cobblestone:   "cobblestone",
	Brick:         "brick",
	Sandstone:     "sandstone",
	Cactus:        "cactus",
	Planks:        "planks",
	CraftingTable: "crafting_table",
	Furnace:       "furnace",
	Chest:         "chest",
	JungleLog:     "jungle_log",
	JungleLeaves:  "jungle_leaves",
	BirchLog:      "birch_log",
	BirchLeaves:   "birch_leaves",
	CoalOre:       "coal_ore",
	IronOre:       "iron_ore",
	DiamondOre:    "diamond_ore",
	GoldOre:       "gold_ore",
	JunglePlanks:  "jungle_planks",
	BirchPlanks:   "birch_planks",
}

// TextureNames возвращает полный набор имён текстур блоков, включая
// отдельные текстуры торцов брёвен. Используется для сборки атласа.
func TextureNames() []string {
	names := make([]string, 0, len(textures)+3)
	for _, name := range textures {
		names = append(names, name)
	}
	return append(names, "wood_top", "jungle_log_top", "birch_log_top")
}

// TextureName возвращает имя текстуры для грани блока.
// Пустая строка означает, что у блока нет собственной текстуры
// и мешер должен взять запасную.
func (id ID) TextureName(face Face) string {
	switch id {
	case Grass:
		if face == FaceBottom {
			return "dirt"
		}
		return "grass"
	case Wood:
		if face != FaceSide {
			return "wood_top"
		}
		return "wood"
	case JungleLog:
		if face != FaceSide {
			return "jungle_log_top"
		}
		return "jungle_log"
	case BirchLog:
		if face != FaceSide {
			return "birch_log_top"
		}
		return "birch_log"
	}
	return textures[id]
}
