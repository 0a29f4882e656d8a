// Package block содержит реестр типов блоков: идентификаторы, твёрдость,
// текстуры граней и цвета. Реестр статический — мир оперирует только ID,
// все свойства выводятся из таблиц этого пакета.
package block

// ID — числовой идентификатор типа блока. Хранится прямо в массиве чанка,
// поэтому тип намеренно компактный.
type ID uint16

// Известные типы блоков. Значения зашиты в сохранения миров, менять нельзя.
const (
	Air         ID = 0
	Grass       ID = 1
	Dirt        ID = 2
	Stone       ID = 3
	Bedrock     ID = 4
	Sand        ID = 5
	Wood        ID = 6
	Leaves      ID = 7
	Cobblestone ID = 8
	Brick       ID = 9
	Sandstone   ID = 10
	Cactus      ID = 11
	Planks      ID = 12
	Sticks      ID = 13

	// Инструменты: существуют как предметы в инвентаре и дропе,
	// в мир не ставятся
	PickaxeWood  ID = 14
	PickaxeStone ID = 15
	PickaxeIron  ID = 16
	AxeWood      ID = 17
	AxeStone     ID = 18
	AxeIron      ID = 19
	ShovelWood   ID = 20
	ShovelStone  ID = 21
	ShovelIron   ID = 22
	SwordWood    ID = 23
	SwordStone   ID = 24
	SwordIron    ID = 25

	CraftingTable ID = 26
	Furnace       ID = 27
	Chest         ID = 28
	IronIngot     ID = 29

	JungleLog    ID = 30
	JungleLeaves ID = 31
	BirchLog     ID = 32
	BirchLeaves  ID = 33

	CoalOre    ID = 34
	IronOre    ID = 35
	DiamondOre ID = 36
	GoldOre    ID = 37

	JunglePlanks ID = 38
	BirchPlanks  ID = 39
)

// Предметы дропа мобов. В мир не ставятся, существуют только как
// выпавшие предметы, поэтому вынесены в отдельный диапазон.
const (
	RawMeat     ID = 100
	RawChicken  ID = 101
	RawPork     ID = 102
	RottenFlesh ID = 103
	Bone        ID = 104
	Gunpowder   ID = 105
)

var names = map[ID]string{
	Air: "air", Grass: "grass", Dirt: "dirt", Stone: "stone",
	Bedrock: "bedrock", Sand: "sand", Wood: "wood", Leaves: "leaves",
	Cobblestone: "cobblestone", Brick: "brick", Sandstone: "sandstone",
	Cactus: "cactus", Planks: "planks", Sticks: "sticks",
	PickaxeWood: "pickaxe_wood", PickaxeStone: "pickaxe_stone", PickaxeIron: "pickaxe_iron",
	AxeWood: "axe_wood", AxeStone: "axe_stone", AxeIron: "axe_iron",
	ShovelWood: "shovel_wood", ShovelStone: "shovel_stone", ShovelIron: "shovel_iron",
	SwordWood: "sword_wood", SwordStone: "sword_stone", SwordIron: "sword_iron",
	CraftingTable: "crafting_table", Furnace: "furnace", Chest: "chest",
	IronIngot: "iron_ingot",
	JungleLog: "jungle_log", JungleLeaves: "jungle_leaves",
	BirchLog: "birch_log", BirchLeaves: "birch_leaves",
	CoalOre: "coal_ore", IronOre: "iron_ore", DiamondOre: "diamond_ore", GoldOre: "gold_ore",
	JunglePlanks: "jungle_planks", BirchPlanks: "birch_planks",
	RawMeat: "raw_meat", RawChicken: "raw_chicken", RawPork: "raw_pork",
	RottenFlesh: "rotten_flesh", Bone: "bone", Gunpowder: "gunpowder",
}

// Name возвращает строковое имя блока (для логов и сохранений)
func (id ID) Name() string {
	if name, ok := names[id]; ok {
		return name
	}
	return "unknown"
}

// IsSolid сообщает, является ли блок твёрдым для коллизий и окклюзии граней.
// Все непустые блоки твёрдые: прозрачных и проходимых типов в мире нет.
func (id ID) IsSolid() bool {
	return id != Air
}
