package block

// Твёрдость блоков в секундах добычи голой рукой.
// Отсутствие записи означает твёрдость по умолчанию (1.0).
var hardness = map[ID]float64{
	Grass:         0.6,
	Dirt:          0.5,
	Stone:         1.5,
	Sand:          0.5,
	Wood:          2.0,
	Leaves:        0.3,
	Cobblestone:   2.0,
	Brick:         2.0,
	Sandstone:     0.8,
	Cactus:        0.3,
	Planks:        2.0,
	Sticks:        1.0,
	PickaxeWood:   2.0,
	PickaxeStone:  3.0,
	PickaxeIron:   4.0,
	AxeWood:       2.0,
	AxeStone:      3.0,
	AxeIron:       4.0,
	ShovelWood:    2.0,
	ShovelStone:   3.0,
	ShovelIron:    4.0,
	SwordWood:     2.0,
	SwordStone:    3.0,
	SwordIron:     4.0,
	CraftingTable: 2.5,
	Furnace:       3.5,
	Chest:         2.5,
	IronIngot:     5.0,
}

// DefaultHardness применяется к блокам, не перечисленным в таблице
const DefaultHardness = 1.0

// BreakStages — количество стадий разрушения блока (трещины 0..9)
const BreakStages = 10

// Hardness возвращает время добычи блока в секундах и признак того,
// что блок вообще можно сломать. Бедрок неразрушаем.
func (id ID) Hardness() (seconds float64, breakable bool) {
	if id == Bedrock {
		return 0, false
	}
	if h, ok := hardness[id]; ok {
		return h, true
	}
	return DefaultHardness, true
}
