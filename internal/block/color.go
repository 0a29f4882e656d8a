package block

// RGBA — цвет грани в диапазоне [0, 1] на компоненту
type RGBA struct {
	R, G, B, A float64
}

// Базовая палитра граней
var (
	colorGrassTop        = RGBA{0.46, 0.74, 0.36, 1.0}
	colorJungleGrassTop  = RGBA{0.35, 0.85, 0.30, 1.0}
	colorDirt            = RGBA{0.56, 0.37, 0.24, 1.0}
	colorStone           = RGBA{0.55, 0.55, 0.56, 1.0}
	colorGrassSides      = RGBA{0.38, 0.64, 0.29, 1.0}
	colorJungleGrassSide = RGBA{0.28, 0.74, 0.22, 1.0}
	colorBedrock         = RGBA{0.20, 0.20, 0.22, 1.0}
	colorSand            = RGBA{0.93, 0.89, 0.70, 1.0}
	colorWood            = RGBA{0.55, 0.35, 0.20, 1.0}
	colorWoodTop         = RGBA{0.65, 0.45, 0.25, 1.0}
	colorLeaves          = RGBA{0.20, 0.60, 0.20, 1.0}
	colorCobblestone     = RGBA{0.50, 0.50, 0.52, 1.0}
	colorBrick           = RGBA{0.70, 0.30, 0.25, 1.0}
	colorSandstone       = RGBA{0.91, 0.83, 0.61, 1.0}
	colorCactus          = RGBA{0.36, 0.64, 0.25, 1.0}
)

// FaceColor возвращает цвет грани блока. Для травы цвет зависит от биома:
// в джунглях трава заметно ярче. Неизвестные блоки возвращают пурпурный,
// чтобы ошибку было видно сразу.
func (id ID) FaceColor(face Face, jungle bool) RGBA {
	switch id {
	case Grass:
		switch face {
		case FaceTop:
			if jungle {
				return colorJungleGrassTop
			}
			return colorGrassTop
		case FaceBottom:
			return colorDirt
		default:
			if jungle {
				return colorJungleGrassSide
			}
			return colorGrassSides
		}
	case Dirt:
		return colorDirt
	case Stone:
		return colorStone
	case Bedrock:
		return colorBedrock
	case Sand:
		return colorSand
	case Wood:
		if face != FaceSide {
			return colorWoodTop
		}
		return colorWood
	case Leaves:
		return colorLeaves
	case Cobblestone:
		return colorCobblestone
	case Brick:
		return colorBrick
	case Sandstone:
		return colorSandstone
	case Cactus:
		return colorCactus
	case Planks:
		return RGBA{0.65, 0.45, 0.25, 1.0}
	case JunglePlanks:
		return RGBA{0.55, 0.35, 0.25, 1.0}
	case BirchPlanks:
		return RGBA{0.85, 0.80, 0.60, 1.0}
	case Sticks:
		return RGBA{0.55, 0.35, 0.20, 1.0}
	case PickaxeWood, PickaxeStone, PickaxeIron, AxeWood, AxeStone, AxeIron:
		return RGBA{0.6, 0.6, 0.6, 1.0}
	case ShovelWood, ShovelStone, ShovelIron:
		return RGBA{0.7, 0.7, 0.7, 1.0}
	case SwordWood, SwordStone, SwordIron:
		return RGBA{0.8, 0.8, 0.8, 1.0}
	case CraftingTable:
		if face != FaceSide {
			return RGBA{0.7, 0.5, 0.3, 1.0}
		}
		return RGBA{0.6, 0.4, 0.2, 1.0}
	case Furnace:
		return RGBA{0.4, 0.4, 0.4, 1.0}
	case Chest:
		return RGBA{0.6, 0.4, 0.2, 1.0}
	case IronIngot:
		return RGBA{0.8, 0.8, 0.8, 1.0}
	case JungleLog:
		if face != FaceSide {
			return RGBA{0.4, 0.3, 0.2, 1.0}
		}
		return RGBA{0.35, 0.25, 0.15, 1.0}
	case JungleLeaves:
		return RGBA{0.1, 0.5, 0.1, 1.0}
	case BirchLog:
		if face != FaceSide {
			return RGBA{0.9, 0.85, 0.7, 1.0}
		}
		return RGBA{0.95, 0.95, 0.95, 1.0}
	case BirchLeaves:
		return RGBA{0.4, 0.7, 0.4, 1.0}
	case CoalOre, IronOre, DiamondOre, GoldOre:
		// Базовый цвет камня, детали даёт текстура
		return colorStone
	}
	// Заметный цвет для неизвестного ID
	return RGBA{1.0, 0.0, 1.0, 1.0}
}
