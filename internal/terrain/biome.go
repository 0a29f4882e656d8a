package terrain

// Biome — климатическая зона, определяющая профиль рельефа,
// поверхностные блоки и растительность.
type Biome uint8

const (
	BiomePlains Biome = iota
	BiomeDesert
	BiomeJungle
)

func (b Biome) String() string {
	switch b {
	case BiomeDesert:
		return "desert"
	case BiomeJungle:
		return "jungle"
	default:
		return "plains"
	}
}
