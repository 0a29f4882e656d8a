// Package terrain реализует процедурный ландшафт: высоту столбцов, биомы,
// пещеры-черви и растительность. Все функции — чистые от (сид, координаты),
// поэтому любой чанк воспроизводится независимо от порядка генерации.
package terrain

import (
	"math"

	"github.com/annel0/blockforge/internal/chunk"
	"github.com/annel0/blockforge/internal/noise"
)

// Параметры рельефа
const (
	BaseHeight    = 18  // базовый уровень земли
	HillAmplitude = 8.0 // разброс высот холмов
	hillFreq      = 0.02

	octaveCount       = 2
	octavePersistence = 0.5
	octaveLacunarity  = 2.0

	// Горы: маска крупного масштаба плюс два слоя пиков
	mountainMaskFreq  = 0.004
	mountainThreshold = 0.2
	smallMountainFreq = 0.015
	smallMountainAmp  = 15.0
	bigMountainFreq   = 0.005
	bigMountainAmp    = 40.0

	// Полуплоские области трёх масштабов
	semiFlatLargeFreq  = 0.005
	semiFlatMediumFreq = 0.015
	semiFlatSmallFreq  = 0.04
	semiFlatThreshold  = 0.2
	semiFlatFactor     = 0.23
)

// Sampler отвечает на точечные запросы ландшафта. Безопасен для
// конкурентного использования: состояние после создания не меняется.
type Sampler struct {
	noise *noise.Field
}

// NewSampler создаёт сэмплер поверх поля шума
func NewSampler(field *noise.Field) *Sampler {
	return &Sampler{noise: field}
}

// Noise возвращает поле шума, на котором построен сэмплер
func (s *Sampler) Noise() *noise.Field {
	return s.noise
}

// Biome определяет биом в точке (wx, wz). Четыре слоя шума разных масштабов
// складываются с убывающими весами, порог дополнительно возмущается
// сверхнизкочастотным шумом — границы биомов получаются неровными.
func (s *Sampler) Biome(wx, wz int) Biome {
	combined := s.combinedBiomeNoise(wx, wz)
	variation := s.thresholdVariation(wx, wz)

	// Пустыня там, где суммарный шум низкий, джунгли — где высокий
	if combined < -0.5+variation {
		return BiomeDesert
	}
	if combined > 0.3+variation {
		return BiomeJungle
	}
	return BiomePlains
}

// BlendWeight возвращает вес пустынного рельефа в точке: 0 — чистые равнины,
// 1 — чистая пустыня. Косинусная рампа шириной ±0.3 вокруг порога даёт
// плавный переход высот без обрывов на границе биомов.
func (s *Sampler) BlendWeight(wx, wz int) float64 {
	combined := s.combinedBiomeNoise(wx, wz)
	desertThreshold := -0.5 + s.thresholdVariation(wx, wz)

	const transitionWidth = 0.3
	switch {
	case combined < desertThreshold-transitionWidth:
		return 1.0
	case combined > desertThreshold+transitionWidth:
		return 0.0
	default:
		t := (combined - (desertThreshold - transitionWidth)) / (2.0 * transitionWidth)
		return 1.0 - 0.5*(1.0-math.Cos(math.Pi*t))
	}
}

func (s *Sampler) combinedBiomeNoise(wx, wz int) float64 {
	x := float64(wx)
	z := float64(wz)

	continental := s.noise.Noise2(x*0.003, z*0.003)
	regional := s.noise.Noise2(x*0.008, z*0.008)
	local := s.noise.Noise2(x*0.02, z*0.02)
	variation := s.noise.Noise2(x*0.012+100.0, z*0.012+100.0)

	return continental*0.5 + regional*0.25 + local*0.15 + variation*0.1
}

func (s *Sampler) thresholdVariation(wx, wz int) float64 {
	return s.noise.Noise2(float64(wx)*0.001, float64(wz)*0.001) * 0.1
}

// ColumnHeight возвращает высоту поверхности в столбце (wx, wz).
// Удобная обёртка над ColumnHeightFor для одиночных запросов; при заполнении
// чанка биом и вес кэшируются снаружи.
func (s *Sampler) ColumnHeight(wx, wz int) int {
	return s.ColumnHeightFor(wx, wz, s.Biome(wx, wz), s.BlendWeight(wx, wz))
}

// ColumnHeightFor вычисляет высоту поверхности при уже известном биоме
// и весе смешивания. Рельефы равнин и пустыни считаются полностью и
// смешиваются по весу, затем добавляются горы и полуплоские области.
func (s *Sampler) ColumnHeightFor(wx, wz int, biome Biome, desertWeight float64) int {
	x := float64(wx) * hillFreq
	z := float64(wz) * hillFreq

	// Сумма октав, нормированная к [-1, 1]
	total := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxValue := 0.0
	for i := 0; i < octaveCount; i++ {
		total += s.noise.Noise2(x*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= octavePersistence
		frequency *= octaveLacunarity
	}
	total /= maxValue

	// Профили считаются целиком и смешиваются: разница между ними
	// невелика, чтобы переход не образовывал стен
	plainsHeight := float64(BaseHeight) + HillAmplitude*total
	desertHeight := float64(BaseHeight)*0.98 + HillAmplitude*0.92*(total*0.95)
	blended := plainsHeight*(1.0-desertWeight) + desertHeight*desertWeight

	if biome == BiomeJungle {
		// Джунгли выше и холмистее
		blended = float64(BaseHeight)*1.05 + HillAmplitude*1.5*total
	}

	// Горы поверх базового рельефа там, где маска выше порога
	mask := s.noise.Noise2(float64(wx)*mountainMaskFreq, float64(wz)*mountainMaskFreq)
	if mask > mountainThreshold {
		strength := (mask - mountainThreshold) / (1.0 - mountainThreshold)
		strength = strength * strength * (3 - 2*strength)

		small := (s.noise.Noise2(float64(wx)*smallMountainFreq, float64(wz)*smallMountainFreq) + 1.0) * 0.5 * smallMountainAmp

		big := (s.noise.Noise2(float64(wx)*bigMountainFreq, float64(wz)*bigMountainFreq) + 1.0) * 0.5
		// Куб заостряет пики и расширяет долины
		big = big * big * big * bigMountainAmp

		blended += (small + big) * strength
	}

	// Полуплоские области: отклонение от базовой высоты гасится там,
	// где хотя бы один из трёх слоёв шума превышает порог
	flatness := 0.0
	for _, freq := range [...]float64{semiFlatLargeFreq, semiFlatMediumFreq, semiFlatSmallFreq} {
		n := s.noise.Noise2(float64(wx)*freq, float64(wz)*freq)
		if n > semiFlatThreshold && n-semiFlatThreshold > flatness {
			flatness = n - semiFlatThreshold
		}
	}
	if flatness > 0.0 {
		blendFactor := math.Min(flatness*3.0, 1.0)
		deviation := blended - float64(BaseHeight)
		semiFlat := float64(BaseHeight) + deviation*semiFlatFactor
		blended = blended*(1.0-blendFactor) + semiFlat*blendFactor
	}

	height := int(blended)
	if height < 1 {
		height = 1
	}
	if height >= chunk.SizeY {
		height = chunk.SizeY - 1
	}
	return height
}
