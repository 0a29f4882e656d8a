// Package config читает YAML-конфигурацию клиента. Любое значение можно
// переопределить переменной окружения; приоритет: конфиг -> env -> дефолт.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config — корневая структура конфигурации
type Config struct {
	World  WorldConfig  `yaml:"world"`
	Player PlayerConfig `yaml:"player"`
	Mobs   MobsConfig   `yaml:"mobs"`
}

type WorldConfig struct {
	Seed           int64  `yaml:"seed"`
	RenderDistance int    `yaml:"render_distance"`
	CreateBudget   int    `yaml:"create_budget"`
	MeshBudget     int    `yaml:"mesh_budget"`
	DataDir        string `yaml:"data_dir"`
	// Storage — бэкенд сохранений: badger или files
	Storage          string  `yaml:"storage"`
	DayLengthSeconds float64 `yaml:"day_length_seconds"`
}

type PlayerConfig struct {
	// Mode — режим игры: survival или creative
	Mode string `yaml:"mode"`
}

type MobsConfig struct {
	// Difficulty — peaceful, easy, normal или hard
	Difficulty string `yaml:"difficulty"`
}

// GetSeed возвращает сид мира. Ноль означает "выбрать случайный".
func (w *WorldConfig) GetSeed() int64 {
	if w.Seed != 0 {
		return w.Seed
	}
	if envVal := os.Getenv("BLOCKFORGE_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			return seed
		}
	}
	return 0
}

// GetRenderDistance возвращает радиус кольца чанков
func (w *WorldConfig) GetRenderDistance() int {
	return getIntWithEnvFallback(w.RenderDistance, "BLOCKFORGE_RENDER_DISTANCE", 4)
}

// GetCreateBudget возвращает бюджет генерации чанков за тик
func (w *WorldConfig) GetCreateBudget() int {
	return getIntWithEnvFallback(w.CreateBudget, "BLOCKFORGE_CREATE_BUDGET", 1)
}

// GetMeshBudget возвращает бюджет мешей за тик
func (w *WorldConfig) GetMeshBudget() int {
	return getIntWithEnvFallback(w.MeshBudget, "BLOCKFORGE_MESH_BUDGET", 1)
}

// GetDataDir возвращает директорию сохранений
func (w *WorldConfig) GetDataDir() string {
	return getStringWithEnvFallback(w.DataDir, "BLOCKFORGE_DATA_DIR", "data")
}

// GetStorage возвращает имя бэкенда сохранений
func (w *WorldConfig) GetStorage() string {
	return getStringWithEnvFallback(w.Storage, "BLOCKFORGE_STORAGE", "badger")
}

// GetDayLength возвращает длительность суток в секундах
func (w *WorldConfig) GetDayLength() float64 {
	if w.DayLengthSeconds > 0 {
		return w.DayLengthSeconds
	}
	if envVal := os.Getenv("BLOCKFORGE_DAY_LENGTH"); envVal != "" {
		if v, err := strconv.ParseFloat(envVal, 64); err == nil && v > 0 {
			return v
		}
	}
	return 600.0
}

// GetMode возвращает имя режима игры
func (p *PlayerConfig) GetMode() string {
	return getStringWithEnvFallback(p.Mode, "BLOCKFORGE_MODE", "survival")
}

// GetDifficulty возвращает имя сложности
func (m *MobsConfig) GetDifficulty() string {
	return getStringWithEnvFallback(m.Difficulty, "BLOCKFORGE_DIFFICULTY", "normal")
}

// getIntWithEnvFallback возвращает значение с приоритетом config -> env -> default
func getIntWithEnvFallback(configVal int, envVar string, defaultVal int) int {
	if configVal > 0 {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}

func getStringWithEnvFallback(configVal string, envVar, defaultVal string) string {
	if configVal != "" {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultVal
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV BLOCKFORGE_CONFIG или
// возвращает nil, nil — использовать дефолты.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("BLOCKFORGE_CONFIG")
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
