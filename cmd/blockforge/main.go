package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/blockforge/internal/config"
	"github.com/annel0/blockforge/internal/entity"
	"github.com/annel0/blockforge/internal/game"
	"github.com/annel0/blockforge/internal/logging"
	"github.com/annel0/blockforge/internal/metrics"
	"github.com/annel0/blockforge/internal/storage"
	"github.com/annel0/blockforge/internal/world"
)

// Такт симуляции
const (
	tickRate     = 20
	saveInterval = 30 * time.Second
)

// worldStore объединяет хранение чанков, сида и закрытие бэкенда
type worldStore interface {
	world.Persistence
	SaveSeed(seed int64) error
	LoadSeed() (int64, bool, error)
	Close() error
}

func main() {
	configPath := flag.String("config", "", "путь к YAML-конфигурации")
	flag.Parse()

	if err := logging.InitLogger(); err != nil {
		log.Fatalf("Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseLogger()

	logging.LogInfo("Запуск blockforge...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.LogError("Ошибка чтения конфигурации: %v", err)
		log.Fatalf("Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	store, err := openStorage(cfg)
	if err != nil {
		logging.LogError("Ошибка открытия хранилища: %v", err)
		log.Fatalf("Ошибка открытия хранилища: %v", err)
	}
	defer store.Close()

	seed, err := resolveSeed(cfg, store)
	if err != nil {
		logging.LogError("Ошибка определения сида: %v", err)
		log.Fatalf("Ошибка определения сида: %v", err)
	}
	logging.LogInfo("Мир: сид %d, хранилище %s (%s)",
		seed, cfg.World.GetStorage(), cfg.World.GetDataDir())

	mode, ok := entity.ParseGameMode(cfg.Player.GetMode())
	if !ok {
		logging.LogWarn("Неизвестный режим %q, используется survival", cfg.Player.GetMode())
	}
	difficulty, ok := entity.ParseDifficulty(cfg.Mobs.GetDifficulty())
	if !ok {
		logging.LogWarn("Неизвестная сложность %q, используется normal", cfg.Mobs.GetDifficulty())
	}

	opts := game.Options{
		Seed:           seed,
		Mode:           mode,
		Difficulty:     difficulty,
		DayLength:      cfg.World.GetDayLength(),
		RenderDistance: cfg.World.GetRenderDistance(),
		CreateBudget:   cfg.World.GetCreateBudget(),
		MeshBudget:     cfg.World.GetMeshBudget(),
	}

	session := game.NewSession(opts, store, metrics.New())

	logging.LogInfo("Прогрев мира: кольцо радиуса %d...", opts.RenderDistance)
	created, meshed := session.Preload()
	logging.LogInfo("Мир готов: %d чанков сгенерировано, %d мешей построено", created, meshed)
	logging.LogInfo("Режим %s, сложность %s, сутки %.0f c",
		mode, difficulty, opts.DayLength)

	run(session)

	if err := session.Save(); err != nil {
		logging.LogError("Ошибка сохранения мира: %v", err)
	}
	logging.LogInfo("Мир сохранён, выход")
}

// run крутит симуляцию с фиксированным тактом до сигнала ОС,
// периодически сохраняя изменённые чанки
func run(session *game.Session) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	saveTicker := time.NewTicker(saveInterval)
	defer saveTicker.Stop()

	dt := 1.0 / float64(tickRate)

	for {
		select {
		case <-ticker.C:
			session.Update(entity.Intent{}, dt)

		case <-saveTicker.C:
			if err := session.Save(); err != nil {
				logging.LogError("Ошибка автосохранения: %v", err)
			} else {
				logging.LogDebug("Автосохранение выполнено")
			}

		case sig := <-sigCh:
			logging.LogInfo("Получен сигнал %v, завершение работы...", sig)
			return
		}
	}
}

// openStorage выбирает бэкенд сохранений по конфигурации
func openStorage(cfg *config.Config) (worldStore, error) {
	dataDir := cfg.World.GetDataDir()
	if cfg.World.GetStorage() == "files" {
		return storage.NewFileStorage(dataDir)
	}
	return storage.NewWorldStorage(dataDir)
}

// resolveSeed загружает сид существующего мира или фиксирует новый.
// Нулевой сид в конфигурации означает случайный.
func resolveSeed(cfg *config.Config, store worldStore) (int64, error) {
	seed, found, err := store.LoadSeed()
	if err != nil {
		return 0, err
	}
	if found {
		return seed, nil
	}

	seed = cfg.World.GetSeed()
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seed, store.SaveSeed(seed)
}
