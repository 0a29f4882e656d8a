// Package storage содержит бэкенды сохранения мира: BadgerDB для основной
// базы и файловый вариант со сжатием для переносимых сохранений.
// Оба реализуют world.Persistence.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger/v3"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/chunk"
	"github.com/annel0/blockforge/internal/vec"
	"github.com/annel0/blockforge/internal/world"
)

// WorldStorage хранит чанки и метаданные мира в BadgerDB
type WorldStorage struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool
}

// chunkRecord — сериализуемое содержимое чанка
type chunkRecord struct {
	Coords vec.Vec2   `json:"coords"`
	Blocks []block.ID `json:"blocks"`
}

// worldMeta — метаданные мира
type worldMeta struct {
	Seed int64 `json:"seed"`
}

var _ world.Persistence = (*WorldStorage)(nil)

// NewWorldStorage открывает хранилище мира в указанной директории
func NewWorldStorage(dataPath string) (*WorldStorage, error) {
	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &WorldStorage{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
	}, nil
}

// Close закрывает хранилище данных
func (ws *WorldStorage) Close() error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	if !ws.isReady {
		return nil
	}

	ws.isReady = false
	return ws.db.Close()
}

func chunkKey(cx, cz int) []byte {
	return []byte(fmt.Sprintf("chunk:%d:%d", cx, cz))
}

var metaSeedKey = []byte("meta:seed")

// SaveChunk сохраняет полное содержимое чанка
func (ws *WorldStorage) SaveChunk(cx, cz int, blocks *[chunk.Volume]block.ID) error {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	record := chunkRecord{
		Coords: vec.Vec2{X: cx, Z: cz},
		Blocks: blocks[:],
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("ошибка сериализации чанка (%d,%d): %w", cx, cz, err)
	}

	return ws.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(cx, cz), data)
	})
}

// LoadChunk загружает содержимое чанка. Возвращает nil без ошибки,
// если чанк никогда не сохранялся.
func (ws *WorldStorage) LoadChunk(cx, cz int) (*[chunk.Volume]block.ID, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var data []byte
	err := ws.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chunkKey(cx, cz))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения чанка (%d,%d): %w", cx, cz, err)
	}

	var record chunkRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("ошибка десериализации чанка (%d,%d): %w", cx, cz, err)
	}
	if len(record.Blocks) != chunk.Volume {
		return nil, fmt.Errorf("повреждённый чанк (%d,%d): %d блоков вместо %d",
			cx, cz, len(record.Blocks), chunk.Volume)
	}

	var blocks [chunk.Volume]block.ID
	copy(blocks[:], record.Blocks)
	return &blocks, nil
}

// SaveSeed сохраняет сид мира
func (ws *WorldStorage) SaveSeed(seed int64) error {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	data, err := json.Marshal(worldMeta{Seed: seed})
	if err != nil {
		return fmt.Errorf("ошибка сериализации метаданных: %w", err)
	}

	return ws.db.Update(func(txn *badger.Txn) error {
		return txn.Set(metaSeedKey, data)
	})
}

// LoadSeed загружает сид мира. Второй результат false, если мир новый.
func (ws *WorldStorage) LoadSeed() (int64, bool, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return 0, false, fmt.Errorf("хранилище не готово")
	}

	var data []byte
	err := ws.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaSeedKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("ошибка чтения метаданных: %w", err)
	}

	var meta worldMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return 0, false, fmt.Errorf("ошибка десериализации метаданных: %w", err)
	}
	return meta.Seed, true, nil
}
