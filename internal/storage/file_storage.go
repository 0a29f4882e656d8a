package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/annel0/blockforge/internal/block"
	"github.com/annel0/blockforge/internal/chunk"
	"github.com/annel0/blockforge/internal/vec"
	"github.com/annel0/blockforge/internal/world"
)

// FileStorage хранит каждый чанк в отдельном файле со сжатием zstd.
// Формат переносимый: сохранение можно скопировать между машинами
// простым копированием директории.
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
}

var _ world.Persistence = (*FileStorage)(nil)

// NewFileStorage создаёт файловое хранилище в указанной директории
func NewFileStorage(basePath string) (*FileStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию %s: %w", basePath, err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать zstd-кодер: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать zstd-декодер: %w", err)
	}

	return &FileStorage{
		basePath: basePath,
		encoder:  encoder,
		decoder:  decoder,
	}, nil
}

// Close освобождает ресурсы кодеков
func (fs *FileStorage) Close() error {
	fs.encoder.Close()
	fs.decoder.Close()
	return nil
}

func (fs *FileStorage) chunkFilename(cx, cz int) string {
	return filepath.Join(fs.basePath, fmt.Sprintf("chunk_%d_%d.json.zst", cx, cz))
}

func (fs *FileStorage) metaFilename() string {
	return filepath.Join(fs.basePath, "world.json")
}

// SaveChunk сохраняет полное содержимое чанка в сжатый файл
func (fs *FileStorage) SaveChunk(cx, cz int, blocks *[chunk.Volume]block.ID) error {
	record := chunkRecord{
		Coords: vec.Vec2{X: cx, Z: cz},
		Blocks: blocks[:],
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("ошибка сериализации чанка (%d,%d): %w", cx, cz, err)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	compressed := fs.encoder.EncodeAll(data, nil)
	if err := os.WriteFile(fs.chunkFilename(cx, cz), compressed, 0644); err != nil {
		return fmt.Errorf("ошибка записи чанка (%d,%d): %w", cx, cz, err)
	}
	return nil
}

// LoadChunk загружает чанк из файла. Возвращает nil без ошибки,
// если файла нет.
func (fs *FileStorage) LoadChunk(cx, cz int) (*[chunk.Volume]block.ID, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	compressed, err := os.ReadFile(fs.chunkFilename(cx, cz))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения чанка (%d,%d): %w", cx, cz, err)
	}

	data, err := fs.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки чанка (%d,%d): %w", cx, cz, err)
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

// SaveSeed сохраняет сид мира в world.json
func (fs *FileStorage) SaveSeed(seed int64) error {
	data, err := json.MarshalIndent(worldMeta{Seed: seed}, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации метаданных: %w", err)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err := os.WriteFile(fs.metaFilename(), data, 0644); err != nil {
		return fmt.Errorf("ошибка записи метаданных: %w", err)
	}
	return nil
}

// LoadSeed загружает сид мира. Второй результат false, если мир новый.
func (fs *FileStorage) LoadSeed() (int64, bool, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.metaFilename())
	if os.IsNotExist(err) {
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
