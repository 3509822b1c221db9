package store

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"stone-price-service/internal/catalog/model"
	"stone-price-service/internal/catalog/table"
	"stone-price-service/internal/fileio"
)

// данные старше двух суток считаем несвежими
const staleAfter = 48 * time.Hour

// Store держит снапшот синхронизированной таблицы каталога. Файл пишет
// внешний синхронизатор; Store только читает его и перечитывает, когда
// меняется mtime. При неудачной перезагрузке отдаётся последний удачный
// снапшот. Снапшот считается неизменяемым: скоринг работает по копиям.
type Store struct {
	path string

	mu       sync.RWMutex
	products []model.Product
	modTime  time.Time
	loadedAt time.Time
}

type Info struct {
	Path     string    `json:"path"`
	Rows     int       `json:"rows"`
	ModTime  time.Time `json:"modTime"`
	LoadedAt time.Time `json:"loadedAt"`
	Stale    bool      `json:"stale"`
}

func New(path string) *Store {
	return &Store{path: path}
}

// Products возвращает актуальный снапшот, при необходимости перечитав файл.
func (s *Store) Products() ([]model.Product, error) {
	st, err := os.Stat(s.path)
	if err != nil {
		return s.cached(err)
	}

	s.mu.RLock()
	fresh := s.products != nil && st.ModTime().Equal(s.modTime)
	rows := s.products
	s.mu.RUnlock()
	if fresh {
		return rows, nil
	}
	return s.reload(st.ModTime())
}

func (s *Store) reload(modTime time.Time) ([]model.Product, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return s.cached(err)
	}
	defer f.Close()

	maps, err := fileio.ReadAnyMaps(f, filepath.Base(s.path), 1)
	if err != nil {
		return s.cached(err)
	}
	products := table.Products(maps)

	s.mu.Lock()
	s.products = products
	s.modTime = modTime
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Info().Str("path", s.path).Int("rows", len(products)).Msg("catalogue loaded")
	return products, nil
}

// cached — последний удачный снапшот вместо ошибки, если он есть.
func (s *Store) cached(err error) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.products != nil {
		log.Warn().Err(err).Msg("catalogue reload failed, serving cached snapshot")
		return s.products, nil
	}
	return nil, err
}

func (s *Store) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Info{
		Path:     s.path,
		Rows:     len(s.products),
		ModTime:  s.modTime,
		LoadedAt: s.loadedAt,
		Stale:    !s.modTime.IsZero() && time.Since(s.modTime) > staleAfter,
	}
}
