// Package storage implementa ports.KeyValueStore sobre goleveldb: es el "localStorage"
// de la consola (token, rol, preferencias de columnas y tema).
package storage

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	lvstorage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/jhoicas/consola-negocios/internal/application/ports"
)

var _ ports.KeyValueStore = (*LevelDBStore)(nil)

// LevelDBStore almacén clave/valor durable.
type LevelDBStore struct {
	db *leveldb.DB
}

// Open abre (o crea) la base en el directorio path.
func Open(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: abrir %s: %w", path, err)
	}
	return &LevelDBStore{db: db}, nil
}

// OpenMemory base en memoria; se pierde al cerrar el proceso.
func OpenMemory() (*LevelDBStore, error) {
	db, err := leveldb.Open(lvstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("storage: abrir en memoria: %w", err)
	}
	return &LevelDBStore{db: db}, nil
}

func (s *LevelDBStore) Get(key string) (string, bool, error) {
	v, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: leer %s: %w", key, err)
	}
	return string(v), true, nil
}

func (s *LevelDBStore) Set(key, value string) error {
	if err := s.db.Put([]byte(key), []byte(value), nil); err != nil {
		return fmt.Errorf("storage: escribir %s: %w", key, err)
	}
	return nil
}

func (s *LevelDBStore) Delete(keys ...string) error {
	batch := new(leveldb.Batch)
	for _, k := range keys {
		batch.Delete([]byte(k))
	}
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("storage: borrar: %w", err)
	}
	return nil
}

// Close libera la base.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}
