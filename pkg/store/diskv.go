package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const tempDirName = ".tmp"

// Disk is a KV backed by diskv: one file per key under BasePath.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// Load creates a diskv-backed KV using the provided config.
func Load(cfg Config) (*Disk, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	basePath := strings.TrimSpace(cfg.BasePath())
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:  basePath,
		Transform: flatTransform,
		// Writes land in TempDir first and are renamed into place, so a
		// reader never sees a half-written collection.
		TempDir: filepath.Join(basePath, tempDirName),
		// No read cache: other processes rewrite the same files.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

// BasePath returns the directory holding the key files.
func (p *Disk) BasePath() string {
	return p.basePath
}

func (p *Disk) Get(key string) ([]byte, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *Disk) Set(key string, value []byte) error {
	if err := p.d.Write(key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *Disk) Delete(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func flatTransform(string) []string {
	return []string{}
}
