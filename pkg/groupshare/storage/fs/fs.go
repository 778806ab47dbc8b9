// Package fs provides a filesystem blob store. Namespaces map to
// directories under the base directory; object user metadata lives in a
// JSON sidecar next to each object file.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/groupshare/groupshare/pkg/groupshare"
)

// Config options for the filesystem backend.
type Config struct {
	BaseDir string // Base directory holding one subdirectory per namespace
}

// Backend is a filesystem implementation of groupshare.BlobStore.
type Backend struct {
	baseDir string
}

const metaSuffix = ".meta.json"

type sidecar struct {
	ContentType string            `json:"content_type"`
	Metadata    map[string]string `json:"metadata"`
}

// New creates a new filesystem storage backend.
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if err := os.MkdirAll(config.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &Backend{baseDir: config.BaseDir}, nil
}

func (b *Backend) NamespaceExists(ctx context.Context, namespace string) (bool, error) {
	info, err := os.Stat(filepath.Join(b.baseDir, namespace))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (b *Backend) CreateNamespace(ctx context.Context, namespace string) error {
	return os.MkdirAll(filepath.Join(b.baseDir, namespace), 0o755)
}

func (b *Backend) RemoveNamespace(ctx context.Context, namespace string) error {
	return os.RemoveAll(filepath.Join(b.baseDir, namespace))
}

func (b *Backend) Put(ctx context.Context, namespace, key string, r io.Reader, params groupshare.PutParams) error {
	dir := filepath.Join(b.baseDir, namespace)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("namespace %s: %w", namespace, err)
	}

	file, err := os.Create(filepath.Join(dir, key))
	if err != nil {
		return fmt.Errorf("failed to create object file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return fmt.Errorf("failed to write object file: %w", err)
	}

	side, err := json.Marshal(sidecar{ContentType: params.ContentType, Metadata: params.Metadata})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, key+metaSuffix), side, 0o644)
}

func (b *Backend) Get(ctx context.Context, namespace, key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(b.baseDir, namespace, key))
	if os.IsNotExist(err) {
		return nil, groupshare.ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (b *Backend) Stat(ctx context.Context, namespace, key string) (*groupshare.ObjectMeta, error) {
	path := filepath.Join(b.baseDir, namespace, key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, groupshare.ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}

	meta := &groupshare.ObjectMeta{
		Key:       key,
		Size:      info.Size(),
		UpdatedAt: info.ModTime(),
		Metadata:  map[string]string{},
	}

	raw, err := os.ReadFile(path + metaSuffix)
	if err == nil {
		var side sidecar
		if err := json.Unmarshal(raw, &side); err == nil {
			meta.ContentType = side.ContentType
			if side.Metadata != nil {
				meta.Metadata = side.Metadata
			}
		}
	}
	return meta, nil
}

func (b *Backend) List(ctx context.Context, namespace string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(b.baseDir, namespace))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), metaSuffix) {
			continue
		}
		keys = append(keys, entry.Name())
	}
	return keys, nil
}

func (b *Backend) Remove(ctx context.Context, namespace, key string) error {
	path := filepath.Join(b.baseDir, namespace, key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(path + metaSuffix); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
