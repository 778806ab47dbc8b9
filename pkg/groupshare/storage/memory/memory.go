// Package memory provides an in-memory blob store, intended for tests.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/groupshare/groupshare/pkg/groupshare"
)

type object struct {
	data        []byte
	contentType string
	metadata    map[string]string
	updatedAt   time.Time
}

// Backend is an in-memory implementation of groupshare.BlobStore.
type Backend struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]*object
}

// New creates a new in-memory blob store.
func New() *Backend {
	return &Backend{
		namespaces: make(map[string]map[string]*object),
	}
}

func (b *Backend) NamespaceExists(ctx context.Context, namespace string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.namespaces[namespace]
	return ok, nil
}

func (b *Backend) CreateNamespace(ctx context.Context, namespace string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.namespaces[namespace]; !ok {
		b.namespaces[namespace] = make(map[string]*object)
	}
	return nil
}

func (b *Backend) RemoveNamespace(ctx context.Context, namespace string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.namespaces, namespace)
	return nil
}

func (b *Backend) Put(ctx context.Context, namespace, key string, r io.Reader, params groupshare.PutParams) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ns, ok := b.namespaces[namespace]
	if !ok {
		return fmt.Errorf("namespace %s not found", namespace)
	}

	metadata := make(map[string]string, len(params.Metadata))
	for k, v := range params.Metadata {
		metadata[k] = v
	}
	ns[key] = &object{
		data:        data,
		contentType: params.ContentType,
		metadata:    metadata,
		updatedAt:   time.Now().UTC(),
	}
	return nil
}

func (b *Backend) Get(ctx context.Context, namespace, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, err := b.lookup(namespace, key)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (b *Backend) Stat(ctx context.Context, namespace, key string) (*groupshare.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, err := b.lookup(namespace, key)
	if err != nil {
		return nil, err
	}

	metadata := make(map[string]string, len(obj.metadata))
	for k, v := range obj.metadata {
		metadata[k] = v
	}
	return &groupshare.ObjectMeta{
		Key:         key,
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
		UpdatedAt:   obj.updatedAt,
		Metadata:    metadata,
	}, nil
}

func (b *Backend) List(ctx context.Context, namespace string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ns, ok := b.namespaces[namespace]
	if !ok {
		return nil, nil
	}

	keys := make([]string, 0, len(ns))
	for key := range ns {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *Backend) Remove(ctx context.Context, namespace, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ns, ok := b.namespaces[namespace]; ok {
		delete(ns, key)
	}
	return nil
}

func (b *Backend) lookup(namespace, key string) (*object, error) {
	ns, ok := b.namespaces[namespace]
	if !ok {
		return nil, groupshare.ErrObjectNotFound
	}
	obj, ok := ns[key]
	if !ok {
		return nil, groupshare.ErrObjectNotFound
	}
	return obj, nil
}
