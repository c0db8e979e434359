// Package render owns the image handles drawn for equipment. Handles are
// cached per type tag, so every weapon of one type shares a single image.
package render

import (
	"context"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Loader produces the image for a cache key.
type Loader interface {
	Load(key string) (image.Image, error)
}

// Keyed is anything with a cache key; inventory.Equipment satisfies it.
type Keyed interface {
	ImageKey() string
}

// Cache lazily loads images and keeps them until ReleaseAll. Each key is
// loaded at most once between releases, even under concurrent callers.
// Failed loads are not cached.
type Cache struct {
	loader Loader
	logger *zap.Logger

	mu     sync.RWMutex
	images map[string]image.Image
	group  singleflight.Group
}

// NewCache returns an empty Cache backed by loader.
//
// Precondition: loader and logger must be non-nil.
func NewCache(loader Loader, logger *zap.Logger) *Cache {
	return &Cache{loader: loader, logger: logger, images: make(map[string]image.Image)}
}

// Image returns the cached image for key, loading it on first use.
func (c *Cache) Image(key string) (image.Image, error) {
	c.mu.RLock()
	img, ok := c.images[key]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		img, ok := c.images[key]
		c.mu.RUnlock()
		if ok {
			return img, nil
		}
		img, err := c.loader.Load(key)
		if err != nil {
			return nil, fmt.Errorf("render: loading %q: %w", key, err)
		}
		c.mu.Lock()
		c.images[key] = img
		c.mu.Unlock()
		c.logger.Debug("image loaded", zap.String("key", key))
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// ImageFor returns the image for item's type tag.
func (c *Cache) ImageFor(item Keyed) (image.Image, error) {
	return c.Image(item.ImageKey())
}

// Preload loads every key concurrently and returns the first error.
func (c *Cache) Preload(ctx context.Context, keys []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, key := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := c.Image(key)
			return err
		})
	}
	return g.Wait()
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ReleaseAll drops every cached image. It is called once at shutdown; later
// calls to Image load again.
func (c *Cache) ReleaseAll() {
	c.mu.Lock()
	n := len(c.images)
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
	c.logger.Info("image cache released", zap.Int("count", n))
}
