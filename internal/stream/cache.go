package stream

import (
	"fmt"
	"sync"

	"surface-renderer/internal/camera"
)

// frameKey identifies an encoded frame by viewport and every camera field
// that changes the image, rounded so that a settled camera maps to a stable
// key. Aspect follows from the viewport.
type frameKey string

func keyFor(cam camera.Perspective, w, h int) frameKey {
	return frameKey(fmt.Sprintf("%dx%d|%.4f,%.4f,%.4f|%.4f,%.4f,%.4f|%.4f,%.4f,%.4f|%.2f|%g,%g",
		w, h,
		cam.Position[0], cam.Position[1], cam.Position[2],
		cam.Target[0], cam.Target[1], cam.Target[2],
		cam.Up[0], cam.Up[1], cam.Up[2],
		cam.FOV, cam.Near, cam.Far))
}

// frameCache is a concurrency-safe cache of encoded frames shared by all
// connections. When full it is emptied wholesale.
type frameCache struct {
	mu    sync.RWMutex
	items map[frameKey][]byte
	limit int
}

func newFrameCache(limit int) *frameCache {
	return &frameCache{items: make(map[frameKey][]byte), limit: limit}
}

// Get returns the cached frame for key, encoding it with fn on a miss.
func (c *frameCache) Get(key frameKey, fn func() ([]byte, error)) ([]byte, error) {
	// Fast path: read lock
	c.mu.RLock()
	if data, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	// Slow path: render and encode outside the lock
	data, err := fn()
	if err != nil {
		return nil, err
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[key]; ok {
		return existing, nil
	}
	if c.limit > 0 && len(c.items) >= c.limit {
		clear(c.items)
	}
	c.items[key] = data
	return data, nil
}

// Len returns the number of cached frames.
func (c *frameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
