package parser

import (
	"hash/crc32"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/conneroisu/mvcgen/internal/types"
)

// DefaultCacheSize bounds the number of files remembered per kind.
const DefaultCacheSize = 512

// Cache remembers parse results by file path and content checksum so that a
// rebuild only re-parses files whose content changed.
type Cache struct {
	controllers *lru.Cache[string, cachedController]
	views       *lru.Cache[string, cachedView]
	crcTable    *crc32.Table

	hits   atomic.Int64
	misses atomic.Int64
}

type cachedController struct {
	sum uint32
	// controllers holds zero or one controller; files without routed
	// actions are cached too.
	controllers []types.Controller
}

type cachedView struct {
	sum  uint32
	view types.View
}

// NewCache creates a cache holding up to size entries per kind.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	controllers, err := lru.New[string, cachedController](size)
	if err != nil {
		return nil, err
	}
	views, err := lru.New[string, cachedView](size)
	if err != nil {
		return nil, err
	}

	return &Cache{
		controllers: controllers,
		views:       views,
		crcTable:    crc32.MakeTable(crc32.Castagnoli),
	}, nil
}

// Checksum hashes file content the way cache entries are keyed.
func (c *Cache) Checksum(content []byte) uint32 {
	return crc32.Checksum(content, c.crcTable)
}

func (c *Cache) controller(path string, sum uint32) ([]types.Controller, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.controllers.Get(path)
	if !ok || entry.sum != sum {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return entry.controllers, true
}

func (c *Cache) putController(path string, sum uint32, controllers []types.Controller) {
	if c == nil {
		return
	}
	c.controllers.Add(path, cachedController{sum: sum, controllers: controllers})
}

func (c *Cache) view(path string, sum uint32) (types.View, bool) {
	if c == nil {
		return types.View{}, false
	}
	entry, ok := c.views.Get(path)
	if !ok || entry.sum != sum {
		c.misses.Add(1)
		return types.View{}, false
	}
	c.hits.Add(1)
	return entry.view, true
}

func (c *Cache) putView(path string, sum uint32, view types.View) {
	if c == nil {
		return
	}
	c.views.Add(path, cachedView{sum: sum, view: view})
}

// Remove forgets path, e.g. after the file was deleted.
func (c *Cache) Remove(path string) {
	if c == nil {
		return
	}
	c.controllers.Remove(path)
	c.views.Remove(path)
}

// Stats returns the number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.controllers.Len() + c.views.Len()
}
