// Package source reads source files through a bounded in-memory cache so the
// scan and the cross-reference pass share one read per file.
package source

import (
	"os"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of files kept when no size is configured.
const DefaultSize = 1024

// Cache holds recently read file contents keyed by absolute path.
type Cache struct {
	files *lru.Cache[string, []byte]
	reads int
}

// NewCache returns a cache holding up to size files.
// A size of zero or less selects DefaultSize.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	files, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, errors.Wrap(err, "creating source cache")
	}
	return &Cache{files: files}, nil
}

// Read returns the contents of path, from the cache when present.
func (c *Cache) Read(path string) ([]byte, error) {
	if src, ok := c.files.Get(path); ok {
		return src, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	c.reads++
	c.files.Add(path, src)
	return src, nil
}

// DiskReads returns how many reads went to disk.
func (c *Cache) DiskReads() int {
	return c.reads
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	return c.files.Len()
}
