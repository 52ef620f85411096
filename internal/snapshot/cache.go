package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DiskCache stores snapshots by Key under a directory.
// Safe for concurrent use.
type DiskCache[K any] struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache opens (creating if needed) a cache rooted at dir.
// An empty dir selects $XDG_CACHE_HOME/tokstream or ~/.cache/tokstream.
func OpenDiskCache[K any](dir string) (*DiskCache[K], error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "tokstream")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache[K]{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache[K]) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache[K]) pathFor(key Key) string {
	return filepath.Join(c.dir, "tokens", key.String()+".mp")
}

// Put writes snap under its key. The file is replaced atomically.
func (c *DiskCache[K]) Put(snap *Snapshot[K]) (err error) {
	if c == nil || snap == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(snap.Key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := Encode(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the snapshot stored for key. It reports false on a miss.
// Snapshots with a different schema count as a miss.
func (c *DiskCache[K]) Get(key Key) (*Snapshot[K], bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	snap, err := Decode[K](f)
	if err != nil {
		// stale or corrupt entries are misses; the next Put replaces them
		return nil, false, nil
	}
	if snap.Key != key {
		return nil, false, nil
	}
	return snap, true, nil
}

// DropAll removes every cached snapshot. Only the tokens subdirectory the
// cache writes to is touched; other files under the root are left alone.
func (c *DiskCache[K]) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	tokens := filepath.Join(c.dir, "tokens")
	old := tokens + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(tokens, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
