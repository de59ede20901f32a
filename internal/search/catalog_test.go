package search

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogInsertAndCount(t *testing.T) {
	c := NewFileCatalog()
	assert.Equal(t, 0, c.Count())

	c.Insert(newFileEntry("/docs", "report.txt", 10, time.Now()))
	c.Insert(newFileEntry("/docs", "notes.md", 20, time.Now()))

	assert.Equal(t, 2, c.Count())
	assert.Len(t, c.Snapshot(), 2)
	assert.Len(t, c.ByExtension(".txt"), 1)
	assert.Len(t, c.ByExtension(".md"), 1)
	assert.Nil(t, c.ByExtension(".pdf"))
}

func TestCatalogExtensionNormalization(t *testing.T) {
	c := NewFileCatalog()
	c.Insert(newFileEntry("/x", "UPPER.TXT", 1, time.Now()))
	c.Insert(newFileEntry("/x", "noext", 1, time.Now()))

	require.Len(t, c.ByExtension(".txt"), 1)
	assert.Equal(t, "UPPER.TXT", c.ByExtension(".txt")[0].Name)
	require.Len(t, c.ByExtension(""), 1)
	assert.Equal(t, "noext", c.ByExtension("")[0].Name)
}

// Every bucket entry must also exist in the flat collection, and each entry
// lands in exactly one bucket.
func TestCatalogBucketInvariant(t *testing.T) {
	c := NewFileCatalog()
	exts := []string{".txt", ".md", ".go", ""}
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("file-%d%s", i, exts[i%len(exts)])
		c.Insert(newFileEntry("/data", name, int64(i), time.Now()))
	}

	flat := make(map[string]bool)
	for _, e := range c.Snapshot() {
		flat[e.Path] = true
	}

	bucketed := 0
	for _, ext := range exts {
		for _, e := range c.ByExtension(ext) {
			assert.True(t, flat[e.Path], "bucket entry %s missing from flat collection", e.Path)
			assert.Equal(t, ext, e.Extension)
			bucketed++
		}
	}
	assert.Equal(t, c.Count(), bucketed)
}

func TestCatalogConcurrentInsert(t *testing.T) {
	c := NewFileCatalog()

	const workers = 8
	const perWorker = 500

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				name := fmt.Sprintf("w%d-f%d.txt", w, i)
				c.Insert(newFileEntry("/data", name, 1, time.Now()))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, c.Count())
	assert.Len(t, c.Snapshot(), workers*perWorker)
	assert.Len(t, c.ByExtension(".txt"), workers*perWorker)
}

func TestCatalogClear(t *testing.T) {
	c := NewFileCatalog()
	c.Insert(newFileEntry("/docs", "report.txt", 10, time.Now()))
	c.Clear()

	assert.Equal(t, 0, c.Count())
	assert.Empty(t, c.Snapshot())
	assert.Nil(t, c.ByExtension(".txt"))

	// Usable after Clear.
	c.Insert(newFileEntry("/docs", "again.txt", 10, time.Now()))
	assert.Equal(t, 1, c.Count())
}

// Snapshot must stay stable while inserts continue.
func TestCatalogSnapshotIsStable(t *testing.T) {
	c := NewFileCatalog()
	for i := 0; i < 10; i++ {
		c.Insert(newFileEntry("/d", fmt.Sprintf("f%d.txt", i), 1, time.Now()))
	}

	snap := c.Snapshot()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			c.Insert(newFileEntry("/d", fmt.Sprintf("late-%d.txt", i), 1, time.Now()))
		}
	}()
	<-done

	assert.Len(t, snap, 10)
	assert.Equal(t, 1010, c.Count())
}
