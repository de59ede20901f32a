package search

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// TraversalEngine walks directory trees, inserting discovered files into the
// catalog and emitting telemetry on the notifier. One engine serves all roots
// of a run; the semaphore bounds total traversal parallelism across them.
type TraversalEngine struct {
	cfg     Config
	catalog *FileCatalog
	notify  *progressNotifier
	exclude *excluder
	sem     chan struct{}
}

func newTraversalEngine(cfg Config, catalog *FileCatalog, notify *progressNotifier) *TraversalEngine {
	return &TraversalEngine{
		cfg:     cfg,
		catalog: catalog,
		notify:  notify,
		exclude: newExcluder(cfg),
		sem:     make(chan struct{}, cfg.MaxWorkers),
	}
}

// Walk descends from root, entering at most maxDepth directory levels
// (the root itself is level 1). A file more than maxDepth path components
// below the root is never indexed.
func (t *TraversalEngine) Walk(root string, run *runState, maxDepth int) {
	t.walkDir(root, run, 1, maxDepth)
}

func (t *TraversalEngine) walkDir(dir string, run *runState, depth, maxDepth int) {
	if run.cancelled() || depth > maxDepth {
		return
	}

	// Record before processing: exactly one worker enters a directory, and
	// symlink routes back to it collide on the resolved path.
	if !run.visited.MarkVisited(normalizePath(dir)) {
		return
	}

	if t.exclude.shouldSkip(dir) {
		log.Debug().Str("dir", dir).Msg("excluded subtree")
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Per-directory failures never abort the run; the subtree's files
		// are simply absent from the catalog.
		log.Debug().Str("dir", dir).Err(err).Msg("cannot read directory")
		t.notify.status("cannot read "+dir+": "+err.Error(), dir)
		return
	}

	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, name))
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			if !t.cfg.FollowSymlinks {
				continue
			}
			// ReadDir reports the link itself; resolve to see whether it
			// leads to a directory.
			target := filepath.Join(dir, name)
			if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
				subdirs = append(subdirs, target)
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			log.Debug().Str("dir", dir).Str("name", name).Err(infoErr).Msg("stat failed")
			continue
		}
		t.catalog.Insert(newFileEntry(dir, name, info.Size(), info.ModTime()))
	}

	if n := run.folders.Add(1); n%progressStride == 0 {
		t.notify.progress(dir, t.catalog.Count())
	}

	if run.cancelled() {
		return
	}

	// Few siblings: recurse on this goroutine, fan-out overhead is not
	// worth it. Many siblings: hand children to workers while the shared
	// semaphore has capacity, recurse inline otherwise.
	if len(subdirs) < parallelThreshold {
		for _, sub := range subdirs {
			t.walkDir(sub, run, depth+1, maxDepth)
		}
		return
	}

	var wg sync.WaitGroup
	for _, sub := range subdirs {
		select {
		case t.sem <- struct{}{}:
			wg.Add(1)
			go func(d string) {
				defer func() {
					<-t.sem
					wg.Done()
				}()
				t.walkDir(d, run, depth+1, maxDepth)
			}(sub)
		default:
			t.walkDir(sub, run, depth+1, maxDepth)
		}
	}
	wg.Wait()
}
