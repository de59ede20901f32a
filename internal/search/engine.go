package search

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
)

// Engine is the in-process API surface consumed by the presentation layer.
// It owns the catalog, the icon cache and the notification fan-out, and runs
// at most one indexing run at a time. Search is callable at any moment,
// including mid-run, and sees the partial catalog.
type Engine struct {
	catalog *FileCatalog
	notify  *progressNotifier
	icons   *iconStore

	running atomic.Bool

	mu         sync.Mutex // guards current and maxResults
	current    *runState
	maxResults int
}

// NewEngine creates an engine with an empty catalog.
func NewEngine() *Engine {
	return &Engine{
		catalog:    NewFileCatalog(),
		notify:     &progressNotifier{},
		icons:      newIconStore(),
		maxResults: DefaultMaxResults,
	}
}

// Subscribe registers a listener for subsequent runs. Events of a run that
// started emitting before registration are not replayed.
func (e *Engine) Subscribe(l ProgressListener) {
	e.notify.subscribe(l)
}

// FileCount reports the number of cataloged files, monotonic during a run.
func (e *Engine) FileCount() int {
	return e.catalog.Count()
}

// IsRunning reports whether an indexing run is active.
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// Search evaluates term against the current catalog.
func (e *Engine) Search(term string) []FileEntry {
	e.mu.Lock()
	maxResults := e.maxResults
	e.mu.Unlock()
	return newQueryEngine(e.catalog, maxResults).Search(term)
}

// FileIcon returns the decoration for a result row, memoized in the bounded
// cache.
func (e *Engine) FileIcon(path string) Icon {
	return e.icons.get(path, "list")
}

// StartIndexing clears the catalog and begins a run with cfg. If a run is
// already active the call is a no-op and returns false.
func (e *Engine) StartIndexing(cfg Config) bool {
	if !e.running.CompareAndSwap(false, true) {
		log.Info().Msg("indexing already running, start ignored")
		return false
	}
	cfg = cfg.withDefaults()
	run := newRunState()

	e.mu.Lock()
	e.current = run
	e.maxResults = cfg.MaxResults
	e.mu.Unlock()

	e.catalog.Clear()
	go e.drive(cfg, run)
	return true
}

// StopIndexing requests cancellation of the active run; no-op when idle.
// Cancellation is cooperative: the run winds down within roughly one
// directory enumeration per worker.
func (e *Engine) StopIndexing() {
	e.mu.Lock()
	run := e.current
	e.mu.Unlock()
	if run != nil && e.running.Load() {
		run.cancel()
	}
}

// Wait blocks until the current run (if any) finishes.
func (e *Engine) Wait() {
	e.mu.Lock()
	run := e.current
	e.mu.Unlock()
	if run != nil {
		<-run.done
	}
}

func (e *Engine) drive(cfg Config, run *runState) {
	defer close(run.done)
	defer e.running.Store(false)

	logger := log.With().Str("run", run.id.String()).Logger()
	logger.Info().Str("mode", cfg.Mode.String()).Msg("indexing run started")
	e.notify.status("indexing started ("+cfg.Mode.String()+" mode)", "")

	if err := e.runWalk(cfg, run); err != nil {
		// Whatever was inserted before the failure stays queryable; there
		// is no partial rollback.
		logger.Error().Err(err).Msg("indexing run failed")
		e.notify.status(err.Error(), "")
		return
	}

	total := e.catalog.Count()
	logger.Info().Int("files", total).Int64("folders", run.folders.Load()).Msg("indexing run finished")
	e.notify.complete(total)
}

// runWalk performs the actual run. A panic anywhere in the driver surfaces
// as an error so the engine is always left not-running.
func (e *Engine) runWalk(cfg Config, run *runState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("indexing failed: %v", r)
		}
	}()

	roots := cfg.Roots
	if len(roots) == 0 {
		enum := NewVolumeEnumerator(func(msg string) { e.notify.status(msg, "") })
		roots = enum.ListRoots()
	}

	walker := newTraversalEngine(cfg, e.catalog, e.notify)
	primary, priority, remaining := planRoots(roots, cfg)

	// The primary root runs alone and first, at full depth: time to first
	// result on the most valuable volume beats total coverage.
	if primary != "" && !run.cancelled() {
		walker.Walk(primary, run, cfg.MaxDepth)
	}

	for _, batch := range [][]string{priority, remaining} {
		if len(batch) == 0 {
			continue
		}
		p := pool.New().WithMaxGoroutines(cfg.MaxWorkers)
		for _, root := range batch {
			depth := cfg.MaxDepth
			if cfg.PrimaryRoot != "" {
				depth = cfg.SecondaryMaxDepth
			}
			p.Go(func() {
				if run.cancelled() {
					return
				}
				walker.Walk(root, run, depth)
			})
		}
		p.Wait()
	}
	return nil
}

// planRoots splits the discovered roots into the primary root, the priority
// batch, and the rest, deduplicated case-insensitively.
func planRoots(roots []string, cfg Config) (primary string, priority, remaining []string) {
	isPrimary := func(root string) bool {
		return cfg.PrimaryRoot != "" && strings.EqualFold(root, cfg.PrimaryRoot)
	}
	inPriority := func(root string) bool {
		for _, p := range cfg.PriorityRoots {
			if strings.EqualFold(root, p) {
				return true
			}
		}
		return false
	}

	if cfg.PrimaryRoot != "" {
		primary = cfg.PrimaryRoot
	}
	seen := make(map[string]bool)
	for _, root := range roots {
		key := strings.ToLower(root)
		if seen[key] || isPrimary(root) {
			continue
		}
		seen[key] = true
		if inPriority(root) {
			priority = append(priority, root)
		} else {
			remaining = append(remaining, root)
		}
	}
	return primary, priority, remaining
}
