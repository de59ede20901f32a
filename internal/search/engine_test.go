package search

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingListener captures notifications; optional gates let tests hold a
// run open at a known point.
type recordingListener struct {
	mu        sync.Mutex
	statuses  []string
	progress  []int
	completes []int

	completeEntered chan struct{} // closed when OnComplete first fires
	completeGate    chan struct{} // first OnComplete blocks until closed
	gateOnce        sync.Once
}

func newRecordingListener() *recordingListener {
	return &recordingListener{}
}

func newBlockingCompleteListener() *recordingListener {
	return &recordingListener{
		completeEntered: make(chan struct{}),
		completeGate:    make(chan struct{}),
	}
}

func (r *recordingListener) OnStatus(message, folder string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, message)
}

func (r *recordingListener) OnProgress(folder string, files int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, files)
}

func (r *recordingListener) OnComplete(files int) {
	if r.completeEntered != nil {
		r.gateOnce.Do(func() {
			close(r.completeEntered)
			<-r.completeGate
		})
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes = append(r.completes, files)
}

func (r *recordingListener) hasStatusContaining(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.statuses {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func (r *recordingListener) progressTicks() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.progress...)
}

func (r *recordingListener) completions() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.completes...)
}

func TestEngineCompletionEmittedOnce(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"))
	writeFile(t, filepath.Join(root, "sub", "b.txt"))

	rec := newRecordingListener()
	e := NewEngine()
	e.Subscribe(rec)
	require.True(t, e.StartIndexing(Config{Roots: []string{root}}))
	e.Wait()

	require.Equal(t, []int{2}, rec.completions())
	assert.False(t, e.IsRunning())
}

// Starting while a run is active is a no-op: the second call returns false
// and the in-progress catalog is not reset.
func TestEngineStartWhileRunningIsNoOp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docs", "report.txt"))
	writeFile(t, filepath.Join(root, "docs", "notes.md"))

	rec := newBlockingCompleteListener()
	e := NewEngine()
	e.Subscribe(rec)
	require.True(t, e.StartIndexing(Config{Roots: []string{root}}))

	// Hold the run open right before its completion notification: the walk
	// is done, the run is still active.
	<-rec.completeEntered
	assert.True(t, e.IsRunning())
	countMidRun := e.FileCount()
	assert.Equal(t, 2, countMidRun)

	assert.False(t, e.StartIndexing(Config{Roots: []string{root}}),
		"second StartIndexing during an active run must be a no-op")
	assert.Equal(t, countMidRun, e.FileCount(), "file count must not reset mid-run")

	// Queries work against the mid-run snapshot.
	assert.Equal(t, []string{"report.txt"}, resultNames(e.Search("report")))

	close(rec.completeGate)
	e.Wait()
	assert.False(t, e.IsRunning())
	assert.Equal(t, []int{2}, rec.completions())

	// Idle again: a new run is accepted and rebuilds the catalog.
	require.True(t, e.StartIndexing(Config{Roots: []string{root}}))
	e.Wait()
	assert.Equal(t, 2, e.FileCount())
}

func TestEngineStopCancelsRun(t *testing.T) {
	root := t.TempDir()
	const dirs = 40 * 40
	for i := 0; i < 40; i++ {
		for j := 0; j < 40; j++ {
			writeFile(t, filepath.Join(root, fmt.Sprintf("d%02d", i), fmt.Sprintf("s%02d", j), "f.txt"))
		}
	}

	started := make(chan struct{})
	var once sync.Once
	e := NewEngine()
	e.Subscribe(listenerFuncs{
		onProgress: func(string, int) {
			once.Do(func() {
				close(started)
				// Hold this worker until the stop below lands.
				time.Sleep(50 * time.Millisecond)
			})
		},
	})

	require.True(t, e.StartIndexing(Config{Roots: []string{root}, MaxWorkers: 4}))
	<-started
	e.StopIndexing()
	e.Wait()

	assert.False(t, e.IsRunning())
	assert.Less(t, e.FileCount(), dirs, "cancellation should leave the walk incomplete")
}

func TestEngineStopWhenIdleIsNoOp(t *testing.T) {
	e := NewEngine()
	e.StopIndexing()
	e.Wait()
	assert.False(t, e.IsRunning())
}

func TestEngineSearchBeforeAnyRun(t *testing.T) {
	e := NewEngine()
	assert.Empty(t, e.Search("anything"))
	assert.Equal(t, 0, e.FileCount())
}

func TestEnginePrimaryRootDepthPolicy(t *testing.T) {
	primary := t.TempDir()
	secondary := t.TempDir()
	writeFile(t, filepath.Join(primary, "p1", "p2", "p3", "deep-primary.txt"))
	writeFile(t, filepath.Join(secondary, "s1", "s2", "s3", "deep-secondary.txt"))
	writeFile(t, filepath.Join(secondary, "shallow.txt"))

	e := runIndex(t, Config{
		Roots:             []string{primary, secondary},
		PrimaryRoot:       primary,
		MaxDepth:          10,
		SecondaryMaxDepth: 2,
	})

	paths := indexedPaths(e)
	assert.True(t, paths[filepath.Join(primary, "p1", "p2", "p3", "deep-primary.txt")],
		"primary root gets full depth")
	assert.True(t, paths[filepath.Join(secondary, "shallow.txt")])
	assert.False(t, paths[filepath.Join(secondary, "s1", "s2", "s3", "deep-secondary.txt")],
		"secondary roots are depth-capped")
}

func TestEngineRunStatusMessages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"))

	rec := newRecordingListener()
	e := NewEngine()
	e.Subscribe(rec)
	require.True(t, e.StartIndexing(Config{Roots: []string{root}, Mode: ModeMinimal}))
	e.Wait()

	assert.True(t, rec.hasStatusContaining("indexing started (minimal mode)"))
}

func TestEngineFileIcon(t *testing.T) {
	e := NewEngine()

	doc := e.FileIcon("/x/report.txt")
	assert.Equal(t, "document", doc.Kind)

	// Memoized: same path yields the identical derivation.
	assert.Equal(t, doc, e.FileIcon("/x/report.txt"))
	assert.Equal(t, "other", e.FileIcon("/x/unknown.zzz").Kind)
}

// listenerFuncs adapts bare functions to ProgressListener.
type listenerFuncs struct {
	onStatus   func(string, string)
	onProgress func(string, int)
	onComplete func(int)
}

func (l listenerFuncs) OnStatus(m, f string) {
	if l.onStatus != nil {
		l.onStatus(m, f)
	}
}

func (l listenerFuncs) OnProgress(f string, n int) {
	if l.onProgress != nil {
		l.onProgress(f, n)
	}
}

func (l listenerFuncs) OnComplete(n int) {
	if l.onComplete != nil {
		l.onComplete(n)
	}
}
