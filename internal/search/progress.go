package search

import "sync"

// ProgressListener receives indexing notifications. Delivery order matches
// emission order within a run; there is no replay, so listeners must be
// registered before the run starts to see its events. Callbacks run on
// traversal goroutines — consumers owning an event loop must marshal
// themselves.
type ProgressListener interface {
	// OnStatus reports a free-text status message with optional
	// current-folder context ("" when not applicable).
	OnStatus(message, folder string)
	// OnProgress is a periodic tick with the folder currently being
	// processed and the cumulative file count.
	OnProgress(folder string, files int)
	// OnComplete fires exactly once per run with the final file count.
	OnComplete(files int)
}

// progressNotifier fans events out to registered listeners.
type progressNotifier struct {
	mu        sync.Mutex
	listeners []ProgressListener
}

func (n *progressNotifier) subscribe(l ProgressListener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

func (n *progressNotifier) status(message, folder string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, l := range n.listeners {
		l.OnStatus(message, folder)
	}
}

func (n *progressNotifier) progress(folder string, files int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, l := range n.listeners {
		l.OnProgress(folder, files)
	}
}

func (n *progressNotifier) complete(files int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, l := range n.listeners {
		l.OnComplete(files)
	}
}
