package index

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/anydocs"
)

// Ensure Handle implements anydocs.IndexService and anydocs.IndexSwitcher.
var (
	_ anydocs.IndexService  = (*Handle)(nil)
	_ anydocs.IndexSwitcher = (*Handle)(nil)
)

// Handle holds the active index snapshot. Reads load the current snapshot
// without locking; builds are serialized and publish a complete new
// snapshot with a single atomic store.
type Handle struct {
	builder anydocs.IndexBuilder
	logger  *slog.Logger

	current atomic.Pointer[anydocs.Index]

	mu         sync.Mutex // serializes builds and guards the fields below
	dir        string
	name       string
	generation uint64
	attempted  bool
}

// NewHandle creates a Handle that builds snapshots with builder.
func NewHandle(builder anydocs.IndexBuilder, logger *slog.Logger) *Handle {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handle{builder: builder, logger: logger}
}

// Open sets the directory and name of the documentation set without
// building it. The first read builds the index.
func (h *Handle) Open(dir, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dir, h.name = dir, name
	h.attempted = false
}

// Switch builds an index for a different documentation set and publishes
// it. On failure the previous snapshot stays active.
func (h *Handle) Switch(ctx context.Context, dir, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.build(ctx, dir, name); err != nil {
		return err
	}
	h.dir, h.name = dir, name
	return nil
}

// Refresh rebuilds the current documentation set and publishes the result.
func (h *Handle) Refresh(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dir == "" {
		return anydocs.Errorf(anydocs.EINVALID, "no documentation set selected")
	}
	return h.build(ctx, h.dir, h.name)
}

// Index returns the active snapshot, building it on first access. It
// returns nil when no documentation set is selected or the lazy build
// failed.
func (h *Handle) Index() *anydocs.Index {
	if idx := h.current.Load(); idx != nil {
		return idx
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if idx := h.current.Load(); idx != nil || h.attempted || h.dir == "" {
		return idx
	}
	h.attempted = true
	if err := h.build(context.Background(), h.dir, h.name); err != nil {
		h.logger.Error("index build failed", "name", h.name, "dir", h.dir, "error", err)
	}
	return h.current.Load()
}

// build must be called with mu held.
func (h *Handle) build(ctx context.Context, dir, name string) error {
	idx, err := h.builder.BuildIndex(ctx, dir, name)
	if err != nil {
		return err
	}
	h.generation++
	idx.Generation = h.generation
	h.current.Store(idx)
	return nil
}

// Search ranks the active snapshot against query.
func (h *Handle) Search(query string, opts anydocs.SearchOptions) []*anydocs.Section {
	return Search(h.Index(), query, opts)
}

// Overview renders the active snapshot's overview.
func (h *Handle) Overview() string {
	return h.Index().Overview()
}

// Files returns the file identifiers of the active snapshot.
func (h *Handle) Files() []string {
	return h.Index().FileList()
}

// FileTOC returns a file's table of contents from the active snapshot.
func (h *Handle) FileTOC(file string) (string, bool) {
	return h.Index().FileTOC(file)
}

// Section returns a section of the active snapshot by ID.
func (h *Handle) Section(id string) (*anydocs.Section, bool) {
	return h.Index().Section(id)
}

// SectionsByTitle returns sections of the active snapshot by title.
func (h *Handle) SectionsByTitle(title, file string) []*anydocs.Section {
	return h.Index().SectionsByTitle(title, file)
}

// Stats describes the active snapshot.
func (h *Handle) Stats() anydocs.IndexStats {
	return h.Index().Stats()
}
