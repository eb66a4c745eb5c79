package maps

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-pulse/internal/core"
)

//go:embed labs/*.txt
var embeddedLabs embed.FS

const (
	indexFile = "index.txt"
	levelExt  = ".txt"

	// ArenaID names the layout synthesized when nothing could be loaded.
	ArenaID = "generated-arena"
)

// DefaultFallbackFiles is consulted when the source has no index file.
var DefaultFallbackFiles = []string{"lab-01.txt", "lab-02.txt", "lab-03.txt"}

// Registry discovers, caches and activates layouts for one board size.
// It is an ordinary value: create one per game or share one behind its lock.
type Registry struct {
	mu sync.RWMutex

	board     core.Board
	src       fs.FS
	dir       string
	defaultID string
	fallback  []string
	logger    *log.Logger
	rng       *rand.Rand

	loaded bool
	order  []string
	byID   map[string]*Layout
	active *Fitted
}

// Option configures a Registry.
type Option func(*Registry)

// WithFS replaces the embedded level set. Files are read from the root of fsys.
func WithFS(fsys fs.FS) Option {
	return func(r *Registry) { r.src = fsys }
}

// WithDir adds a directory of *.txt levels that override same-named entries.
func WithDir(dir string) Option {
	return func(r *Registry) { r.dir = dir }
}

// WithDefault sets the id preferred by EnsureActive.
func WithDefault(id string) Option {
	return func(r *Registry) { r.defaultID = id }
}

// WithFallbackFiles sets the file list used when there is no index.
func WithFallbackFiles(names ...string) Option {
	return func(r *Registry) { r.fallback = names }
}

// WithLogger sets the logger used for load and activation messages.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// WithSeed seeds the generator used by Random.
func WithSeed(seed int64) Option {
	return func(r *Registry) { r.rng = rand.New(rand.NewSource(seed)) }
}

// NewRegistry creates a registry for the given board.
func NewRegistry(board core.Board, opts ...Option) *Registry {
	sub, _ := fs.Sub(embeddedLabs, "labs")
	r := &Registry{
		board:     board,
		src:       sub,
		defaultID: "lab-01",
		fallback:  DefaultFallbackFiles,
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
		rng:       rand.New(rand.NewSource(1)),
		byID:      make(map[string]*Layout),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Board returns the board the registry fits layouts to.
func (r *Registry) Board() core.Board {
	return r.board
}

// Load reads every layout once. Later calls return nil without touching the
// sources. Files that fail to parse are skipped and reported together.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *Registry) loadLocked() error {
	if r.loaded {
		return nil
	}
	r.loaded = true

	var errs []error
	names, hasIndex, err := r.indexNames()
	if err != nil {
		errs = append(errs, err)
	}
	if !hasIndex {
		names = r.fallback
	}

	for _, name := range names {
		data, err := fs.ReadFile(r.src, name)
		if err != nil {
			// The fallback list is best-effort; index entries must exist
			if !hasIndex && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			errs = append(errs, fmt.Errorf("maps: read %s: %w", name, err))
			continue
		}
		if err := r.addLocked(name, data); err != nil {
			errs = append(errs, err)
		}
	}

	if r.dir != "" {
		errs = append(errs, r.loadDirLocked(r.dir)...)
	}

	r.logger.Info("preloaded layouts", "count", len(r.order), "ids", strings.Join(r.order, ","))
	if err := errors.Join(errs...); err != nil {
		r.logger.Warn("some layouts failed to load", "error", err)
		return err
	}
	return nil
}

// indexNames reads the optional index file.
func (r *Registry) indexNames() ([]string, bool, error) {
	data, err := fs.ReadFile(r.src, indexFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("maps: read index: %w", err)
	}
	return ParseIndex(data), true, nil
}

// ParseIndex returns the level file names listed in an index document.
// Blank lines, ';' comments and names without the level extension are skipped.
func ParseIndex(data []byte) []string {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, ";") || !strings.HasSuffix(s, levelExt) {
			continue
		}
		names = append(names, s)
	}
	return names
}

func (r *Registry) loadDirLocked(dir string) []error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []error{fmt.Errorf("maps: read dir %s: %w", dir, err)}
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && e.Name() != indexFile && strings.EqualFold(filepath.Ext(e.Name()), levelExt) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	var errs []error
	for _, name := range files {
		full := filepath.Join(dir, name)
		data, err := os.ReadFile(full)
		if err != nil {
			errs = append(errs, fmt.Errorf("maps: read %s: %w", full, err))
			continue
		}
		if err := r.addLocked(name, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// addLocked parses one file and stores it under its stem, keeping the first
// discovery position when an id is overridden.
func (r *Registry) addLocked(name string, data []byte) error {
	id := StemID(name)
	l, err := Parse(string(data), ParseOptions{ID: id})
	if err != nil {
		return fmt.Errorf("maps: parse %s: %w", name, err)
	}
	if _, exists := r.byID[id]; !exists {
		r.order = append(r.order, id)
	}
	r.byID[id] = l
	return nil
}

// StemID converts "lab-01.txt" to "lab-01".
func StemID(name string) string {
	base := path.Base(filepath.ToSlash(name))
	return strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base)))
}

// IDs returns the cached layout ids in discovery order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	//nolint:errcheck // load failures are logged and leave partial results
	r.loadLocked()
	return append([]string(nil), r.order...)
}

// Get returns a layout at its authored size.
func (r *Registry) Get(id string) (*Layout, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	//nolint:errcheck // see IDs
	r.loadLocked()
	l, ok := r.byID[id]
	return l, ok
}

// Random returns a uniformly chosen cached layout.
func (r *Registry) Random() (*Layout, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	//nolint:errcheck // see IDs
	r.loadLocked()
	if len(r.order) == 0 {
		return nil, false
	}
	return r.byID[r.order[r.rng.Intn(len(r.order))]], true
}

// Activate fits the named layout to the board and makes it current.
func (r *Registry) Activate(id string) (*Fitted, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	//nolint:errcheck // see IDs
	r.loadLocked()
	return r.activateLocked(id)
}

func (r *Registry) activateLocked(id string) (*Fitted, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, id)
	}
	f := Fit(l, r.board)
	r.active = f
	r.logger.Debug("activated layout", "id", id, "source", fmt.Sprintf("%dx%d", l.W, l.H),
		"board", fmt.Sprintf("%dx%d", r.board.W, r.board.H))
	return f, nil
}

// Active returns the current fitted layout, or nil before any activation.
func (r *Registry) Active() *Fitted {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// EnsureActive guarantees a current layout: the default id if cached, then the
// first discovered layout, then a generated bordered arena.
func (r *Registry) EnsureActive() *Fitted {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		return r.active
	}
	//nolint:errcheck // see IDs
	r.loadLocked()

	if _, ok := r.byID[r.defaultID]; ok {
		f, _ := r.activateLocked(r.defaultID)
		return f
	}
	if len(r.order) > 0 {
		f, _ := r.activateLocked(r.order[0])
		return f
	}

	r.logger.Warn("no layouts found, generating arena")
	r.byID[ArenaID] = Arena(ArenaID, r.board.W, r.board.H)
	r.order = append(r.order, ArenaID)
	f, _ := r.activateLocked(ArenaID)
	return f
}

// Next activates the layout after the current one, wrapping around.
func (r *Registry) Next() (*Fitted, error) {
	return r.cycle(1)
}

// Previous activates the layout before the current one, wrapping around.
func (r *Registry) Previous() (*Fitted, error) {
	return r.cycle(-1)
}

func (r *Registry) cycle(step int) (*Fitted, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	//nolint:errcheck // see IDs
	r.loadLocked()
	if len(r.order) == 0 {
		return nil, fmt.Errorf("%w: registry is empty", ErrUnknownLayout)
	}

	idx := -1
	if r.active != nil {
		for i, id := range r.order {
			if id == r.active.ID {
				idx = i
				break
			}
		}
	}
	if idx < 0 && step < 0 {
		idx = 0 // Previous from nothing lands on the last entry
	}
	next := core.Mod(idx+step, len(r.order))
	return r.activateLocked(r.order[next])
}
