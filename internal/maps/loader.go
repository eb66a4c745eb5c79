// Package maps loads ASCII labyrinth levels and fits them onto the live board.
//
// A level file is an optional "WxH [key] [- title]" header followed by grid
// rows: '#' wall, '.' pellet, 'S' spawn (first wins), 'F' food hint, anything
// else open floor. Blank lines and lines starting with ';' or "//" are
// ignored.
package maps

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vovakirdan/arcade-pulse/internal/core"
)

var (
	// ErrBadHeader is returned for a header line that cannot be parsed into positive dimensions.
	ErrBadHeader = errors.New("maps: bad header")
	// ErrNoRows is returned when a level contains no grid rows.
	ErrNoRows = errors.New("maps: no grid rows")
	// ErrRowTooLong is returned in strict mode for a row wider than the declared width.
	ErrRowTooLong = errors.New("maps: row longer than declared width")
	// ErrTooManyRows is returned in strict mode for more rows than the declared height.
	ErrTooManyRows = errors.New("maps: more rows than declared height")
	// ErrUnknownLayout is returned when activating an id the registry does not hold.
	ErrUnknownLayout = errors.New("maps: unknown layout")
)

var (
	headerRe      = regexp.MustCompile(`^(\d+)\s*[xX]\s*(\d+)(.*)$`)
	headerStartRe = regexp.MustCompile(`^\d+\s*[xX]`)
)

// Layout is a parsed level at its authored size. Layouts are shared by the
// registry cache, so callers must not modify Spawn, Foods or Pellet.
type Layout struct {
	ID     string
	Title  string
	W, H   int
	walls  *core.Grid
	Spawn  core.Point // Authored 'S', or a fallback near the center
	Foods  []core.Point
	Pellet []core.Point

	SpawnAuthored bool // Spawn came from an 'S' cell
}

// Walls returns the authored wall grid. Callers must not modify it.
func (l *Layout) Walls() *core.Grid {
	return l.walls
}

// IsWall reports whether the authored cell p is a wall.
func (l *Layout) IsWall(p core.Point) bool {
	return l.walls.At(p)
}

// ParseOptions controls how tolerant Parse is.
type ParseOptions struct {
	ID     string // Stored on the layout; usually the file stem
	Strict bool   // Reject rows past the declared width or height
}

// Parse reads a level description.
func Parse(text string, opts ParseOptions) (*Layout, error) {
	var (
		rows      []string
		w, h      = -1, -1
		title     string
		hasHeader bool
	)

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		raw := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "//") {
			continue
		}

		// Only the first meaningful line may be a header
		if !hasHeader && len(rows) == 0 && headerStartRe.MatchString(trimmed) {
			hw, hh, ht, err := parseHeader(trimmed)
			if err != nil {
				return nil, err
			}
			w, h, title, hasHeader = hw, hh, ht, true
			continue
		}
		rows = append(rows, raw)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("maps: read %s: %w", opts.ID, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoRows, opts.ID)
	}

	if !hasHeader {
		h = len(rows)
		w = 0
		for _, r := range rows {
			w = max(w, len([]rune(r)))
		}
	} else if opts.Strict {
		if len(rows) > h {
			return nil, fmt.Errorf("%w in %q: %d > %d", ErrTooManyRows, opts.ID, len(rows), h)
		}
		for y, r := range rows {
			if n := len([]rune(r)); n > w {
				return nil, fmt.Errorf("%w in %q: row %d has %d cells, want %d", ErrRowTooLong, opts.ID, y, n, w)
			}
		}
	}

	l := &Layout{
		ID:    opts.ID,
		Title: title,
		W:     w,
		H:     h,
		walls: core.NewGrid(w, h),
	}

	for y := 0; y < h; y++ {
		var line []rune
		if y < len(rows) {
			line = []rune(rows[y])
		}
		for x := 0; x < w; x++ {
			ch := ' ' // short rows are padded
			if x < len(line) {
				ch = line[x]
			}
			p := core.Point{X: x, Y: y}
			switch ch {
			case '#':
				l.walls.Set(p, true)
			case '.':
				l.Pellet = append(l.Pellet, p)
			case 'S':
				if !l.SpawnAuthored {
					l.Spawn = p
					l.SpawnAuthored = true
				}
			case 'F':
				l.Foods = append(l.Foods, p)
			}
		}
	}

	if !l.SpawnAuthored {
		l.Spawn = fallbackSpawn(l.walls.At, w, h)
	}
	return l, nil
}

// parseHeader splits "30x25 lab-01 - Corridors" into size and title.
func parseHeader(line string) (w, h int, title string, err error) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, "", fmt.Errorf("%w: %q", ErrBadHeader, line)
	}
	w, errW := strconv.Atoi(m[1])
	h, errH := strconv.Atoi(m[2])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, "", fmt.Errorf("%w: %q", ErrBadHeader, line)
	}
	rest := m[3]
	if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t") {
		// "30x25abc" is not a header
		return 0, 0, "", fmt.Errorf("%w: %q", ErrBadHeader, line)
	}
	return w, h, headerTitle(strings.TrimSpace(rest)), nil
}

// headerTitle prefers the text after " - " and falls back to the whole tail.
func headerTitle(rest string) string {
	if i := strings.Index(rest, " - "); i >= 0 {
		return strings.TrimSpace(rest[i+3:])
	}
	return strings.TrimSpace(strings.TrimPrefix(rest, "-"))
}

// fallbackSpawn looks for an open cell in the 3x3 block around the center,
// then settles for (1,1).
func fallbackSpawn(isWall func(core.Point) bool, w, h int) core.Point {
	for y := h/2 - 1; y <= h/2+1; y++ {
		for x := w/2 - 1; x <= w/2+1; x++ {
			p := core.Point{X: x, Y: y}
			if x >= 0 && y >= 0 && x < w && y < h && !isWall(p) {
				return p
			}
		}
	}
	return core.Point{X: 1, Y: 1}
}
