package track

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed tracks/*.yaml
var builtinFS embed.FS

// Builtin returns the tracks bundled with the binary, sorted by ID.
func Builtin() ([]*Track, error) {
	entries, err := fs.ReadDir(builtinFS, "tracks")
	if err != nil {
		return nil, fmt.Errorf("reading builtin tracks: %w", err)
	}

	tracks := make([]*Track, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(filepath.Ext(e.Name())) {
			continue
		}
		name := path.Join("tracks", e.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading builtin track %s: %w", name, err)
		}
		t, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing builtin track %s: %w", name, err)
		}
		t.FilePath = "builtin:" + e.Name()
		tracks = append(tracks, t)
	}

	sortByID(tracks)
	return tracks, nil
}

// Loader loads track files from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a new track loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads every track file under Root.
// Files that fail to parse are returned as errors alongside the valid tracks.
func (l *Loader) LoadAll() ([]*Track, []error, error) {
	var (
		tracks  []*Track
		skipped []error
	)

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(p)) {
			return nil
		}

		t, err := l.LoadFile(p)
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}
		tracks = append(tracks, t)
		return nil
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortByID(tracks)
	return tracks, skipped, nil
}

// LoadFile loads a single track file.
func (l *Loader) LoadFile(p string) (*Track, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", p, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", p, err)
	}
	t.FilePath = p
	return t, nil
}

// LoadByID loads a specific track by ID.
func (l *Loader) LoadByID(id string) (*Track, error) {
	tracks, _, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, t := range tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("track not found: %s", id)
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func sortByID(tracks []*Track) {
	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].ID < tracks[j].ID
	})
}
