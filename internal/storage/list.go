package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// List enumerates entries beneath the folder at relativePath (the storage
// root when empty). When recursive, every descendant at every depth is
// returned; otherwise only direct children. The result is a flat sequence
// in a single total order: folders before files, then case-insensitive
// alphabetical by name.
func (s *Service) List(relativePath string, recursive bool) ([]Entry, error) {
	base, err := s.listBase(relativePath)
	if err != nil {
		return nil, err
	}

	var items []Entry
	if recursive {
		items, err = s.walk(base)
	} else {
		items, err = s.children(base)
	}
	if err != nil {
		return nil, err
	}

	sortEntries(items)
	return items, nil
}

// listBase resolves the base folder for a read operation. An empty path
// selects the storage root.
func (s *Service) listBase(relativePath string) (string, error) {
	if relativePath == "" {
		return s.root, nil
	}

	abs, err := s.Resolve(relativePath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: path %q", ErrNotFound, relativePath)
	}
	if err != nil {
		return "", fmt.Errorf("stat path %q: %w", relativePath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %q", ErrNotAFolder, relativePath)
	}
	return abs, nil
}

// walk enumerates all descendants of base. fastwalk dispatches callbacks
// from multiple goroutines, so appends are guarded; ordering is imposed by
// the callers' sort.
func (s *Service) walk(base string) ([]Entry, error) {
	var (
		mu    sync.Mutex
		items = []Entry{}
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == base {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		entry := newEntry(d.Name(), s.relativePath(path), info)

		mu.Lock()
		items = append(items, entry)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.relativePath(base), err)
	}
	return items, nil
}

// children enumerates only the direct children of base.
func (s *Service) children(base string) ([]Entry, error) {
	dirents, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.relativePath(base), err)
	}

	items := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		info, err := d.Info()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.relativePath(filepath.Join(base, d.Name())), err)
		}
		items = append(items, newEntry(d.Name(), s.relativePath(filepath.Join(base, d.Name())), info))
	}
	return items, nil
}

func newEntry(name, relativePath string, info fs.FileInfo) Entry {
	entry := Entry{
		Name:         name,
		Kind:         KindFolder,
		RelativePath: relativePath,
	}
	if !info.IsDir() {
		entry.Kind = KindFile
		size := info.Size()
		entry.Size = &size
	}
	return entry
}

// sortEntries orders a flat listing: folders first, then files, each group
// case-insensitively alphabetical. Same-named entries from different
// directories tie-break on their relative path, so the order is a pure
// function of the filesystem contents regardless of enumeration order.
func sortEntries(items []Entry) {
	sort.SliceStable(items, func(i, j int) bool {
		if (items[i].Kind == KindFile) != (items[j].Kind == KindFile) {
			return items[j].Kind == KindFile
		}
		ni, nj := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if ni != nj {
			return ni < nj
		}
		return strings.ToLower(items[i].RelativePath) < strings.ToLower(items[j].RelativePath)
	})
}
