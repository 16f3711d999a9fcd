// Package resindex maintains resources.json, the table mapping texture ids to
// asset paths.
package resindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
)

const (
	FileName  = "resources.json"
	ImagesDir = "images"
	Extension = ".ff"
)

type Entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

type Index struct {
	Images []Entry `json:"images"`
}

func Load(r io.Reader) (*Index, error) {
	idx := &Index{}
	if err := json.NewDecoder(r).Decode(idx); err != nil {
		return nil, fmt.Errorf("resindex: decode: %w", err)
	}
	return idx, nil
}

// LoadFS reads FileName from the root of fsys. A missing file is an empty index.
func LoadFS(fsys fs.FS) (*Index, error) {
	f, err := fsys.Open(FileName)
	if errors.Is(err, fs.ErrNotExist) {
		return &Index{Images: []Entry{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resindex: open: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (idx *Index) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(idx); err != nil {
		return fmt.Errorf("resindex: encode: %w", err)
	}
	return nil
}

// Lookup returns the entry for a texture id.
func (idx *Index) Lookup(id int) (Entry, bool) {
	for _, e := range idx.Images {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// ByPath returns the entry registered for an asset path.
func (idx *Index) ByPath(p string) (Entry, bool) {
	for _, e := range idx.Images {
		if e.Path == p {
			return e, true
		}
	}
	return Entry{}, false
}

// Regenerate adds every *.ff file under dir in fsys that is not indexed yet,
// giving each the lowest id not already taken. Existing entries keep their ids.
// It returns the entries that were added.
func (idx *Index) Regenerate(fsys fs.FS, dir string) ([]Entry, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*"+Extension))
	if err != nil {
		return nil, fmt.Errorf("resindex: glob: %w", err)
	}
	sort.Strings(matches)

	taken := make(map[int]bool, len(idx.Images))
	known := make(map[string]bool, len(idx.Images))
	for _, e := range idx.Images {
		taken[e.ID] = true
		known[e.Path] = true
	}

	var added []Entry
	next := 0
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("resindex: stat %s: %w", m, err)
		}
		if info.IsDir() {
			continue
		}
		p := "/" + m
		if known[p] {
			continue
		}
		for taken[next] {
			next++
		}
		e := Entry{ID: next, Name: path.Base(m), Path: p}
		taken[next] = true
		known[p] = true
		idx.Images = append(idx.Images, e)
		added = append(added, e)
	}
	return added, nil
}
