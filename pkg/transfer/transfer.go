// Package transfer exports and imports the personal lists.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"

	"tableflip.dev/abcinema/pkg/lists"
	"tableflip.dev/abcinema/pkg/movie"
)

// Format is a document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// ParseFormat accepts a format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	}
	return "", fmt.Errorf("transfer: unknown format %q", raw)
}

// FormatForPath guesses the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return JSON
}

// Document is the exported form of every list.
type Document struct {
	Favorites []movie.ListEntry `json:"favorites" toml:"favorites"`
	Watchlist []movie.ListEntry `json:"watchlist" toml:"watchlist"`
	Watched   []movie.ListEntry `json:"watched" toml:"watched"`
}

func (d *Document) list(t movie.ListType) []movie.ListEntry {
	switch t {
	case movie.Favorites:
		return d.Favorites
	case movie.Watchlist:
		return d.Watchlist
	case movie.Watched:
		return d.Watched
	}
	return nil
}

// Snapshot reads every list from s.
func Snapshot(s *lists.Store) *Document {
	return &Document{
		Favorites: nonNil(s.List(movie.Favorites)),
		Watchlist: nonNil(s.List(movie.Watchlist)),
		Watched:   nonNil(s.List(movie.Watched)),
	}
}

// Encode writes d to w.
func Encode(w io.Writer, d *Document, f Format) error {
	var (
		out []byte
		err error
	)
	switch f {
	case JSON, "":
		out, err = json.MarshalIndent(d, "", "  ")
		out = append(out, '\n')
	case YAML:
		out, err = yaml.Marshal(d)
	case TOML:
		out, err = toml.Marshal(d)
	default:
		return fmt.Errorf("transfer: unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("transfer: encode %s: %w", f, err)
	}
	_, err = w.Write(out)
	return err
}

// Decode reads a document from r.
func Decode(r io.Reader, f Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("transfer: read: %w", err)
	}
	var d Document
	switch f {
	case JSON, "":
		err = json.Unmarshal(data, &d)
	case YAML:
		err = yaml.Unmarshal(data, &d)
	case TOML:
		err = toml.NewDecoder(bytes.NewReader(data)).Decode(&d)
	default:
		return nil, fmt.Errorf("transfer: unknown format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("transfer: decode %s: %w", f, err)
	}
	return &d, nil
}

// Export writes every list in s to w.
func Export(w io.Writer, s *lists.Store, f Format) error {
	return Encode(w, Snapshot(s), f)
}

// ExportFile writes every list in s to path on fs.
func ExportFile(fs afero.Fs, path string, s *lists.Store, f Format) error {
	var buf bytes.Buffer
	if err := Export(&buf, s, f); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("transfer: mkdir %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("transfer: write %s: %w", path, err)
	}
	return nil
}

// Result counts what an import changed.
type Result struct {
	Added   map[movie.ListType]int
	Skipped map[movie.ListType]int
}

// Apply loads d into s. Without merge each list is cleared first. Entries
// whose id is already present are skipped. The original addedAt order is
// kept: entries are inserted oldest first so the newest ends up on top.
func Apply(s *lists.Store, d *Document, merge bool) Result {
	res := Result{Added: map[movie.ListType]int{}, Skipped: map[movie.ListType]int{}}
	for _, t := range movie.AllListTypes() {
		if !merge {
			s.Clear(t)
		}
		entries := d.list(t)
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			if e.ID == 0 || s.IsMember(t, e.ID) {
				res.Skipped[t]++
				continue
			}
			s.Add(t, e)
			res.Added[t]++
		}
	}
	return res
}

// ImportFile reads path from fs and applies it to s.
func ImportFile(fs afero.Fs, path string, s *lists.Store, f Format, merge bool) (Result, error) {
	file, err := fs.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("transfer: open %s: %w", path, err)
	}
	defer file.Close()
	d, err := Decode(file, f)
	if err != nil {
		return Result{}, err
	}
	return Apply(s, d, merge), nil
}

func nonNil(e []movie.ListEntry) []movie.ListEntry {
	if e == nil {
		return []movie.ListEntry{}
	}
	return e
}
