// Package dirlist enumerates the direct children of a directory into a
// payload suitable for returning to a tool caller. Failures are reported in
// the payload itself rather than as errors, so a bad path degrades the one
// listing instead of the session.
package dirlist

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	stat    = os.Stat
	readDir = os.ReadDir
)

// Entry describes one directory child. Size is present for regular files
// and null otherwise; Modified is Unix seconds with a fractional part.
type Entry struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Type     string  `json:"type"`
	Size     *int64  `json:"size"`
	Modified float64 `json:"modified"`
}

// Listing is the result of listing one directory.
type Listing struct {
	Path       string  `json:"path"`
	TotalItems int     `json:"total_items"`
	Files      []Entry `json:"files"`
	Success    bool    `json:"success"`
	Error      string  `json:"error,omitempty"`
}

// List returns the direct children of path, sorted by name ascending,
// case-insensitive. A child that cannot be statted (for example removed
// between enumeration and stat) is skipped; a directory that cannot be read
// at all fails the whole listing with an empty file list.
func List(path string) *Listing {
	info, err := stat(path)
	if err != nil {
		return Failure(path, "path does not exist: "+path)
	}
	if !info.IsDir() {
		return Failure(path, "path is not a directory: "+path)
	}

	entries, err := readDir(path)
	if err != nil {
		return Failure(path, "cannot read directory: "+err.Error())
	}

	files := []Entry{}
	for _, entry := range entries {
		full := filepath.Join(path, entry.Name())
		fi, err := stat(full)
		if err != nil {
			continue
		}

		e := Entry{
			Name:     entry.Name(),
			Path:     full,
			Type:     "file",
			Modified: float64(fi.ModTime().UnixNano()) / 1e9,
		}
		if fi.IsDir() {
			e.Type = "directory"
		} else if fi.Mode().IsRegular() {
			size := fi.Size()
			e.Size = &size
		}
		files = append(files, e)
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name)
	})

	return &Listing{
		Path:       path,
		TotalItems: len(files),
		Files:      files,
		Success:    true,
	}
}

// Failure builds a listing-shaped failure payload. Callers that reject a
// path before listing it use this to keep the response shape uniform.
func Failure(path, msg string) *Listing {
	return &Listing{
		Path:  path,
		Files: []Entry{},
		Error: msg,
	}
}
