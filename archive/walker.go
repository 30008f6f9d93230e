// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to Walk
// The file argument is the zip.File structure for file in archive which satisfies
// match condition. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// MatchFunc selects archive entries by name.
type MatchFunc func(name string) bool

// WithExt matches entries with given extension, case insensitive.
func WithExt(ext string) MatchFunc {
	return func(name string) bool {
		return strings.EqualFold(path.Ext(name), ext)
	}
}

// Walk walks the all files in the archive which satisfy match condition,
// calling walkFn for each item. Nil match selects every file. Archives with
// path traversal components ("..") or absolute paths are rejected.
func Walk(archive string, match MatchFunc, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || (match != nil && !match(name)) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile returns content of archive entry, limit protects from
// decompression bombs. Zero limit means no limit.
func ReadFile(file *zip.File, limit int64) ([]byte, error) {
	if limit > 0 && file.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("zip entry %q is too large: %d bytes", file.Name, file.UncompressedSize64)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var src io.Reader = rc
	if limit > 0 {
		src = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("zip entry %q is too large", file.Name)
	}
	return data, nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
