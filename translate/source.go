package translate

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"sdgen/archive"
)

// maxResourceSize limits single resource XML read from the archive.
const maxResourceSize = 16 * 1024 * 1024

// document is a single resource XML found in SOURCE.
type document struct {
	// name is used in diagnostics and for locale detection
	name string
	data []byte
}

// collect finds all resource XML files in source: a single file, a directory
// tree or a zip archive.
func collect(source string) ([]document, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("unable to access source: %w", err)
	}

	if info.IsDir() {
		return collectDir(source)
	}

	zipped, err := isZip(source)
	if err != nil {
		return nil, err
	}
	if zipped {
		return collectZip(source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, err
	}
	return []document{{name: source, data: data}}, nil
}

func isXML(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xml")
}

func isZip(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// enough for any signature filetype knows about
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

func collectDir(dir string) ([]document, error) {
	var docs []document
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isXML(path) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, document{name: path, data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to walk %s: %w", dir, err)
	}
	return docs, nil
}

func collectZip(path string) ([]document, error) {
	var docs []document
	err := archive.Walk(path, archive.WithExt(".xml"), func(arc string, file *zip.File) error {
		data, err := archive.ReadFile(file, maxResourceSize)
		if err != nil {
			return err
		}
		docs = append(docs, document{name: file.Name, data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read archive %s: %w", path, err)
	}
	return docs, nil
}
