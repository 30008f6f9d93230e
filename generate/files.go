package generate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/multierr"
)

// upToDate reports whether target exists and source is not newer than it.
// Missing source is an error.
func upToDate(source, target string) (bool, error) {
	si, err := os.Stat(source)
	if err != nil {
		return false, err
	}
	ti, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !si.ModTime().After(ti.ModTime()), nil
}

// WriteFile creates or truncates file and writes data to it. Close error is
// not lost.
func WriteFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	defer func() {
		if er := f.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close %s: %w", path, er))
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return nil
}
