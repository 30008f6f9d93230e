package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type zipEntry struct {
	name    string
	content string
}

func createZip(t *testing.T, entries ...zipEntry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		if strings.HasSuffix(e.name, "/") {
			hdr := &zip.FileHeader{Name: e.name}
			hdr.SetMode(os.ModeDir | 0755)
			if _, err := w.CreateHeader(hdr); err != nil {
				t.Fatalf("Failed to create directory %s: %v", e.name, err)
			}
			continue
		}
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t,
		zipEntry{"values-fi/strings.xml", "<resources/>"},
		zipEntry{"values-pt-rBR/strings.xml", "<resources/>"},
		zipEntry{"de-DE.XML", "<resources/>"},
		zipEntry{"README.txt", "readme"},
		zipEntry{"values-fi/", ""},
	)

	t.Run("xml entries", func(t *testing.T) {
		var visited []string
		err := Walk(zipPath, WithExt(".xml"), func(archive string, file *zip.File) error {
			if archive != zipPath {
				t.Errorf("archive = %s, want %s", archive, zipPath)
			}
			visited = append(visited, file.Name)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		want := []string{"values-fi/strings.xml", "values-pt-rBR/strings.xml", "de-DE.XML"}
		if strings.Join(visited, ",") != strings.Join(want, ",") {
			t.Errorf("visited %v, want %v", visited, want)
		}
	})

	t.Run("nil match visits all files", func(t *testing.T) {
		var visited int
		err := Walk(zipPath, nil, func(archive string, file *zip.File) error {
			visited++
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if visited != 4 {
			t.Errorf("visited %d files, want 4 (directories excluded)", visited)
		}
	})

	t.Run("no match", func(t *testing.T) {
		var visited int
		err := Walk(zipPath, WithExt(".json"), func(archive string, file *zip.File) error {
			visited++
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if visited != 0 {
			t.Errorf("visited %d files, want 0", visited)
		}
	})

	t.Run("walkFn error stops processing", func(t *testing.T) {
		stopErr := errors.New("stop walking")
		var visited int
		err := Walk(zipPath, nil, func(archive string, file *zip.File) error {
			visited++
			return stopErr
		})
		if err != stopErr {
			t.Errorf("Walk() error = %v, want %v", err, stopErr)
		}
		if visited != 1 {
			t.Errorf("visited %d files, want 1", visited)
		}
	})
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		err := Walk("/nonexistent/file.zip", nil, func(archive string, file *zip.File) error {
			return nil
		})
		if err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		invalidZip := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalidZip, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("Failed to create invalid zip: %v", err)
		}
		err := Walk(invalidZip, nil, func(archive string, file *zip.File) error {
			return nil
		})
		if err == nil {
			t.Error("Expected error for invalid zip file")
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		zipPath := createZip(t, zipEntry{"../evil.xml", "<resources/>"})
		err := Walk(zipPath, nil, func(archive string, file *zip.File) error {
			t.Errorf("unsafe entry visited: %s", file.Name)
			return nil
		})
		if err == nil {
			t.Error("Expected error for unsafe entry")
		}
	})
}

func TestReadFile(t *testing.T) {
	zipPath := createZip(t, zipEntry{"fi.xml", "<resources>0123456789</resources>"})

	var data []byte
	err := Walk(zipPath, nil, func(archive string, file *zip.File) (err error) {
		data, err = ReadFile(file, 0)
		return err
	})
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "<resources>0123456789</resources>" {
		t.Errorf("content = %q", data)
	}

	err = Walk(zipPath, nil, func(archive string, file *zip.File) error {
		_, err := ReadFile(file, 10)
		return err
	})
	if err == nil {
		t.Error("Expected error for entry exceeding limit")
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		safe bool
	}{
		{"strings.xml", true},
		{"values-fi/strings.xml", true},
		{"a/..b/c.xml", true},
		{"/etc/passwd", false},
		{`\windows\file.xml`, false},
		{"../up.xml", false},
		{"a/../../up.xml", false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.safe {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.safe)
		}
	}
}
