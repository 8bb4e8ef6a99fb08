package note

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store writes notes and images under the configured directories. Note
// creation never overwrites: a pre-existing path is an error the caller
// handles as a per-item failure.
type Store struct {
	notesDir  string
	imagesDir string
}

func NewStore(notesDir, imagesDir string) *Store {
	return &Store{
		notesDir:  notesDir,
		imagesDir: imagesDir,
	}
}

func (s *Store) EnsureDirs() error {
	if err := os.MkdirAll(s.notesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}
	if err := os.MkdirAll(s.imagesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create images directory: %w", err)
	}
	return nil
}

// CreateNote writes a new note file. Fails with os.ErrExist wrapped if the
// path is already taken.
func (s *Store) CreateNote(fileName, content string) error {
	return createExclusive(filepath.Join(s.notesDir, fileName), []byte(content))
}

// CreateImage writes a downloaded image payload next to the notes.
func (s *Store) CreateImage(fileName string, data []byte) error {
	return createExclusive(filepath.Join(s.imagesDir, fileName), data)
}

func (s *Store) NotesDir() string {
	return s.notesDir
}

func createExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	return nil
}
