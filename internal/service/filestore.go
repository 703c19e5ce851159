package service

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"bookswap/internal/apperr"
)

// FileStore persists upload bytes under public paths like
// /uploads/listings/<id>/<file>. Remove is idempotent: a missing file is not
// an error.
type FileStore interface {
	Save(publicPath string, r io.Reader) error
	Remove(publicPath string) error
}

// DiskStore maps the /uploads prefix onto a directory on local disk.
type DiskStore struct {
	Root string // e.g. "uploads"
}

func NewDiskStore(root string) *DiskStore { return &DiskStore{Root: root} }

func (d *DiskStore) Save(publicPath string, r io.Reader) error {
	target, err := d.resolve(publicPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, r)
	return err
}

func (d *DiskStore) Remove(publicPath string) error {
	target, err := d.resolve(publicPath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (d *DiskStore) resolve(publicPath string) (string, error) {
	rel := strings.TrimPrefix(publicPath, "/uploads/")
	target := filepath.Join(d.Root, filepath.FromSlash(rel))
	clean := filepath.Clean(target)
	if !strings.HasPrefix(clean, filepath.Clean(d.Root)+string(os.PathSeparator)) {
		return "", apperr.Validation("invalid path")
	}
	return clean, nil
}
