package util

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jsphweid/chartpak/model"
)

// WriteFileAtomic writes dat to a temporary file next to path and renames it over path
// once complete, so a failed write never leaves a truncated file behind.
func WriteFileAtomic(path string, dat []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.New().String()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return &model.OutputOpenError{Path: path, Err: err}
	}

	if _, err = f.Write(dat); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "write failed for %s", path)
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "write failed for %s", path)
	}
	if err = os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &model.OutputOpenError{Path: path, Err: err}
	}
	return nil
}
