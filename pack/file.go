package pack

import (
	"os"

	"github.com/pkg/errors"

	"github.com/jsphweid/chartpak/model"
	"github.com/jsphweid/chartpak/util"
)

// WriteFile packs c to path and returns the number of bytes written.
func WriteFile(path string, c model.Chart) (int, error) {
	dat, err := Bytes(c)
	if err != nil {
		return 0, err
	}
	if err := util.WriteFileAtomic(path, dat); err != nil {
		return 0, err
	}
	return len(dat), nil
}

// ReadFile decodes the packed chart at path.
func ReadFile(path string) (model.Chart, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return model.Chart{}, &model.InputOpenError{Path: path, Err: err}
	}
	c, err := Decode(dat)
	return c, errors.Wrapf(err, "could not decode %s", path)
}
