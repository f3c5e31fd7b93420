// Package fits adapts a FITS file's primary header to the card-level access
// the annotator needs. The FITS format itself stays inside astrogo/fitsio.
package fits

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/astrogo/fitsio"
)

// File is a FITS file on disk whose primary header can be read and updated.
type File struct {
	path string
}

func Open(path string) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot open FITS file: %w", err)
	}
	return &File{path: path}, nil
}

func (f *File) Name() string {
	return f.path
}

// ReadCard returns the string form of the named primary header card.
func (f *File) ReadCard(name string) (string, error) {
	r, err := os.Open(f.path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	fit, err := fitsio.Open(r)
	if err != nil {
		return "", fmt.Errorf("not a readable FITS file: %w", err)
	}
	defer fit.Close()

	card := fit.HDU(0).Header().Get(name)
	if card == nil {
		return "", fmt.Errorf("keyword %s not present in %s", name, f.path)
	}
	return fmt.Sprint(card.Value), nil
}

// WriteCard sets the named card in the primary header, overwriting any prior
// value. The file is rewritten to a temporary sibling and renamed into place
// so a failed write never leaves a truncated file behind.
func (f *File) WriteCard(name string, value float64, comment string) error {
	r, err := os.Open(f.path)
	if err != nil {
		return err
	}
	defer r.Close()

	fit, err := fitsio.Open(r)
	if err != nil {
		return fmt.Errorf("not a readable FITS file: %w", err)
	}
	defer fit.Close()

	fit.HDU(0).Header().Set(name, value, comment)

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	out, err := fitsio.Create(tmp)
	if err != nil {
		tmp.Close()
		return err
	}
	for _, hdu := range fit.HDUs() {
		if err := out.Write(hdu); err != nil {
			out.Close()
			tmp.Close()
			return err
		}
	}
	if err := out.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), f.path)
}
