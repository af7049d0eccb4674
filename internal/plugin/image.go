package plugin

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// AllowedExtensions lists the image file extensions accepted by the shells.
var AllowedExtensions = []string{".png", ".jpg", ".jpeg"}

// Image is an opaque handle to user supplied image data.
type Image interface {
	// Name returns the file name shown to the user.
	Name() string
	// Open returns a fresh reader over the image bytes.
	Open() (io.ReadCloser, error)
}

// PathImage is an image on the local filesystem.
type PathImage string

func (p PathImage) Name() string { return filepath.Base(string(p)) }

func (p PathImage) Path() string { return string(p) }

func (p PathImage) Open() (io.ReadCloser, error) { return os.Open(string(p)) }

// UploadedImage is an image received over HTTP and kept in memory.
type UploadedImage struct {
	Filename string
	Data     []byte
}

func (u *UploadedImage) Name() string { return u.Filename }

func (u *UploadedImage) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(u.Data)), nil
}

// IsAllowedImage reports whether name carries one of AllowedExtensions. Content is not inspected.
func IsAllowedImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ReadAll reads the whole image.
func ReadAll(img Image) ([]byte, error) {
	rc, err := img.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
