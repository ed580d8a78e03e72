package adapter

import "io"

// FileStore persists the raw uploaded video durably and returns the
// reference recorded on the video row.
type FileStore interface {
	Save(r io.Reader, ext string) (string, error)
	Remove(path string) error
}
