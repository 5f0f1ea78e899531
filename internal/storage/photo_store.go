package storage

// PhotoStore persists photo blobs under a generated filename and returns the
// public URL the photo is served from afterwards.
type PhotoStore interface {
	Save(filename string, data []byte, contentType string) (string, error)
	Remove(filename string) error
}
