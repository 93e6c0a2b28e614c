package models

// StoredFile describes an image written to one of the upload roots.
// The filesystem is the only record of it; nothing here is persisted.
type StoredFile struct {
	Filename     string `json:"filename"`
	Directory    string `json:"-"`
	SizeBytes    int64  `json:"sizeBytes"`
	MimeType     string `json:"mimeType"`
	DetectedType string `json:"-"`
}
