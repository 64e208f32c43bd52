package model

// DataDocument is a file reference attached to a courrier.
// URL holds the object key in storage, or an external location for documents
// registered without an upload.
type DataDocument struct {
	ID       string `json:"id" validate:"required"`
	Filename string `json:"filename" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Type     string `json:"type,omitempty"`
	Size     int64  `json:"size,omitempty" validate:"gte=0"`
}
