package service

import "errors"

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("courrier not found")
	ErrReaderNil  = errors.New("reader is nil")
	// ErrBusy is returned when another writer holds the courrier for longer than the lock wait.
	ErrBusy = errors.New("courrier is being modified by another request")
	// ErrInvalidKey is returned for document keys outside the courrier attachment space.
	ErrInvalidKey = errors.New("invalid document key")
	// ErrDocumentNotFound is returned when an attachment key does not exist.
	ErrDocumentNotFound = errors.New("document not found")
)
