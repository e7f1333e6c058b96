package controllers

import (
	"net/http"

	"github.com/ttanapat/mealdiary-backend/internal/media"
	pkgerrors "github.com/ttanapat/mealdiary-backend/pkg/errors"
)

// multipartMemoryBytes caps how much of a form is buffered in memory; larger
// file parts spill to temp files.
const multipartMemoryBytes = 4 << 20

// parseMultipartForm bounds the request body and parses the form. maxBytes
// covers the whole request, not just the file part.
func parseMultipartForm(r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	return nil
}

// formImage extracts the named file part as an upload input. Returns nil
// when the part is absent; the caller treats that as "no image".
func formImage(r *http.Request, field string) (*media.UploadInput, func(), error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read file part")
	}

	input := &media.UploadInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   header.Size,
		Reader:      file,
	}
	return input, func() { _ = file.Close() }, nil
}
