package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"foodhood/internal/media"
)

// readUpload loads one multipart file into memory. The declared part size is
// passed on so the media limits can be checked before decoding.
func readUpload(fh *multipart.FileHeader) (media.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return media.Upload{}, fmt.Errorf("open %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return media.Upload{}, fmt.Errorf("read %q: %w", fh.Filename, err)
	}

	size := fh.Size
	return media.Upload{
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        &size,
	}, nil
}
