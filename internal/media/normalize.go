package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const (
	// AvatarMaxSize caps profile images.
	AvatarMaxSize int64 = 5 << 20
	// PhotoMaxSize caps food gallery photos.
	PhotoMaxSize int64 = 10 << 20
	// MaxPixels bounds the decoded canvas so a small file cannot expand into gigabytes.
	MaxPixels int64 = 178_956_970
)

var (
	ErrSizeRequired         = errors.New("file size is required")
	ErrPayloadTooLarge      = errors.New("file size exceeds limit")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// Upload is one file as it arrived from the transport.
// A nil Size means the transport did not declare one.
type Upload struct {
	Data        []byte
	ContentType string
	Size        *int64
}

// Result is a normalized image ready for storage.
type Result struct {
	Data        []byte
	ContentType string
	Format      string
}

// IsRejection reports whether err is one of the media validation failures.
func IsRejection(err error) bool {
	return errors.Is(err, ErrSizeRequired) ||
		errors.Is(err, ErrPayloadTooLarge) ||
		errors.Is(err, ErrUnsupportedMediaType)
}

// Normalize validates u against maxSize, verifies it decodes as an accepted image,
// stretches each channel to the full tone range and re-encodes it in its source format.
func Normalize(u Upload, maxSize int64) (*Result, error) {
	if u.Size == nil {
		return nil, ErrSizeRequired
	}
	if *u.Size > maxSize {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrPayloadTooLarge, *u.Size, maxSize)
	}
	if len(u.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUnsupportedMediaType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(u.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUnsupportedMediaType, cfg.Width, cfg.Height, MaxPixels)
	}
	img, format, err := image.Decode(bytes.NewReader(u.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	contentType := u.ContentType
	if contentType == "" {
		contentType = "image/" + format
	}

	var buf bytes.Buffer
	if err := encode(&buf, Autocontrast(img), format); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	return &Result{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Format:      format,
	}, nil
}

func encode(buf *bytes.Buffer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(buf, img)
	case "jpeg":
		return jpeg.Encode(buf, img, &jpeg.Options{Quality: jpeg.DefaultQuality})
	case "gif":
		return gif.Encode(buf, img, nil)
	case "bmp":
		return bmp.Encode(buf, img)
	case "tiff":
		return tiff.Encode(buf, img, nil)
	default:
		return fmt.Errorf("no encoder for format %q", format)
	}
}

// Extension returns the file extension conventionally used for format.
func Extension(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png", "gif", "bmp", "tiff":
		return "." + format
	default:
		return ""
	}
}
