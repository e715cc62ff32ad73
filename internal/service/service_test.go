package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"foodhood/internal/media"
)

type fakeIDs struct {
	mu   sync.Mutex
	next snowflake.ID
	err  error
}

func (f *fakeIDs) NextID() (snowflake.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.next++
	return f.next, nil
}

func nullLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := uint8(80 + 10*x)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func pngUpload(t *testing.T) media.Upload {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	n := int64(buf.Len())
	return media.Upload{Data: buf.Bytes(), ContentType: "image/png", Size: &n}
}

func jpegUpload(t *testing.T) media.Upload {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), nil))
	n := int64(buf.Len())
	return media.Upload{Data: buf.Bytes(), Size: &n}
}

func corruptUpload() media.Upload {
	data := []byte("\x89PNG\r\n\x1a\nthis is not really a png")
	n := int64(len(data))
	return media.Upload{Data: data, ContentType: "image/png", Size: &n}
}
