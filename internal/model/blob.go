package model

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Blob is binary content with its media type, ready to be written to a client.
type Blob struct {
	ContentType string
	Data        []byte
}

// Avatar records where a user's profile image is stored.
type Avatar struct {
	UserID      snowflake.ID
	ContentType string
	StorageKey  string
	UpdatedAt   time.Time
}
