package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sirupsen/logrus"

	"foodhood/internal/storage"
)

var (
	ErrNotFound = errors.New("not found")

	ErrFoodNotFound  = fmt.Errorf("food %w", ErrNotFound)
	ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)
	ErrPhotoNotFound = fmt.Errorf("photo %w", ErrNotFound)
)

// IDGenerator issues unique identifiers for new entities.
type IDGenerator interface {
	NextID() (snowflake.ID, error)
}

const cleanupTimeout = 5 * time.Second

// cleanupContext keeps the values of ctx but not its cancellation, so that
// compensating deletes still run after the request has gone away.
func cleanupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
}

// discardObject deletes key on a best-effort basis. Failures are only logged.
func discardObject(ctx context.Context, store storage.Storage, log logrus.FieldLogger, key string) {
	cctx, cancel := cleanupContext(ctx)
	defer cancel()
	if err := store.Delete(cctx, key); err != nil {
		log.WithError(err).WithField("key", key).Error("object cleanup failed")
	}
}
