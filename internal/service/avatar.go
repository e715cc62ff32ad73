package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	"foodhood/internal/media"
	"foodhood/internal/model"
	"foodhood/internal/repository"
	"foodhood/internal/storage"
)

// AvatarService manages one profile image per user.
type AvatarService interface {
	// Get returns the user's avatar, or the default image if none is stored.
	Get(ctx context.Context, userID snowflake.ID) (*model.Blob, error)

	// Put normalizes u and replaces the user's avatar with it.
	Put(ctx context.Context, userID snowflake.ID, u media.Upload) error

	// Delete removes the user's avatar. Deleting a missing avatar succeeds.
	Delete(ctx context.Context, userID snowflake.ID) error
}

type avatarService struct {
	store   storage.Storage
	avatars repository.AvatarRepository
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewAvatarService constructs a new AvatarService.
func NewAvatarService(store storage.Storage, avatars repository.AvatarRepository, log logrus.FieldLogger) AvatarService {
	return &avatarService{
		store:   store,
		avatars: avatars,
		log:     log.WithField("component", "avatar_service"),
		now:     time.Now,
	}
}

// avatarKey returns a fresh object key for userID; keys are never reused.
func avatarKey(userID snowflake.ID, format string) (string, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate object key: %w", err)
	}
	return fmt.Sprintf("avatars/%s/%s%s", userID, suffix, media.Extension(format)), nil
}

func defaultAvatar() *model.Blob {
	return &model.Blob{ContentType: media.DefaultAvatarContentType, Data: media.DefaultAvatar}
}

func (s *avatarService) Get(ctx context.Context, userID snowflake.ID) (*model.Blob, error) {
	a, err := s.avatars.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return defaultAvatar(), nil
		}
		return nil, err
	}

	data, _, err := storage.ReadAll(ctx, s.store, a.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			s.log.WithField("user_id", userID.String()).Warn("avatar object missing, serving default")
			return defaultAvatar(), nil
		}
		return nil, err
	}
	return &model.Blob{ContentType: a.ContentType, Data: data}, nil
}

func (s *avatarService) Put(ctx context.Context, userID snowflake.ID, u media.Upload) error {
	out, err := media.Normalize(u, media.AvatarMaxSize)
	if err != nil {
		return err
	}

	prev, err := s.avatars.FindByUser(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	key, err := avatarKey(userID, out.Format)
	if err != nil {
		return err
	}
	if _, err := s.store.Put(ctx, key, bytes.NewReader(out.Data), storage.PutObjectOptions{
		Size:        int64(len(out.Data)),
		ContentType: out.ContentType,
	}); err != nil {
		return fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.avatars.Upsert(ctx, &model.Avatar{
		UserID:      userID,
		ContentType: out.ContentType,
		StorageKey:  key,
		UpdatedAt:   s.now().UTC(),
	}); err != nil {
		discardObject(ctx, s.store, s.log, key)
		return fmt.Errorf("db save failed: %w", err)
	}

	if prev != nil && prev.StorageKey != key {
		discardObject(ctx, s.store, s.log.WithField("user_id", userID.String()), prev.StorageKey)
	}
	return nil
}

func (s *avatarService) Delete(ctx context.Context, userID snowflake.ID) error {
	a, err := s.avatars.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.avatars.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, a.StorageKey); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return nil
}
