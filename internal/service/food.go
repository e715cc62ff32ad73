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
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"foodhood/internal/media"
	"foodhood/internal/model"
	"foodhood/internal/repository"
	"foodhood/internal/storage"
)

// PhotoRejection explains why one upload of a batch was skipped.
type PhotoRejection struct {
	Position int    `json:"position"`
	Reason   string `json:"reason"`
}

// PhotoBatchResult summarizes an AddPhotos call.
type PhotoBatchResult struct {
	Accepted int              `json:"accepted"`
	Indices  []int            `json:"indices"`
	Rejected []PhotoRejection `json:"rejected"`
}

// FoodService defines the use cases of the food catalog.
type FoodService interface {
	// Create stores a new listing owned by authorID with no photos.
	Create(ctx context.Context, authorID snowflake.ID, in model.FoodCreate) (*model.Food, error)

	// Get returns ErrFoodNotFound if the listing does not exist.
	Get(ctx context.Context, id snowflake.ID) (*model.Food, error)

	List(ctx context.Context) ([]model.Food, error)

	// AddPhotos normalizes and stores each upload in order. Uploads that fail media
	// validation are skipped and reported in the result. A storage or database
	// failure stops the batch; photos stored before it are kept and the partial
	// result is returned together with the error.
	AddPhotos(ctx context.Context, foodID snowflake.ID, uploads []media.Upload) (*PhotoBatchResult, error)

	// GetPhoto returns ErrPhotoNotFound if there is no photo at index.
	GetPhoto(ctx context.Context, foodID snowflake.ID, index int) (*model.Blob, error)
}

type foodService struct {
	ids    IDGenerator
	store  storage.Storage
	foods  repository.FoodRepository
	images repository.ImageRepository
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewFoodService constructs a new FoodService.
func NewFoodService(ids IDGenerator, store storage.Storage, foods repository.FoodRepository, images repository.ImageRepository, log logrus.FieldLogger) FoodService {
	return &foodService{
		ids:    ids,
		store:  store,
		foods:  foods,
		images: images,
		log:    log.WithField("component", "food_service"),
		now:    time.Now,
	}
}

func (s *foodService) Create(ctx context.Context, authorID snowflake.ID, in model.FoodCreate) (*model.Food, error) {
	id, err := s.ids.NextID()
	if err != nil {
		return nil, fmt.Errorf("generate food id: %w", err)
	}

	createdAt := in.CreatedAt
	if createdAt == 0 {
		createdAt = s.now().Unix()
	}
	tags := in.Tags
	if tags == nil {
		tags = []int64{}
	}

	food := &model.Food{
		ID:                  id,
		AuthorID:            authorID,
		Title:               in.Title,
		Description:         in.Description,
		IncludesVegetarian:  in.IncludesVegetarian,
		NeedTableware:       in.NeedTableware,
		Tags:                tags,
		Latitude:            in.Latitude,
		Longitude:           in.Longitude,
		LocationDescription: in.LocationDescription,
		ValidityPeriod:      in.ValidityPeriod,
		ImageCount:          0,
		CreatedAt:           createdAt,
	}

	stored, err := s.foods.Create(ctx, food)
	if err != nil {
		return nil, fmt.Errorf("save food: %w", err)
	}
	return stored, nil
}

func (s *foodService) Get(ctx context.Context, id snowflake.ID) (*model.Food, error) {
	food, err := s.foods.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	return food, nil
}

func (s *foodService) List(ctx context.Context) ([]model.Food, error) {
	return s.foods.List(ctx)
}

func (s *foodService) AddPhotos(ctx context.Context, foodID snowflake.ID, uploads []media.Upload) (*PhotoBatchResult, error) {
	if _, err := s.Get(ctx, foodID); err != nil {
		return nil, err
	}

	res := &PhotoBatchResult{Indices: []int{}, Rejected: []PhotoRejection{}}
	log := s.log.WithField("food_id", foodID.String())
	span := trace.SpanFromContext(ctx)

	for pos, u := range uploads {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		out, err := media.Normalize(u, media.PhotoMaxSize)
		if err != nil {
			if !media.IsRejection(err) {
				return res, err
			}
			log.WithError(err).WithField("position", pos).Warn("skipping photo")
			span.AddEvent("photo_rejected", trace.WithAttributes(
				attribute.Int("position", pos),
				attribute.String("reason", err.Error()),
			))
			res.Rejected = append(res.Rejected, PhotoRejection{Position: pos, Reason: err.Error()})
			continue
		}

		index, err := s.storePhoto(ctx, foodID, out)
		if err != nil {
			return res, fmt.Errorf("photo %d: %w", pos, err)
		}
		span.AddEvent("photo_stored", trace.WithAttributes(
			attribute.Int("position", pos),
			attribute.Int("index", index),
		))
		res.Accepted++
		res.Indices = append(res.Indices, index)
	}

	log.WithFields(logrus.Fields{
		"accepted": res.Accepted,
		"rejected": len(res.Rejected),
	}).Info("photos added")
	return res, nil
}

// storePhoto uploads the object first and then claims an index for it. The object
// is removed again if the index cannot be recorded.
func (s *foodService) storePhoto(ctx context.Context, foodID snowflake.ID, out *media.Result) (int, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return 0, fmt.Errorf("generate object key: %w", err)
	}
	key := fmt.Sprintf("foods/%s/%s%s", foodID, suffix, media.Extension(out.Format))

	if _, err := s.store.Put(ctx, key, bytes.NewReader(out.Data), storage.PutObjectOptions{
		Size:        int64(len(out.Data)),
		ContentType: out.ContentType,
	}); err != nil {
		return 0, fmt.Errorf("upload to storage: %w", err)
	}

	index, err := s.images.Append(ctx, &model.FoodImage{
		FoodID:      foodID,
		StorageKey:  key,
		ContentType: out.ContentType,
	})
	if err != nil {
		discardObject(ctx, s.store, s.log, key)
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrFoodNotFound
		}
		return 0, fmt.Errorf("db save failed: %w", err)
	}
	return index, nil
}

func (s *foodService) GetPhoto(ctx context.Context, foodID snowflake.ID, index int) (*model.Blob, error) {
	img, err := s.images.Find(ctx, foodID, index)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}

	data, _, err := storage.ReadAll(ctx, s.store, img.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return &model.Blob{ContentType: img.ContentType, Data: data}, nil
}
