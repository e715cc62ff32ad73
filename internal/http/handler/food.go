package handler

import (
	"github.com/gofiber/fiber/v2"

	"foodhood/internal/http/middleware"
	"foodhood/internal/media"
	"foodhood/internal/model"
	"foodhood/internal/service"
)

// ListFoods returns every listing, newest first.
func ListFoods(svc service.FoodService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		foods, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(foods)
	}
}

// CreateFood stores a listing owned by the caller.
func CreateFood(svc service.FoodService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		author, ok := middleware.Caller(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		var in model.FoodCreate
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		food, err := svc.Create(c.UserContext(), author, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(food)
	}
}

// GetFood returns one listing.
func GetFood(svc service.FoodService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "foodId")
		if !ok {
			return err
		}
		food, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(food)
	}
}

// AddFoodPhotos accepts one or more multipart parts named "file".
// Media failures of single parts are reported in the body; the response is 200
// whenever the batch ran to completion. A batch cut short by a storage or
// database failure reports the photos it kept under "partial".
func AddFoodPhotos(svc service.FoodService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "foodId")
		if !ok {
			return err
		}

		form, err := c.MultipartForm()
		if err != nil || len(form.File["file"]) == 0 {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		uploads := make([]media.Upload, 0, len(form.File["file"]))
		for _, fh := range form.File["file"] {
			u, err := readUpload(fh)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			uploads = append(uploads, u)
		}

		res, err := svc.AddPhotos(c.UserContext(), id, uploads)
		if err != nil {
			return writeBatchError(c, err, res)
		}
		return c.JSON(res)
	}
}

// GetFoodPhoto writes the raw photo bytes with their stored content type.
func GetFoodPhoto(svc service.FoodService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "foodId")
		if !ok {
			return err
		}
		index, err := c.ParamsInt("index")
		if err != nil || index < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid photo index")
		}

		blob, err := svc.GetPhoto(c.UserContext(), id, index)
		if err != nil {
			return writeServiceError(c, err)
		}
		return sendBlob(c, blob)
	}
}

func sendBlob(c *fiber.Ctx, blob *model.Blob) error {
	c.Set(fiber.HeaderContentType, blob.ContentType)
	return c.Status(fiber.StatusOK).Send(blob.Data)
}
