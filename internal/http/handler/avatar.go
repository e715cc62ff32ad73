package handler

import (
	"github.com/gofiber/fiber/v2"

	"foodhood/internal/http/middleware"
	"foodhood/internal/service"
)

// GetMyAvatar writes the caller's avatar, or the default image.
func GetMyAvatar(svc service.AvatarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.Caller(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		blob, err := svc.Get(c.UserContext(), user)
		if err != nil {
			return writeServiceError(c, err)
		}
		return sendBlob(c, blob)
	}
}

// GetUserAvatar writes the avatar of the user in the path.
func GetUserAvatar(svc service.AvatarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok, err := paramID(c, "userId")
		if !ok {
			return err
		}
		blob, err := svc.Get(c.UserContext(), user)
		if err != nil {
			return writeServiceError(c, err)
		}
		return sendBlob(c, blob)
	}
}

// PutAvatar replaces the caller's avatar with the multipart part "file".
func PutAvatar(svc service.AvatarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.Caller(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		u, err := readUpload(fh)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}

		if err := svc.Put(c.UserContext(), user, u); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusCreated)
	}
}

// DeleteAvatar removes the caller's avatar.
func DeleteAvatar(svc service.AvatarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.Caller(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		if err := svc.Delete(c.UserContext(), user); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
