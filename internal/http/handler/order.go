package handler

import (
	"github.com/gofiber/fiber/v2"

	"foodhood/internal/http/middleware"
	"foodhood/internal/model"
	"foodhood/internal/service"
)

// ClaimFood returns the caller's order on the food, creating it if needed.
func ClaimFood(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.Caller(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		foodID, ok, err := paramID(c, "foodId")
		if !ok {
			return err
		}

		order, err := svc.Claim(c.UserContext(), foodID, user)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(order)
	}
}

// FoodStatus lists all orders placed on a food.
func FoodStatus(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		foodID, ok, err := paramID(c, "foodId")
		if !ok {
			return err
		}
		orders, err := svc.ListForFood(c.UserContext(), foodID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(orders)
	}
}

// ListMyOrders lists the caller's orders.
func ListMyOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.Caller(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		orders, err := svc.ListMine(c.UserContext(), user)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(orders)
	}
}

// UpdateOrder applies a partial update of the received/complete flags.
func UpdateOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.Caller(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		orderID, ok, err := paramID(c, "orderId")
		if !ok {
			return err
		}

		var u model.OrderUpdate
		if err := c.BodyParser(&u); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		order, err := svc.Update(c.UserContext(), orderID, user, u)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(order)
	}
}

// CancelOrder deletes one of the caller's orders.
func CancelOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.Caller(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		orderID, ok, err := paramID(c, "orderId")
		if !ok {
			return err
		}

		if err := svc.Cancel(c.UserContext(), orderID, user); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
