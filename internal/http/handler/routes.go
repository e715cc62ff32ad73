package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foodhood/internal/http/middleware"
	"foodhood/internal/service"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Foods   service.FoodService
	Orders  service.OrderService
	Avatars service.AvatarService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Routes that act on behalf of a user require middleware.CallerID.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services, gatherer prometheus.Gatherer) {
	caller := middleware.CallerID()

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	food := app.Group("/food")
	food.Get("", ListFoods(svcs.Foods))
	food.Post("", caller, CreateFood(svcs.Foods))
	food.Get("/:foodId", GetFood(svcs.Foods))
	food.Post("/:foodId/photos", AddFoodPhotos(svcs.Foods))
	food.Get("/:foodId/photos/:index", GetFoodPhoto(svcs.Foods))
	food.Get("/:foodId/order", caller, ClaimFood(svcs.Orders))
	food.Get("/:foodId/status", FoodStatus(svcs.Orders))

	order := app.Group("/order", caller)
	order.Get("", ListMyOrders(svcs.Orders))
	order.Put("/:orderId", UpdateOrder(svcs.Orders))
	order.Delete("/:orderId", CancelOrder(svcs.Orders))

	avatar := app.Group("/avatar")
	avatar.Get("", caller, GetMyAvatar(svcs.Avatars))
	avatar.Post("", caller, PutAvatar(svcs.Avatars))
	avatar.Delete("", caller, DeleteAvatar(svcs.Avatars))
	avatar.Get("/:userId", GetUserAvatar(svcs.Avatars))
}
