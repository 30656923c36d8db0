// Package routes wires controllers to paths. Public endpoints live under
// /api, admin endpoints behind JWT auth + role middleware.
package routes

import (
	"github.com/tyabelawras/api/app/controllers"
	appgraphql "github.com/tyabelawras/api/app/graphql"
	"github.com/tyabelawras/api/pkg/graphql"
	"github.com/tyabelawras/api/pkg/logger"
	"github.com/tyabelawras/api/pkg/middleware"
	"github.com/tyabelawras/api/pkg/rbac"
	"github.com/tyabelawras/api/pkg/router"
	"github.com/tyabelawras/api/pkg/workerpool"
	"github.com/tyabelawras/api/pkg/ws"
)

// RegisterAPI mounts every route. hub is the live order-notification hub;
// uploads bounds concurrent media writes across gallery and video uploads.
func RegisterAPI(r *router.Router, hub *ws.Hub, uploads *workerpool.Pool) {
	authC := controllers.NewAuthController()
	orderC := controllers.NewOrderController()
	menuC := controllers.NewMenuController()
	areaC := controllers.NewDeliveryAreaController()
	annC := controllers.NewAnnouncementController()
	galleryC := controllers.NewGalleryController(uploads)
	videoC := controllers.NewVideoController(uploads)
	ratingC := controllers.NewRatingController()
	contactC := controllers.NewContactController()
	newsC := controllers.NewNewsletterController()
	wtC := controllers.NewWorkingTimeController()
	userC := controllers.NewUserController()

	api := r.Group("/api")

	// Public surface, read by the website and the mobile app.
	api.Post("/auth/login", "auth.login", authC.Login)
	api.Get("/menu", "menu.index", menuC.Index)
	api.Get("/menu/{id}", "menu.show", menuC.Show)
	api.Get("/delivery-areas", "areas.index", areaC.Index)
	api.Get("/announcements", "announcements.index", annC.Index)
	api.Get("/gallery", "gallery.index", galleryC.Index)
	api.Get("/videos", "videos.index", videoC.Index)
	api.Get("/working-times", "workingtimes.index", wtC.Index)
	api.Post("/ratings", "ratings.store", ratingC.Store)
	api.Post("/contacts", "contacts.store", contactC.Store)
	api.Post("/newsletter/subscribe", "newsletter.subscribe", newsC.Subscribe)
	api.Post("/orders", "orders.store", orderC.Store)

	// Admin surface.
	admin := api.Group("", middleware.Auth, rbac.HasRole("admin", "superadmin"))

	admin.Get("/orders", "orders.index", orderC.Index)
	admin.Get("/orders/{id}", "orders.show", orderC.Show)
	admin.Put("/orders/{id}", "orders.update", orderC.UpdateStatus)

	admin.Post("/menu", "menu.store", menuC.Store)
	admin.Put("/menu/{id}", "menu.update", menuC.Update)
	admin.Delete("/menu/{id}", "menu.destroy", menuC.Destroy)

	admin.Post("/delivery-areas", "areas.store", areaC.Store)
	admin.Put("/delivery-areas/{id}", "areas.update", areaC.Update)
	admin.Delete("/delivery-areas/{id}", "areas.destroy", areaC.Destroy)

	admin.Post("/announcements", "announcements.store", annC.Store)
	admin.Put("/announcements/{id}", "announcements.update", annC.Update)
	admin.Delete("/announcements/{id}", "announcements.destroy", annC.Destroy)

	admin.Post("/gallery", "gallery.store", galleryC.Store)
	admin.Delete("/gallery/{id}", "gallery.destroy", galleryC.Destroy)

	admin.Post("/videos", "videos.store", videoC.Store)
	admin.Delete("/videos/{id}", "videos.destroy", videoC.Destroy)

	admin.Get("/ratings", "ratings.index", ratingC.Index)
	admin.Delete("/ratings/{id}", "ratings.destroy", ratingC.Destroy)

	admin.Get("/contacts", "contacts.index", contactC.Index)
	admin.Delete("/contacts/{id}", "contacts.destroy", contactC.Destroy)

	admin.Get("/newsletter", "newsletter.index", newsC.Index)
	admin.Post("/newsletter/send", "newsletter.send", newsC.Send)
	admin.Delete("/newsletter/{id}", "newsletter.destroy", newsC.Destroy)

	admin.Post("/working-times", "workingtimes.upsert", wtC.Upsert)

	// User management is superadmin only.
	users := api.Group("/users", middleware.Auth, rbac.HasRole("superadmin"))
	users.Get("", "users.index", userC.Index)
	users.Post("", "users.store", userC.Store)
	users.Put("/{id}", "users.update", userC.Update)
	users.Delete("/{id}", "users.destroy", userC.Destroy)

	// Live order notifications; JWT arrives as ?token= because browsers
	// can't set headers on WebSocket handshakes.
	r.Get("/ws/orders", "ws.orders", orderC.Notifications(hub))

	// Read-only GraphQL for the mobile app's combined content query.
	schema, err := appgraphql.NewSchema()
	if err != nil {
		logger.Error("graphql: schema build failed", "error", err)
		return
	}
	gqlHandler := graphql.Handler(schema)
	r.Get("/graphql", "graphql", gqlHandler)
	r.Post("/graphql", "", gqlHandler)
}
