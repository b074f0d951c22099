package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/inkwell-app/inkwell/app/controllers"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Short share URLs
	app.Get("/b/:sharelink", controllers.HandleShareLink)

	// Social OAuth
	app.Get("/auth/:provider", controllers.HandleOAuthLogin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
	app.Get("/auth/logout", controllers.HandleOAuthLogout)
}
