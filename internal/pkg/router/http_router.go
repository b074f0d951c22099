package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/inkwell-app/inkwell/internal/pkg/middleware"
	"github.com/inkwell-app/inkwell/internal/pkg/oauth"
	"github.com/inkwell-app/inkwell/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Route-policy gate runs before everything else
	app.Use(middleware.AccessGate)

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
