package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/inkwell-app/inkwell/app/controllers"
	"github.com/inkwell-app/inkwell/internal/pkg/env"
	"github.com/inkwell-app/inkwell/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))

	group.Get("/", controllers.HandleHome)
	group.Get("/blogs", controllers.HandleBlogsPage)
	group.Get("/blogs/:id", controllers.HandleBlogDetailPage)

	group.Get("/login", controllers.HandleLoginPage)
	group.Post("/login", controllers.HandleLoginPage)
	group.Get("/signup", controllers.HandleSignupPage)
	group.Post("/signup", controllers.HandleSignupPage)
	group.Get("/verify-email", controllers.HandleVerifyPage)
	group.Post("/verify-email", controllers.HandleVerifyPage)

	group.Get("/dashboard", middleware.RequireAuth(controllers.HandleDashboardPage))
	group.Get("/profile", middleware.RequireAuth(controllers.HandleProfilePage))
	group.Get("/subscription", middleware.RequireAuth(controllers.HandleSubscriptionPage))
}
