package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/inkwell-app/inkwell/app/controllers"
	"github.com/inkwell-app/inkwell/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
	}))

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", controllers.HandleSignup)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/logout", controllers.HandleLogout)
	auth.Post("/verify", controllers.HandleVerify)
	auth.Put("/verify", controllers.HandleResendVerification)
	auth.Get("/status", controllers.HandleAuthStatus)

	// User
	user := api.Group("/user")
	user.Get("/profile", middleware.RequireAuth(controllers.HandleUserProfile))
	user.Put("/profile", middleware.RequireAuth(controllers.HandleUserUpdate))
	user.Get("/blogs", middleware.RequireAuth(controllers.HandleUserBlogs))

	// Blog
	blog := api.Group("/blog")
	blog.Get("/", controllers.HandleBlogList)
	blog.Get("/featured", controllers.HandleBlogFeatured)
	blog.Get("/:id", controllers.HandleBlogGet)
	blog.Post("/", middleware.RequireVerified(controllers.HandleBlogCreate))
	blog.Put("/:id", middleware.RequireAuth(controllers.HandleBlogUpdate))
	blog.Delete("/:id", middleware.RequireAuth(controllers.HandleBlogDelete))
	blog.Post("/:id/view", middleware.RequireAuth(controllers.HandleBlogView))
	blog.Get("/:id/comments", controllers.HandleCommentList)
	blog.Post("/:id/comments", middleware.RequireVerified(controllers.HandleCommentCreate))

	// Subscription
	sub := api.Group("/subscription")
	sub.Post("/create", middleware.RequireVerified(controllers.HandleSubscriptionCreate))
	sub.Post("/verify", middleware.RequireAuth(controllers.HandleSubscriptionVerify))
	sub.Get("/status", middleware.RequireAuth(controllers.HandleSubscriptionStatus))
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
