package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/inkwell-app/inkwell/internal/pkg/constants"
	"github.com/inkwell-app/inkwell/internal/pkg/identity"
)

// RouteClass is the access classification of a path.
type RouteClass int

const (
	// Public routes need no identity.
	Public RouteClass = iota
	// AuthOnly routes (login/signup) must NOT be visited while authenticated.
	AuthOnly
	// Protected routes require a resolved identity.
	Protected
)

type routePolicy struct {
	Prefix string
	Class  RouteClass
}

// routePolicies is the single declarative policy table. Longest matching
// prefix wins, so /api/auth stays public while the rest of /api is
// protected. Adding a protected route is a one-line edit here, not a new
// inline check in a handler.
var routePolicies = []routePolicy{
	{Prefix: "/api/auth", Class: Public},
	{Prefix: "/api/user", Class: Protected},
	{Prefix: "/api/blog", Class: Protected},
	{Prefix: "/api/subscription", Class: Protected},
	{Prefix: "/login", Class: AuthOnly},
	{Prefix: "/signup", Class: AuthOnly},
	{Prefix: "/verify-email", Class: Public},
	{Prefix: "/dashboard", Class: Protected},
	{Prefix: "/profile", Class: Protected},
	{Prefix: "/subscription", Class: Protected},
	{Prefix: "/blogs", Class: Public},
	{Prefix: "/", Class: Public},
}

// Classify resolves a request path to its route class via longest-prefix
// match against the policy table.
func Classify(path string) RouteClass {
	best := routePolicy{Class: Public}
	bestLen := -1
	for _, p := range routePolicies {
		if strings.HasPrefix(path, p.Prefix) && len(p.Prefix) > bestLen {
			best = p
			bestLen = len(p.Prefix)
		}
	}
	return best.Class
}

// AccessGate classifies the path, resolves the caller's identity once, and
// enforces the route policy before any handler runs. Handlers read the
// resolved identity from locals.
func AccessGate(c *fiber.Ctx) error {
	path := c.Path()

	// Goth keeps per-request OAuth state in its own session store; touching
	// our app session on /auth/* causes cross-store collisions.
	if strings.HasPrefix(path, "/auth/") {
		return c.Next()
	}

	id := identity.Resolve(c)
	if id != nil {
		c.Locals(identity.LocalsKey, id)
	}

	switch Classify(path) {
	case AuthOnly:
		if id != nil {
			return c.Redirect(constants.DashboardRoute, fiber.StatusSeeOther)
		}
	case Protected:
		if id == nil {
			if strings.HasPrefix(path, "/api/") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Authentication required",
				})
			}
			return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
		}
	}

	return c.Next()
}
