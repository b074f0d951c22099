package identity

import "github.com/gofiber/fiber/v2"

// Locals key under which the access gate stashes the resolved identity
const LocalsKey = "IDENTITY"

// Identity is the resolved, trusted representation of the requester. It is
// derived per request and carries no secrets.
type Identity struct {
	UserID   uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
	Credits  uint   `json:"credits"`
}

// FromCtx retrieves the identity stashed by the access gate, or nil for an
// anonymous request.
func FromCtx(c *fiber.Ctx) *Identity {
	if v := c.Locals(LocalsKey); v != nil {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}
	return nil
}

// IsLoggedIn checks whether the current request carries a resolved identity.
func IsLoggedIn(c *fiber.Ctx) bool {
	return FromCtx(c) != nil
}

// UserID returns the current user's ID, or 0 for anonymous requests.
func UserID(c *fiber.Ctx) uint {
	if id := FromCtx(c); id != nil {
		return id.UserID
	}
	return 0
}
