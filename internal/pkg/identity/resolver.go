package identity

import (
	"github.com/gofiber/fiber/v2"

	"github.com/inkwell-app/inkwell/app/models"
	"github.com/inkwell-app/inkwell/app/repository"
	"github.com/inkwell-app/inkwell/internal/pkg/session"
	"github.com/inkwell-app/inkwell/internal/pkg/token"
)

// Session keys written at login time
const (
	SessionAuthKey   = "authenticated"
	SessionUserID    = "user_id"
	SessionUserEmail = "user_email"
)

// Resolve unifies the two credential sources into one identity. The
// server-side session is consulted first: it is backed by live database
// state, so a browser carrying both a live session and a stale token cookie
// gets current verified/credits values instead of stale claims. The
// stateless token is the fallback. Returns nil when neither resolves;
// a partial identity is never returned.
func Resolve(c *fiber.Ctx) *Identity {
	if id := resolveSession(c); id != nil {
		return id
	}
	return resolveToken(c)
}

func resolveSession(c *fiber.Ctx) *Identity {
	store := session.GetSessionStore()
	if store == nil {
		return nil
	}
	sess, err := store.Get(c)
	if err != nil {
		return nil
	}
	userID, ok := sess.Get(SessionUserID).(uint)
	if !ok || userID == 0 {
		return nil
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(userID)
	if err != nil {
		return nil
	}
	return fromUser(user)
}

func resolveToken(c *fiber.Ctx) *Identity {
	raw := c.Cookies(token.CookieName)
	if raw == "" {
		return nil
	}
	claims, err := token.Verify(raw)
	if err != nil {
		return nil
	}

	// Claims carry no credits; fill them from storage. A token for a
	// deleted user does not resolve.
	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(claims.UserID)
	if err != nil {
		return nil
	}

	return &Identity{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Name:     claims.Name,
		Verified: claims.Verified,
		Credits:  user.Credits,
	}
}

// EstablishSession writes the authenticated user into the server-side
// session. Callers that also issue a token cookie end up with both
// credential sources pointing at the same user.
func EstablishSession(c *fiber.Ctx, u *models.User) error {
	store := session.GetSessionStore()
	if store == nil {
		return nil
	}
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(SessionAuthKey, true)
	sess.Set(SessionUserID, u.ID)
	sess.Set(SessionUserEmail, u.Email)
	return sess.Save()
}

func fromUser(u *models.User) *Identity {
	return &Identity{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Verified: u.Verified,
		Credits:  u.Credits,
	}
}
