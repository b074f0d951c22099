package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/internal/pkg/identity"
)

func injectIdentity(id *identity.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(identity.LocalsKey, id)
		return c.Next()
	}
}

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func TestRequireAuthWithoutIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/guarded", RequireAuth(okHandler))

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Authentication required", body["error"])
}

func TestRequireAuthWithIdentity(t *testing.T) {
	app := fiber.New()
	app.Use(injectIdentity(&identity.Identity{UserID: 7, Verified: true}))
	app.Get("/guarded", RequireAuth(okHandler))

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireVerifiedRejectsUnverified(t *testing.T) {
	app := fiber.New()
	app.Use(injectIdentity(&identity.Identity{UserID: 7, Verified: false}))
	app.Post("/guarded", RequireVerified(okHandler))

	resp, err := app.Test(httptest.NewRequest("POST", "/guarded", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body map[string]string
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Email verification required", body["error"])
}

func TestRequireVerifiedAllowsVerified(t *testing.T) {
	app := fiber.New()
	app.Use(injectIdentity(&identity.Identity{UserID: 7, Verified: true}))
	app.Post("/guarded", RequireVerified(okHandler))

	resp, err := app.Test(httptest.NewRequest("POST", "/guarded", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
