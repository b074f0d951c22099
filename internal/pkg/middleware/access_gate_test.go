package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want RouteClass
	}{
		{path: "/", want: Public},
		{path: "/blogs", want: Public},
		{path: "/blogs/42", want: Public},
		{path: "/login", want: AuthOnly},
		{path: "/signup", want: AuthOnly},
		{path: "/verify-email", want: Public},
		{path: "/dashboard", want: Protected},
		{path: "/profile", want: Protected},
		{path: "/subscription", want: Protected},
		{path: "/api/auth/login", want: Public},
		{path: "/api/auth/status", want: Public},
		{path: "/api/user/profile", want: Protected},
		{path: "/api/blog", want: Protected},
		{path: "/api/blog/7/view", want: Protected},
		{path: "/api/subscription/create", want: Protected},
		{path: "/b/abc123", want: Public},
		{path: "/some/unknown/path", want: Public},
	}

	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Fatalf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func gateApp() *fiber.App {
	app := fiber.New()
	app.Use(AccessGate)
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendString("handler reached")
	})
	return app
}

func TestAccessGateUnauthenticatedAPI(t *testing.T) {
	app := gateApp()

	req := httptest.NewRequest("GET", "/api/user/profile", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Authentication required", body["error"])
}

func TestAccessGateUnauthenticatedPage(t *testing.T) {
	app := gateApp()

	req := httptest.NewRequest("GET", "/dashboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestAccessGatePublicPassesThrough(t *testing.T) {
	app := gateApp()

	for _, path := range []string{"/", "/blogs", "/api/auth/status"} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "path %s", path)
	}
}

func TestAccessGateAuthOnlyWithoutIdentity(t *testing.T) {
	app := gateApp()

	// Unauthenticated visitors may see the login page
	req := httptest.NewRequest("GET", "/login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAccessGateSkipsOAuthPaths(t *testing.T) {
	app := gateApp()

	req := httptest.NewRequest("GET", "/auth/google", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
