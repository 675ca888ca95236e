package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-jwt-secret"

func issueToken(t *testing.T, secret, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":   "8e7a3e8e-0000-4000-8000-000000000001",
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin",
		AuthJWT(AuthJWTOpts{Secret: testSecret}),
		RequireRoles("admin"),
		func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})
	return app
}

func request(t *testing.T, app *fiber.App, authz string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if authz != "" {
		req.Header.Set(fiber.HeaderAuthorization, authz)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthJWTFailsClosed(t *testing.T) {
	app := newProtectedApp()

	if code := request(t, app, ""); code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", code)
	}
	if code := request(t, app, "Bearer not-a-token"); code != http.StatusUnauthorized {
		t.Errorf("garbage token: status %d, want 401", code)
	}

	forged := issueToken(t, "attacker-secret", "admin", time.Hour)
	if code := request(t, app, "Bearer "+forged); code != http.StatusUnauthorized {
		t.Errorf("forged token: status %d, want 401", code)
	}

	expired := issueToken(t, testSecret, "admin", -time.Hour)
	if code := request(t, app, "Bearer "+expired); code != http.StatusUnauthorized {
		t.Errorf("expired token: status %d, want 401", code)
	}
}

func TestRequireRoles(t *testing.T) {
	app := newProtectedApp()

	viewer := issueToken(t, testSecret, "viewer", time.Hour)
	if code := request(t, app, "Bearer "+viewer); code != http.StatusForbidden {
		t.Errorf("wrong role: status %d, want 403", code)
	}

	admin := issueToken(t, testSecret, "admin", time.Hour)
	if code := request(t, app, "Bearer "+admin); code != http.StatusOK {
		t.Errorf("admin: status %d, want 200", code)
	}
}
