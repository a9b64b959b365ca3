package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"aicareer/config"
	"aicareer/database"
	"aicareer/logger"
	"aicareer/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type fixture struct {
	app   *fiber.App
	db    *gorm.DB
	admin models.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := database.Connect(&config.Config{
		DBDriver:       "sqlite",
		DBName:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}, logger.Nop())
	require.NoError(t, err)

	admin := models.User{Name: "admin", Email: "admin@example.com", Password: "x", Status: models.StatusActive, Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)
	return fixture{app: newApp(db), db: db, admin: admin}
}

func (f fixture) adminToken(t *testing.T) string {
	t.Helper()
	token, err := GenerateJWT(testSecret, time.Hour, f.admin.ID, "admin", "admin@example.com", true)
	require.NoError(t, err)
	return token
}

func newApp(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(AccessLog(logger.Nop()))
	admin := app.Group("/admin", JWTMiddleware(testSecret), RequireAdmin(db))
	admin.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": c.Locals("userId")})
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "nothing here")
	})
	return app
}

func decode(t *testing.T, app *fiber.App, token, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	var body map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestAdminRoutesRequireAdminClaim(t *testing.T) {
	f := newFixture(t)
	app := f.app

	status, body := decode(t, app, "", "/admin/ping")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, KindUnauthorized, body["error"])

	status, _ = decode(t, app, "not-a-jwt", "/admin/ping")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	learner, err := GenerateJWT(testSecret, time.Hour, 7, "alice", "alice@example.com", false)
	require.NoError(t, err)
	status, body = decode(t, app, learner, "/admin/ping")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, KindForbidden, body["error"])

	status, body = decode(t, app, f.adminToken(t), "/admin/ping")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(f.admin.ID), body["userId"])
}

func TestAdminAccessFollowsStoredAccount(t *testing.T) {
	f := newFixture(t)
	token := f.adminToken(t)

	require.NoError(t, f.db.Model(&f.admin).Update("status", models.StatusSuspended).Error)
	status, body := decode(t, f.app, token, "/admin/ping")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, KindForbidden, body["error"])

	require.NoError(t, f.db.Model(&f.admin).Updates(map[string]interface{}{"status": models.StatusActive, "role": models.RoleLearner}).Error)
	status, _ = decode(t, f.app, token, "/admin/ping")
	assert.Equal(t, fiber.StatusForbidden, status)

	learner := models.User{Name: "alice", Email: "alice@example.com", Password: "x", Status: models.StatusActive, Role: models.RoleLearner}
	require.NoError(t, f.db.Create(&learner).Error)
	forged, err := GenerateJWT(testSecret, time.Hour, learner.ID, "alice", "alice@example.com", true)
	require.NoError(t, err)
	status, _ = decode(t, f.app, forged, "/admin/ping")
	assert.Equal(t, fiber.StatusForbidden, status)

	require.NoError(t, f.db.Delete(&learner).Error)
	status, _ = decode(t, f.app, forged, "/admin/ping")
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestExpiredOrForeignTokenRejected(t *testing.T) {
	app := newFixture(t).app

	expired, err := GenerateJWT(testSecret, -time.Minute, 1, "admin", "admin@example.com", true)
	require.NoError(t, err)
	status, _ := decode(t, app, expired, "/admin/ping")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	foreign, err := GenerateJWT("other-secret", time.Hour, 1, "admin", "admin@example.com", true)
	require.NoError(t, err)
	status, _ = decode(t, app, foreign, "/admin/ping")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestErrorHandlerShape(t *testing.T) {
	app := newFixture(t).app
	status, body := decode(t, app, "", "/boom")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, KindNotFound, body["error"])
	assert.Equal(t, "nothing here", body["message"])
}
