package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"net/http"
)

const testPassword = "SecurePass12!@"

// newTestServer builds a Server backed by an in-memory sqlite database with
// no Redis, plus a Fiber app with the full route table.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         database.NewGormLogger(),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		JWTSecret:    "test-secret-key-at-least-32-chars!!",
		Port:         "0",
		Env:          "test",
		FeatureFlags: "live_updates=on",
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// createTestUser inserts a user with the given approved offered skills.
func createTestUser(t *testing.T, s *Server, username string, offered ...string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		IsPublic: true,
	}
	require.NoError(t, s.db.Create(user).Error)

	for _, name := range offered {
		addApprovedSkill(t, s, user, name)
	}
	return user
}

// addApprovedSkill attaches an approved directory skill to the user's offered set.
func addApprovedSkill(t *testing.T, s *Server, user *models.User, name string) *models.Skill {
	t.Helper()

	skill := models.Skill{Name: name, Status: models.SkillStatusApproved}
	require.NoError(t, s.db.Where("name = ?", name).FirstOrCreate(&skill).Error)
	require.NoError(t, s.db.Model(user).Association("OfferedSkills").Append(&skill))
	user.OfferedSkills = append(user.OfferedSkills, skill)
	return &skill
}

func tokenFor(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return token
}

// doRequest performs an HTTP request against the test app, optionally with a
// JSON body and bearer token.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	return body.Code
}
