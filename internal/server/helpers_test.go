package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"bayaaz/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

// --- humanizeParam (pure function, no HTTP) ---

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"poemId", "poem ID"},
		{"poetId", "poet ID"},
		{"userId", "user ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

// --- parsePagination ---

func TestParsePagination_Defaults(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, 25)
		return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset})
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, float64(25), body["limit"])
	assert.Equal(t, float64(0), body["offset"])
}

func TestParsePagination_CapsLimit(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, 25)
		return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset})
	})

	req := httptest.NewRequest(http.MethodGet, "/items?limit=5000&offset=30", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, float64(100), body["limit"])
	assert.Equal(t, float64(30), body["offset"])
}

// --- parsePageLimit ---

func pageLimitApp(s *Server) *fiber.App {
	app := fiber.New()
	app.Get("/feed", func(c *fiber.Ctx) error {
		page, limit, err := s.parsePageLimit(c)
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"page": page, "limit": limit})
	})
	return app
}

func TestParsePageLimit_Defaults(t *testing.T) {
	app := pageLimitApp(&Server{})

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(10), body["limit"])
}

func TestParsePageLimit_RejectsNonNumeric(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"alpha page", "/feed?page=abc", "page must be a positive integer"},
		{"decimal page", "/feed?page=1.5", "page must be a positive integer"},
		{"negative page", "/feed?page=-1", "page must be a positive integer"},
		{"zero page", "/feed?page=0", "page must be a positive integer"},
		{"alpha limit", "/feed?limit=ten", "limit must be a positive integer"},
		{"zero limit", "/feed?limit=0", "limit must be a positive integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := pageLimitApp(&Server{})

			req := httptest.NewRequest(http.MethodGet, tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestParsePageLimit_CapsLimit(t *testing.T) {
	app := pageLimitApp(&Server{})

	req := httptest.NewRequest(http.MethodGet, "/feed?page=2&limit=5000", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(100), body["limit"])
}

// --- parseID ---

func TestParseID_ValidID(t *testing.T) {
	app := fiber.New()
	s := &Server{}
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestParseID_InvalidNonNumeric(t *testing.T) {
	app := fiber.New()
	s := &Server{}
	app.Get("/items/:poemId", func(c *fiber.Ctx) error {
		_, _ = s.parseID(c, "poemId")
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/items/abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid poem ID", body["error"])
}

// --- isAdmin / AdminRequired ---

func TestIsAdmin_True(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	s := &Server{db: gormDB}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "is_admin" FROM "users"`)).
		WithArgs(uint(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}).AddRow(true))

	app := fiber.New()
	app.Get("/check", func(c *fiber.Ctx) error {
		admin, err := s.isAdmin(c, 1)
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"admin": admin})
	})

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["admin"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRequired_RejectsNonAdmin(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	s := &Server{db: gormDB}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "is_admin" FROM "users"`)).
		WithArgs(uint(2), 1).
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}).AddRow(false))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(2))
		return c.Next()
	})
	app.Get("/admin", s.AdminRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- respondServiceError ---

func TestRespondServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", models.NewNotFoundError("Poem", 1), http.StatusNotFound},
		{"validation", models.NewValidationError("bad input"), http.StatusBadRequest},
		{"unauthorized", models.NewUnauthorizedError("no token"), http.StatusUnauthorized},
		{"forbidden", models.NewForbiddenError("not yours"), http.StatusForbidden},
		{"conflict", models.NewConflictError("duplicate"), http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/err", func(c *fiber.Ctx) error {
				return respondServiceError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/err", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
