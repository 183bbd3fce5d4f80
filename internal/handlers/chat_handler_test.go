package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coffee-chat-backend/internal/api"
	"coffee-chat-backend/internal/config"
	"coffee-chat-backend/internal/dto"
	"coffee-chat-backend/internal/logger"
	"coffee-chat-backend/internal/models"
	"coffee-chat-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Chat{}))

	cfg := &config.Config{
		App:    config.AppConfig{Name: "test", Environment: config.EnvDevelopment, AllowedHosts: []string{"*"}},
		Static: config.StaticConfig{URL: "/static", Root: t.TempDir()},
		CORS:   config.CORSConfig{AllowOrigins: []string{"*"}},
	}
	app := api.NewServer(cfg, logger.NewNop())

	h := NewChatHandler(repo.NewChatRepository(db))
	r := app.Group("/api")
	r.Get("/chats", h.ListChats)
	r.Post("/chats", h.CreateChat)
	r.Get("/chats/:id", h.GetChat)
	r.Put("/chats/:id", h.UpdateChat)
	r.Patch("/chats/:id", h.UpdateChat)
	r.Delete("/chats/:id", h.DeleteChat)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func createChat(t *testing.T, app *fiber.App, guest, date, notes string) dto.ChatResponse {
	t.Helper()
	body := fmt.Sprintf(`{"guest":%q,"chat_date":%q,"notes":%q}`, guest, date, notes)
	resp, raw := doJSON(t, app, fiber.MethodPost, "/api/chats", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	var chat dto.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &chat))
	return chat
}

type errorBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

func TestChatHandler_CreateThenRetrieve(t *testing.T) {
	app := newTestApp(t)

	created := createChat(t, app, "Ada Lovelace", "2024-05-17", "talked about engines")
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Ada Lovelace", created.Guest)
	assert.Equal(t, "2024-05-17", created.ChatDate)
	assert.Equal(t, "talked about engines", created.Notes)

	resp, raw := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/chats/%d", created.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got dto.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, created, got)
}

func TestChatHandler_ResponseKeys(t *testing.T) {
	app := newTestApp(t)
	created := createChat(t, app, "Ada", "2024-05-17", "")

	_, raw := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/chats/%d", created.ID), "")
	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &obj))

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"id", "guest", "chat_date", "notes"}, keys)
}

func TestChatHandler_CreateValidation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"guest too long", `{"guest":"` + strings.Repeat("g", 51) + `","chat_date":"2024-01-01","notes":""}`, "guest"},
		{"missing chat_date", `{"guest":"Ada","notes":""}`, "chat_date"},
		{"missing notes", `{"guest":"Ada","chat_date":"2024-01-01"}`, "notes"},
		{"malformed body", `not json`, dto.NonFieldErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doJSON(t, app, fiber.MethodPost, "/api/chats", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var body errorBody
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Contains(t, body.Fields, tt.field)
		})
	}

	// nothing was stored by the rejected requests
	_, raw := doJSON(t, app, fiber.MethodGet, "/api/chats", "")
	assert.JSONEq(t, `[]`, string(raw))
}

func TestChatHandler_UpdateFull(t *testing.T) {
	app := newTestApp(t)
	created := createChat(t, app, "Grace", "2024-01-10", "navy")

	path := fmt.Sprintf("/api/chats/%d", created.ID)
	resp, raw := doJSON(t, app, fiber.MethodPut, path, `{"guest":"Grace Hopper","chat_date":"2024-01-11","notes":"compilers"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	_, raw = doJSON(t, app, fiber.MethodGet, path, "")
	var got dto.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, dto.ChatResponse{ID: created.ID, Guest: "Grace Hopper", ChatDate: "2024-01-11", Notes: "compilers"}, got)
}

func TestChatHandler_UpdatePartialKeepsOtherFields(t *testing.T) {
	app := newTestApp(t)
	created := createChat(t, app, "Grace", "2024-01-10", "navy")

	path := fmt.Sprintf("/api/chats/%d", created.ID)
	resp, raw := doJSON(t, app, fiber.MethodPatch, path, `{"notes":"cobol"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	_, raw = doJSON(t, app, fiber.MethodGet, path, "")
	var got dto.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Grace", got.Guest)
	assert.Equal(t, "2024-01-10", got.ChatDate)
	assert.Equal(t, "cobol", got.Notes)
}

func TestChatHandler_UpdateErrors(t *testing.T) {
	app := newTestApp(t)
	created := createChat(t, app, "Grace", "2024-01-10", "navy")
	path := fmt.Sprintf("/api/chats/%d", created.ID)

	// PUT needs every field
	resp, raw := doJSON(t, app, fiber.MethodPut, path, `{"notes":"only notes"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body.Fields, "guest")
	assert.Contains(t, body.Fields, "chat_date")

	resp, _ = doJSON(t, app, fiber.MethodPatch, path, `{"chat_date":"tomorrow"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPut, "/api/chats/999", `{"guest":"x","chat_date":"2024-01-01","notes":""}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// the rejected requests left the record untouched
	_, raw = doJSON(t, app, fiber.MethodGet, path, "")
	var got dto.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, created, got)
}

func TestChatHandler_Delete(t *testing.T) {
	app := newTestApp(t)
	created := createChat(t, app, "Linus", "2024-02-02", "git")
	path := fmt.Sprintf("/api/chats/%d", created.ID)

	resp, raw := doJSON(t, app, fiber.MethodDelete, path, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Empty(t, raw)

	resp, raw = doJSON(t, app, fiber.MethodGet, path, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Chat not found"}`, string(raw))

	resp, _ = doJSON(t, app, fiber.MethodDelete, path, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestChatHandler_UnknownIDs(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/chats/12345", "/api/chats/abc", "/api/chats/0", "/api/chats/-1"} {
		resp, _ := doJSON(t, app, fiber.MethodGet, path, "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
	}
}

func TestChatHandler_ListReflectsLiveRecords(t *testing.T) {
	app := newTestApp(t)

	a := createChat(t, app, "a", "2024-01-01", "")
	b := createChat(t, app, "b", "2024-01-02", "")
	c := createChat(t, app, "c", "2024-01-03", "")

	resp, _ := doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/chats/%d", b.ID), "")
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// trailing slash form used by the web client
	resp, raw := doJSON(t, app, fiber.MethodGet, "/api/chats/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list []dto.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, []dto.ChatResponse{a, c}, list)
}
