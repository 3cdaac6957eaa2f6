package room

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(r http.Handler, method, path string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

func TestRoomHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, db := setupTestService(t)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))

	room := testutil.InsertRoom(t, db, "101")
	b := testutil.InsertBooking(t, db, room.ID, "2024-03-10", "2024-03-15", "500")

	t.Run("list", func(t *testing.T) {
		rr, env := doRequest(r, http.MethodGet, "/api/rooms")
		require.Equal(t, http.StatusOK, rr.Code)
		var rooms []map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &rooms))
		require.Len(t, rooms, 1)
		assert.Equal(t, "101", rooms[0]["room_number"])
	})

	t.Run("availability conflict", func(t *testing.T) {
		path := fmt.Sprintf("/api/rooms/%d/availability?check_in=2024-03-12&check_out=2024-03-20", room.ID)
		rr, env := doRequest(r, http.MethodGet, path)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var got Availability
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.False(t, got.Available)
		assert.Equal(t, []int64{b.ID}, got.Conflicts)
	})

	t.Run("availability free", func(t *testing.T) {
		path := fmt.Sprintf("/api/rooms/%d/availability?check_in=2024-03-15&check_out=2024-03-16", room.ID)
		rr, env := doRequest(r, http.MethodGet, path)
		require.Equal(t, http.StatusOK, rr.Code)
		var got Availability
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.True(t, got.Available)
		assert.Equal(t, []int64{}, got.Conflicts)
	})

	t.Run("availability errors", func(t *testing.T) {
		rr, env := doRequest(r, http.MethodGet, fmt.Sprintf("/api/rooms/%d/availability", room.ID))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "MISSING_FIELD", env.Error.Code)

		rr, env = doRequest(r, http.MethodGet, "/api/rooms/999/availability?check_in=2024-03-12&check_out=2024-03-13")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "ROOM_NOT_FOUND", env.Error.Code)

		rr, env = doRequest(r, http.MethodGet, "/api/rooms/x/availability")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rr, env := doRequest(r, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", room.ID))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "ROOM_IN_USE", env.Error.Code)

		spare := testutil.InsertRoom(t, db, "102")
		rr, _ = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", spare.ID))
		assert.Equal(t, http.StatusOK, rr.Code)

		rr, env = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", spare.ID))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "ROOM_NOT_FOUND", env.Error.Code)
	})
}
