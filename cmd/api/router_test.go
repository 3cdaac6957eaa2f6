package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/config"
	"hotelbooking/internal/lock"
	"hotelbooking/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "dev",
		CORSAllowedOrigins: "http://localhost:4200",
		Location:           time.UTC,
	}
}

func TestRouterEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewSQLite(t)
	r := newRouter(testConfig(), db, lock.Noop{})
	room := testutil.InsertRoom(t, db, "101")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	body, _ := json.Marshal(map[string]any{
		"room_id":        room.ID,
		"guest_name":     "Ann",
		"check_in_date":  "2030-01-10",
		"check_out_date": "2030-01-12",
		"total_amount":   400,
		"deposit_amount": 100,
		"cash_amount":    150,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/rooms/%d/availability?check_in=2030-01-11&check_out=2030-01-13", room.ID), nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Data struct {
			Available bool `json:"available"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.False(t, env.Data.Available)
}

func TestHealthzReportsClosedDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewSQLite(t)
	r := newRouter(testConfig(), db, lock.Noop{})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
