package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyabelawras/api/app/controllers"
	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/router"
)

func workingTimeServer(t *testing.T) *httptest.Server {
	t.Helper()

	c := controllers.NewWorkingTimeController()
	r := router.New()
	r.Get("/api/working-times", "workingtimes.index", c.Index)
	r.Post("/api/working-times", "workingtimes.upsert", c.Upsert)

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	setupDB(t)
	srv := workingTimeServer(t)

	resp, env := postJSON(t, srv.URL+"/api/working-times", map[string]interface{}{
		"day":   "monday",
		"open":  "11:00",
		"close": "23:00",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.WorkingTime
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "monday", created.Day)

	// Second post for the same day must update, not duplicate.
	resp, env = postJSON(t, srv.URL+"/api/working-times", map[string]interface{}{
		"day":   "monday",
		"open":  "12:00",
		"close": "22:00",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.WorkingTime
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "12:00", updated.Open)
}

func TestUpsertClosedDayNeedsNoHours(t *testing.T) {
	setupDB(t)
	srv := workingTimeServer(t)

	resp, _ := postJSON(t, srv.URL+"/api/working-times", map[string]interface{}{
		"day":      "friday",
		"isClosed": true,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestUpsertOpenDayRequiresHours(t *testing.T) {
	setupDB(t)
	srv := workingTimeServer(t)

	resp, env := postJSON(t, srv.URL+"/api/working-times", map[string]interface{}{
		"day": "tuesday",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Open and close times are required unless the day is closed", env.Message)
}

func TestUpsertRejectsUnknownDay(t *testing.T) {
	setupDB(t)
	srv := workingTimeServer(t)

	resp, env := postJSON(t, srv.URL+"/api/working-times", map[string]interface{}{
		"day":   "someday",
		"open":  "11:00",
		"close": "23:00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "day")
}
