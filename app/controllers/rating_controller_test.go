package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tyabelawras/api/app/controllers"
	"github.com/tyabelawras/api/pkg/router"
)

func ratingServer(t *testing.T) *httptest.Server {
	t.Helper()

	c := controllers.NewRatingController()
	r := router.New()
	r.Post("/api/ratings", "ratings.store", c.Store)
	r.Get("/api/ratings", "ratings.index", c.Index)

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestRatingStore(t *testing.T) {
	setupDB(t)
	srv := ratingServer(t)

	resp, env := postJSON(t, srv.URL+"/api/ratings", map[string]interface{}{
		"name":    "Amine",
		"rating":  5,
		"comment": "Best chakhchoukha in town",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Thank you for your feedback", env.Message)
}

func TestRatingBounds(t *testing.T) {
	setupDB(t)
	srv := ratingServer(t)

	for _, rating := range []int{0, 6, -1} {
		resp, env := postJSON(t, srv.URL+"/api/ratings", map[string]interface{}{
			"name":   "Amine",
			"rating": rating,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "rating %d", rating)
		assert.Contains(t, env.Errors, "rating")
	}
}

func TestRatingCommentOptional(t *testing.T) {
	setupDB(t)
	srv := ratingServer(t)

	resp, _ := postJSON(t, srv.URL+"/api/ratings", map[string]interface{}{
		"name":   "Amine",
		"rating": 4,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
