package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tyabelawras/api/app/controllers"
	"github.com/tyabelawras/api/pkg/router"
)

func newsletterServer(t *testing.T) *httptest.Server {
	t.Helper()

	c := controllers.NewNewsletterController()
	r := router.New()
	r.Post("/api/newsletter/subscribe", "newsletter.subscribe", c.Subscribe)
	r.Get("/api/newsletter", "newsletter.index", c.Index)
	r.Delete("/api/newsletter/{id}", "newsletter.destroy", c.Destroy)

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestSubscribe(t *testing.T) {
	setupDB(t)
	srv := newsletterServer(t)

	resp, env := postJSON(t, srv.URL+"/api/newsletter/subscribe",
		map[string]string{"email": "amine@example.com"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Subscribed successfully", env.Message)
}

func TestSubscribeDuplicate(t *testing.T) {
	setupDB(t)
	srv := newsletterServer(t)

	body := map[string]string{"email": "amine@example.com"}
	postJSON(t, srv.URL+"/api/newsletter/subscribe", body)

	resp, env := postJSON(t, srv.URL+"/api/newsletter/subscribe", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already subscribed", env.Message)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	setupDB(t)
	srv := newsletterServer(t)

	resp, env := postJSON(t, srv.URL+"/api/newsletter/subscribe",
		map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "email")
}
