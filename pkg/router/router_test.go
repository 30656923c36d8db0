package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tyabelawras/api/pkg/router"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/menu/{id}", "menu.show", ok)

	path, found := r.Path("menu.show")
	if !found {
		t.Fatal("expected menu.show to be registered")
	}
	if path != "/menu/{id}" {
		t.Errorf("expected /menu/{id}, got %s", path)
	}

	url, err := r.URL("menu.show", map[string]string{"id": "7"})
	if err != nil {
		t.Fatalf("URL returned error: %v", err)
	}
	if url != "/menu/7" {
		t.Errorf("expected /menu/7, got %s", url)
	}
}

func TestURLMissingParams(t *testing.T) {
	r := router.New()
	r.Get("/orders/{id}", "orders.show", ok)

	if _, err := r.URL("orders.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupPrefixAndMethods(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	admin := api.Group("/admin")

	admin.Get("/orders", "orders.index", ok)
	admin.Put("/orders/{id}", "orders.update", ok)
	admin.Delete("/orders/{id}", "orders.destroy", ok)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/admin/orders"},
		{http.MethodPut, "/api/admin/orders/3"},
		{http.MethodDelete, "/api/admin/orders/3"},
	} {
		req, _ := http.NewRequest(tc.method, srv.URL+tc.path, nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s %s: expected 200, got %d", tc.method, tc.path, resp.StatusCode)
		}
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	stamp := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Stamped", "yes")
			next.ServeHTTP(w, r)
		})
	}

	r := router.New()
	g := r.Group("/api", stamp)
	g.Get("/menu", "menu.index", ok)
	r.Get("/plain", "plain", ok)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/menu")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Stamped") != "yes" {
		t.Error("expected group middleware to run")
	}

	resp, err = http.Get(srv.URL + "/plain")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Stamped") != "" {
		t.Error("group middleware must not leak onto ungrouped routes")
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/b", "route.b", ok)
	r.Get("/a", "route.a", ok)
	r.Post("/c", "", ok) // unnamed, must not appear

	lines := r.Routes()
	if len(lines) != 2 {
		t.Fatalf("expected 2 named routes, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "route.a") {
		t.Errorf("expected sorted output, got %q first", lines[0])
	}
}
