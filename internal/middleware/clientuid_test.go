package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientUIDMintsCookie(t *testing.T) {
	var seen string
	h := ClientUID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientUIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/usage", nil))

	if seen == "" {
		t.Fatal("handler saw no client UID")
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == ClientUIDCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no db_uid cookie set")
	}
	if cookie.Value != seen {
		t.Errorf("cookie value %q != context value %q", cookie.Value, seen)
	}
	if !cookie.HttpOnly {
		t.Error("cookie should be http-only")
	}
}

func TestClientUIDReusesCookie(t *testing.T) {
	var seen string
	h := ClientUID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientUIDFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/v1/usage", nil)
	req.AddCookie(&http.Cookie{Name: ClientUIDCookie, Value: "existing-uid"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "existing-uid" {
		t.Errorf("context UID = %q, want existing-uid", seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no new cookie should be set when one exists")
	}
}

func TestClientUIDFromContextWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if uid := ClientUIDFromContext(req.Context()); uid != "" {
		t.Errorf("expected empty UID, got %q", uid)
	}
}
