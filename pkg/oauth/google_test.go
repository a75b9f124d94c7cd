package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func TestUserFromCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"abc","token_type":"Bearer","expires_in":3600}`))
		case "/userinfo":
			if r.Header.Get("Authorization") != "Bearer abc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"id":"g-1","email":"jane@store.test","verified_email":true,"given_name":"Jane"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"}).
		WithEndpoints(oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}, srv.URL+"/userinfo")

	user, err := g.UserFromCode(context.Background(), "code")
	if err != nil {
		t.Fatalf("UserFromCode: %v", err)
	}
	if user.ID != "g-1" || user.Email != "jane@store.test" || !user.VerifiedEmail {
		t.Fatalf("user = %+v", user)
	}

	if url := g.AuthURL("st4te"); !strings.Contains(url, "state=st4te") {
		t.Fatalf("auth url missing state: %s", url)
	}
}

func TestUserFromCodeNotConfigured(t *testing.T) {
	g := NewGoogle(GoogleConfig{})
	if _, err := g.UserFromCode(context.Background(), "code"); !errors.Is(err, ErrOAuthNotConfigured) {
		t.Fatalf("err = %v", err)
	}
}
