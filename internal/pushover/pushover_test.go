package pushover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSend(t *testing.T) {
	t.Parallel()

	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		got = map[string]string{
			"token":   r.PostFormValue("token"),
			"user":    r.PostFormValue("user"),
			"message": r.PostFormValue("message"),
			"title":   r.PostFormValue("title"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New("user-key", "api-token")
	c.endpoint = srv.URL

	if err := c.Send(context.Background(), "booked Sat 8:30am", "Success"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	want := map[string]string{
		"token":   "api-token",
		"user":    "user-key",
		"message": "booked Sat 8:30am",
		"title":   "Success",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("form %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestSendNon2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":["application token is invalid"]}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New("user-key", "bad-token")
	c.endpoint = srv.URL

	if err := c.Send(context.Background(), "msg", ""); err == nil {
		t.Fatal("Send: expected error on 401")
	}
}

func TestConfigured(t *testing.T) {
	t.Parallel()

	if New("", "").Configured() {
		t.Fatal("empty credentials reported as configured")
	}
	if !New("u", "t").Configured() {
		t.Fatal("credentials reported as unconfigured")
	}
}
