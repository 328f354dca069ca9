package resend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		APIKey:  "re_test_key",
		From:    "EcoMarket <devoluciones@ecomarket.co>",
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{APIKey: "k", From: "f@x.co"}); err == nil {
		t.Fatal("empty base url must be rejected")
	}
	if _, err := NewClient(Config{BaseURL: "https://api.resend.com", From: "f@x.co"}); err == nil {
		t.Fatal("empty api key must be rejected")
	}
	if _, err := NewClient(Config{BaseURL: "https://api.resend.com", APIKey: "k"}); err == nil {
		t.Fatal("empty from address must be rejected")
	}
	if _, err := NewClient(Config{BaseURL: "::bad::", APIKey: "k", From: "f@x.co"}); err == nil {
		t.Fatal("malformed base url must be rejected")
	}
}

func TestSendPostsEmail(t *testing.T) {
	t.Parallel()

	var got sendEmailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer re_test_key" {
			t.Errorf("Authorization = %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"em_123"}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	err = client.Send(context.Background(), " cliente@correo.co ", "Solicitud de Devolución - Pedido O0001", "<p>hola</p>")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if got.From != "EcoMarket <devoluciones@ecomarket.co>" {
		t.Fatalf("from = %q", got.From)
	}
	if len(got.To) != 1 || got.To[0] != "cliente@correo.co" {
		t.Fatalf("to = %v", got.To)
	}
	if !strings.Contains(got.Subject, "O0001") {
		t.Fatalf("subject = %q", got.Subject)
	}
	if got.HTML != "<p>hola</p>" {
		t.Fatalf("html = %q", got.HTML)
	}
}

func TestSendAuthenticationFailure(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"invalid api key"}`, status)
		}))

		client, err := NewClient(testConfig(server.URL))
		if err != nil {
			t.Fatalf("NewClient() error = %v", err)
		}

		err = client.Send(context.Background(), "c@x.co", "asunto", "<p/>")
		server.Close()
		if !errors.Is(err, ErrAuthentication) {
			t.Fatalf("status %d: Send() error = %v, want ErrAuthentication", status, err)
		}
	}
}

func TestSendGenericFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	err = client.Send(context.Background(), "c@x.co", "asunto", "<p/>")
	if err == nil {
		t.Fatal("non-2xx must fail")
	}
	if errors.Is(err, ErrAuthentication) {
		t.Fatalf("rate limit must not be reported as auth failure: %v", err)
	}
}

func TestSendRejectsEmptyFields(t *testing.T) {
	t.Parallel()

	client, err := NewClient(testConfig("https://api.resend.com"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if err := client.Send(context.Background(), "  ", "asunto", "<p/>"); err == nil {
		t.Fatal("empty recipient must be rejected")
	}
	if err := client.Send(context.Background(), "c@x.co", " ", "<p/>"); err == nil {
		t.Fatal("empty subject must be rejected")
	}
}
