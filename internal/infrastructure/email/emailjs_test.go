package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(apiURL string) Config {
	return Config{
		ServiceID:  "service_test",
		TemplateID: "template_test",
		PublicKey:  "public_test",
		APIURL:     apiURL,
	}
}

func TestClient_SendOTP_PostsTemplateParams(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	expiresAt := time.Date(2025, 6, 1, 12, 5, 30, 0, time.UTC)

	err := client.SendOTP(context.Background(), "user@orama.io", "123456", expiresAt)
	require.NoError(t, err)

	assert.Equal(t, "service_test", got.ServiceID)
	assert.Equal(t, "template_test", got.TemplateID)
	assert.Equal(t, "public_test", got.UserID)
	assert.Equal(t, "user@orama.io", got.TemplateParams.Email)
	assert.Equal(t, "123456", got.TemplateParams.Passcode)
	assert.Equal(t, "12:05:30", got.TemplateParams.Time)
}

func TestClient_SendOTP_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("invalid public key"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	err := client.SendOTP(context.Background(), "user@orama.io", "123456", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "invalid public key")
}

func TestClient_SendOTP_MissingCredentials(t *testing.T) {
	client := NewClient(Config{})

	err := client.SendOTP(context.Background(), "user@orama.io", "123456", time.Now())
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_SendOTP_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.SendOTP(ctx, "user@orama.io", "123456", time.Now())
	require.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{ServiceID: "s", TemplateID: "t", PublicKey: "p"})
	assert.Equal(t, DefaultAPIURL, client.cfg.APIURL)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
}
