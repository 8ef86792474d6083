package hcaptcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAcceptsValidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-secret", r.FormValue("secret"))
		assert.Equal(t, "good-token", r.FormValue("response"))
		assert.Equal(t, "1.2.3.4", r.FormValue("remoteip"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	v := NewVerifierWithURL("test-secret", server.URL)
	assert.NoError(t, v.Verify(context.Background(), "good-token", "1.2.3.4"))
}

func TestVerifyRejectsInvalidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer server.Close()

	v := NewVerifierWithURL("test-secret", server.URL)
	err := v.Verify(context.Background(), "bad-token", "1.2.3.4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid-input-response")
}

func TestVerifyRejectsMissingToken(t *testing.T) {
	// No server: an empty token must fail before any network call.
	v := NewVerifierWithURL("test-secret", "http://127.0.0.1:0")
	assert.Error(t, v.Verify(context.Background(), "", "1.2.3.4"))
}

func TestVerifyOmitsUnknownRemoteIP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Empty(t, r.FormValue("remoteip"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	v := NewVerifierWithURL("test-secret", server.URL)
	assert.NoError(t, v.Verify(context.Background(), "good-token", "unknown"))
}

func TestVerifySurfacesServiceErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	v := NewVerifierWithURL("test-secret", server.URL)
	assert.Error(t, v.Verify(context.Background(), "good-token", "1.2.3.4"))
}
