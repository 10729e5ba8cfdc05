package insight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resolve/0xabc", r.URL.Path)
		assert.Equal(t, "8453", r.URL.Query().Get("chain"))
		assert.Equal(t, "sk-test", r.Header.Get("x-secret-key"))
		_, _ = w.Write([]byte(`{"data":{"hash":"0xabc","status":1}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test")
	out, err := c.ResolveTransaction(context.Background(), "0xabc", 8453)
	require.NoError(t, err)
	assert.Contains(t, out, `"hash":"0xabc"`)
}

func TestResolveTransactionMultipleChains(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"1", "8453"}, r.URL.Query()["chain"])
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test")
	_, err := c.ResolveTransaction(context.Background(), "0xabc", 1, 8453)
	require.NoError(t, err)
}

func TestResolveTransactionErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key")
	_, err := c.ResolveTransaction(context.Background(), "0xabc", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
