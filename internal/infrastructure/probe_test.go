package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_HTTPProbe_Check_Available(t *testing.T) {
	var method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	probe := NewHTTPProbe(time.Second)

	assert.True(t, probe.Check(context.Background(), server.URL))
	assert.Equal(t, http.MethodHead, method)
}

func Test_HTTPProbe_Check_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	probe := NewHTTPProbe(time.Second)

	assert.False(t, probe.Check(context.Background(), server.URL))
}

func Test_HTTPProbe_Check_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	probe := NewHTTPProbe(time.Second)

	assert.False(t, probe.Check(context.Background(), server.URL))
}

func Test_HTTPProbe_Check_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	probe := NewHTTPProbe(time.Second)

	assert.False(t, probe.Check(ctx, server.URL))
}

func Test_HTTPProbe_Check_InvalidURL(t *testing.T) {
	probe := NewHTTPProbe(time.Second)

	assert.False(t, probe.Check(context.Background(), "http://\x00invalid"))
}
