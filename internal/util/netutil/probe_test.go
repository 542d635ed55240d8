package netutil

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/clusterup/internal/util/poll"
)

func TestHTTPProbe_Ready(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ready, err := NewHTTPProbe(time.Second).Ready(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestHTTPProbe_HTTPErrorIsNotReady(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ready, err := NewHTTPProbe(0).Ready(context.Background(), srv.URL)
	require.Error(t, err)
	assert.False(t, ready)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPProbe_ConnectionRefusedIsNotReady(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ready, err := NewHTTPProbe(time.Second).Ready(context.Background(), "http://"+addr)
	require.Error(t, err)
	assert.False(t, ready)
}

func TestHTTPProbe_CheckWithPoller(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	probe := NewHTTPProbe(time.Second)
	err := poll.UntilReady(context.Background(), probe.Check(srv.URL), 2*time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
}
