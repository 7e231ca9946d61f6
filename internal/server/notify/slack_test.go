package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlack_Send(t *testing.T) {
	t.Parallel()

	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSlack(time.Second)
	require.NoError(t, s.Send(context.Background(), srv.URL, "hello"))

	assert.Equal(t, "application/json", gotContentType)

	var msg map[string]string
	require.NoError(t, json.Unmarshal(gotBody, &msg))
	assert.Equal(t, "hello", msg["text"])
	assert.Equal(t, "QuackNote", msg["username"])
	assert.Equal(t, ":duck:", msg["icon_emoji"])
}

func TestSlack_Send_Non2xxIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no_service"))
	}))
	defer srv.Close()

	s := NewSlack(time.Second)
	err := s.Send(context.Background(), srv.URL, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_service")
}

func TestSlack_Send_UnreachableHost(t *testing.T) {
	t.Parallel()

	s := NewSlack(100 * time.Millisecond)
	err := s.Send(context.Background(), "http://127.0.0.1:1/webhook", "hello")
	assert.Error(t, err)
}
