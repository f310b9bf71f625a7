package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidedog-records/internal/platform/httpclient"
	"guidedog-records/internal/ports/push"
)

func TestSendMulticast(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, sendPath, r.URL.Path)
		assert.Equal(t, "k-1", r.Header.Get("X-Api-Key"))

		var msg push.Message
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Equal(t, "New diary entry", msg.Notification.Title)
		assert.Equal(t, []string{"t1", "t2"}, msg.Tokens)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success_count": 1,
			"failure_count": 1,
			"results": []map[string]any{
				{"success": true},
				{"token": "t2", "success": false, "error_code": push.ErrCodeNotRegistered},
			},
		})
	}))
	defer ts.Close()

	s, err := New(Config{BaseURL: ts.URL, APIKey: "k-1"})
	require.NoError(t, err)

	res, err := s.SendMulticast(context.Background(), push.Message{
		Notification: push.Notification{Title: "New diary entry"},
		Tokens:       []string{"t1", "t2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SuccessCount)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "t1", res.Results[0].Token)
	assert.True(t, res.Results[1].InvalidToken())
}

func TestSendMulticast_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer ts.Close()

	s, err := New(Config{BaseURL: ts.URL, APIKey: "nope"})
	require.NoError(t, err)

	_, err = s.SendMulticast(context.Background(), push.Message{Tokens: []string{"t"}})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpclient.StatusCode(err))
}

func TestNew_NotConfigured(t *testing.T) {
	_, err := New(Config{BaseURL: "http://x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendMulticast_NoTokensSkipsCall(t *testing.T) {
	s, err := New(Config{BaseURL: "http://127.0.0.1:1", APIKey: "k"})
	require.NoError(t, err)

	res, err := s.SendMulticast(context.Background(), push.Message{})
	require.NoError(t, err)
	assert.Zero(t, res.SuccessCount)
}
