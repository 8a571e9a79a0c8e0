package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var gotPath, gotChatID, gotText string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotChatID = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := NewTelegram("bot-token", "12345")
	tg.baseURL = srv.URL

	err := tg.Send(context.Background(), "hello there")
	require.NoError(t, err)

	assert.Equal(t, "/botbot-token/sendMessage", gotPath)
	assert.Equal(t, "12345", gotChatID)
	assert.Equal(t, "hello there", gotText)
}

func TestSendMissingToken(t *testing.T) {
	tg := NewTelegram("", "12345")

	err := tg.Send(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"Forbidden"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	tg := NewTelegram("bot-token", "12345")
	tg.baseURL = srv.URL

	err := tg.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
