package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTelegramClient_Send(t *testing.T) {
	// Arrange
	var gotPath string
	var gotPayload telegramSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewTelegramClient("token123", "chat42")
	client.baseURL = srv.URL

	// Act
	err := client.Send(context.Background(), "<b>hello</b>")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "/bottoken123/sendMessage", gotPath)
	assert.Equal(t, "chat42", gotPayload.ChatID)
	assert.Equal(t, "<b>hello</b>", gotPayload.Text)
	assert.Equal(t, "HTML", gotPayload.ParseMode)
}

func TestTelegramClient_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	client := NewTelegramClient("token123", "chat42")
	client.baseURL = srv.URL

	err := client.Send(context.Background(), "hello")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegramClient_SetWebhook(t *testing.T) {
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewTelegramClient("token123", "chat42")
	client.baseURL = srv.URL

	err := client.SetWebhook(context.Background(), "https://example.com/webhook")

	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/webhook", gotURL)
}

func TestTelegramClient_SetWebhookRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"invalid url"}`))
	}))
	defer srv.Close()

	client := NewTelegramClient("token123", "chat42")
	client.baseURL = srv.URL

	err := client.SetWebhook(context.Background(), "nonsense")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid url")
}

func TestLineClient_Send(t *testing.T) {
	// Arrange
	var gotAuth string
	var gotPayload linePushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/v2/bot/message/push", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewLineClient("channel-token", "group99")
	client.baseURL = srv.URL

	// Act
	err := client.Send(context.Background(), "hello")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Bearer channel-token", gotAuth)
	assert.Equal(t, "group99", gotPayload.To)
	assert.Len(t, gotPayload.Messages, 1)
	assert.Equal(t, "text", gotPayload.Messages[0].Type)
	assert.Equal(t, "hello", gotPayload.Messages[0].Text)
}

func TestProxyClient_Send(t *testing.T) {
	var gotPayload proxyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewProxyClient(srv.URL)

	err := client.Send(context.Background(), "hello")

	assert.NoError(t, err)
	assert.Equal(t, "hello", gotPayload.Message)
}

func TestProxyClient_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewProxyClient(srv.URL)

	err := client.Send(context.Background(), "hello")

	assert.Error(t, err)
}
