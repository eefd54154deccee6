package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// TelegramClient sends messages straight to the Telegram bot API with the
// bot token in the path. HTML formatting is enabled, matching what the
// messages contain.
type TelegramClient struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
}

func NewTelegramClient(token, chatID string) *TelegramClient {
	return &TelegramClient{
		baseURL:    "https://api.telegram.org",
		token:      token,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type telegramSendRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramResult struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *TelegramClient) Send(ctx context.Context, message string) error {
	payload := telegramSendRequest{
		ChatID:    c.chatID,
		Text:      message,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	sendURL := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("telegram returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("telegram error: %s", string(errorBody))
	}
	return nil
}

// SetWebhook registers the given callback URL with Telegram so chat events
// reach the webhook receiver.
func (c *TelegramClient) SetWebhook(ctx context.Context, webhookURL string) error {
	setURL := fmt.Sprintf("%s/bot%s/setWebhook?url=%s", c.baseURL, c.token, url.QueryEscape(webhookURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, setURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result telegramResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding setWebhook response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("setWebhook rejected: %s", result.Description)
	}
	return nil
}
