package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LineClient pushes messages to a LINE group through the Messaging API,
// authenticating with a channel access token as a bearer header.
type LineClient struct {
	baseURL    string
	token      string
	groupID    string
	httpClient *http.Client
}

func NewLineClient(token, groupID string) *LineClient {
	return &LineClient{
		baseURL:    "https://api.line.me",
		token:      token,
		groupID:    groupID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type lineMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type linePushRequest struct {
	To       string        `json:"to"`
	Messages []lineMessage `json:"messages"`
}

func (c *LineClient) Send(ctx context.Context, message string) error {
	payload := linePushRequest{
		To:       c.groupID,
		Messages: []lineMessage{{Type: "text", Text: message}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/bot/message/push", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("line returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("line error: %s", string(errorBody))
	}
	return nil
}
