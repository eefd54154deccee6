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

// ProxyClient relays a message to the local notification forwarder, which
// holds the chat credentials server-side.
type ProxyClient struct {
	url        string
	httpClient *http.Client
}

func NewProxyClient(url string) *ProxyClient {
	return &ProxyClient{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type proxyRequest struct {
	Message string `json:"message"`
}

func (c *ProxyClient) Send(ctx context.Context, message string) error {
	body, err := json.Marshal(proxyRequest{Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
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
			return fmt.Errorf("notification proxy returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("notification proxy error: %s", string(errorBody))
	}
	return nil
}
