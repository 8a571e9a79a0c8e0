package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	telegramAPIBase = "https://api.telegram.org"

	requestTimeout = 10 * time.Second
)

// ErrNotConfigured means no bot token was provided; callers log the message
// instead of delivering it.
var ErrNotConfigured = errors.New("telegram bot token not configured")

// Telegram delivers messages through the Telegram bot API
type Telegram struct {
	httpClient *http.Client
	baseURL    string
	token      string
	chatID     string
}

// NewTelegram creates a messenger for a bot token and destination chat
func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    telegramAPIBase,
		token:      token,
		chatID:     chatID,
	}
}

// Send posts the text to the configured chat
func (t *Telegram) Send(ctx context.Context, text string) error {
	if t.token == "" {
		return ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)

	form := url.Values{}
	form.Add("chat_id", t.chatID)
	form.Add("text", text)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
