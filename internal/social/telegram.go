package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Telegram caps photo captions well below message length.
const tgCaptionLimit = 1024

type TelegramClient struct {
	BaseURL  string
	BotToken string
	ChatID   string
	HTTP     *http.Client
}

func NewTelegramClient(botToken, chatID string, timeout time.Duration) *TelegramClient {
	return &TelegramClient{
		BaseURL:  "https://api.telegram.org",
		BotToken: botToken,
		ChatID:   chatID,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

func (c *TelegramClient) Enabled() bool {
	return c != nil && c.BotToken != "" && c.ChatID != ""
}

// SendPost delivers a channel post: sendPhoto with a caption when a photo
// URL is available, sendMessage otherwise.
func (c *TelegramClient) SendPost(ctx context.Context, text, photoURL string) (string, error) {
	if !c.Enabled() {
		return "", errors.New("telegram not configured")
	}

	if photoURL != "" {
		caption := text
		if len([]rune(caption)) > tgCaptionLimit {
			caption = string([]rune(caption)[:tgCaptionLimit])
		}
		return c.send(ctx, "sendPhoto", map[string]string{
			"chat_id": c.ChatID,
			"photo":   photoURL,
			"caption": caption,
		})
	}
	return c.send(ctx, "sendMessage", map[string]string{
		"chat_id": c.ChatID,
		"text":    text,
	})
}

func (c *TelegramClient) send(ctx context.Context, method string, payload map[string]string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", c.BaseURL, c.BotToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
		Result      struct {
			MessageID int64 `json:"message_id"`
		} `json:"result"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("telegram %s: status %d: %s", method, resp.StatusCode, bytes.TrimSpace(raw))
	}
	if !out.OK {
		return "", fmt.Errorf("telegram %s: %s", method, out.Description)
	}
	return strconv.FormatInt(out.Result.MessageID, 10), nil
}
