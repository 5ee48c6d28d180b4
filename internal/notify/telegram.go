package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/quantum-oracle-client/internal/metrics"
)

const telegramAPI = "https://api.telegram.org/bot"

// TelegramSink posts notifications to a Telegram chat. Sends run in the
// background; errors are logged only.
type TelegramSink struct {
	token   string
	chatID  int64
	baseURL string
	client  *http.Client
}

func NewTelegramSink(token string, chatID int64) *TelegramSink {
	return &TelegramSink{
		token:   token,
		chatID:  chatID,
		baseURL: telegramAPI,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *TelegramSink) Notify(ctx context.Context, n Notification) {
	// Detach from the caller: the notification outlives the failing operation.
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := t.send(ctx, n); err != nil {
			log.Warn("telegram notification failed", "title", n.Title, "error", err)
			metrics.NotificationsTotal.WithLabelValues("telegram", "failed").Inc()
			return
		}
		metrics.NotificationsTotal.WithLabelValues("telegram", "sent").Inc()
	}()
}

func (t *TelegramSink) send(ctx context.Context, n Notification) error {
	text := fmt.Sprintf("<b>%s</b>\n%s", html.EscapeString(n.Title), html.EscapeString(n.Description))
	payload := map[string]interface{}{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+t.token+"/sendMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Description string `json:"description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return fmt.Errorf("telegram API error %d: %s", resp.StatusCode, errResp.Description)
	}
	return nil
}
