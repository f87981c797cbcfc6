package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/lojf/regform/internal/events"
	"github.com/lojf/regform/internal/logger"
	"github.com/lojf/regform/internal/models"
)

// Client posts messages to one Telegram chat through the Bot API.
type Client struct {
	chatID int64
	httpc  *http.Client
	apiURL string
}

func NewClient(token string, chatID int64) *Client {
	return &Client{
		chatID: chatID,
		apiURL: "https://api.telegram.org/bot" + token,
		httpc:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) send(method string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.apiURL+"/"+method, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram %s: %s", method, resp.Status)
	}
	return nil
}

func (c *Client) SendMessage(text string) error {
	return c.send("sendMessage", map[string]any{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
}

// RegisteredText is the admin chat message for a stored record.
func RegisteredText(rec models.StudentRecord) string {
	return fmt.Sprintf("🎓 New student <code>%s</code>\n%s %s · %s · %s",
		html.EscapeString(rec.ID),
		html.EscapeString(rec.FirstName), html.EscapeString(rec.LastName),
		html.EscapeString(rec.Department), html.EscapeString(rec.Email))
}

// Install hooks c into events.OnRegistered. Sends run in the background and
// failures are only logged.
func Install(c *Client) {
	events.OnRegistered = func(rec models.StudentRecord) {
		go func() {
			if err := c.SendMessage(RegisteredText(rec)); err != nil {
				logger.Warn().Err(err).Str("id", rec.ID).Msg("telegram notify failed")
			}
		}()
	}
}
