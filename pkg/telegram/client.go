package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.telegram.org"

// Factory builds per-token clients. The control plane talks to many bots,
// one token each, so clients are constructed per request rather than held
// as singletons.
type Factory struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewFactory(logger *zap.Logger) *Factory {
	return &Factory{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     logger,
	}
}

func (f *Factory) Client(token string) *Client {
	return &Client{
		baseURL: fmt.Sprintf("%s/bot%s", f.BaseURL, token),
		http:    f.HTTPClient,
		logger:  f.Logger,
	}
}

// Client is a thin wrapper over the Bot API. Every message goes out with
// HTML parse mode.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// APIError is a 200-level response with ok=false, distinct from a transport
// failure.
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (c *Client) call(ctx context.Context, method string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("telegram transport error", zap.String("method", method), zap.Error(err))
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("telegram %s: decode response: %w", method, err)
	}

	if !parsed.OK {
		c.logger.Warn("telegram api error",
			zap.String("method", method),
			zap.Int("code", parsed.ErrorCode),
			zap.String("description", parsed.Description))
		return &APIError{Method: method, Code: parsed.ErrorCode, Description: parsed.Description}
	}

	if out != nil && parsed.Result != nil {
		return json.Unmarshal(parsed.Result, out)
	}
	return nil
}

func (c *Client) SendMessage(ctx context.Context, chatID interface{}, text string, markup *InlineKeyboardMarkup) error {
	return c.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id":      chatID,
		"text":         text,
		"parse_mode":   "HTML",
		"reply_markup": markup,
	}, nil)
}

func (c *Client) SendPhoto(ctx context.Context, chatID interface{}, photo, caption string, markup *InlineKeyboardMarkup) error {
	return c.call(ctx, "sendPhoto", map[string]interface{}{
		"chat_id":      chatID,
		"photo":        photo,
		"caption":      caption,
		"parse_mode":   "HTML",
		"reply_markup": markup,
	}, nil)
}

func (c *Client) SendVideo(ctx context.Context, chatID interface{}, video, caption string, markup *InlineKeyboardMarkup) error {
	return c.call(ctx, "sendVideo", map[string]interface{}{
		"chat_id":      chatID,
		"video":        video,
		"caption":      caption,
		"parse_mode":   "HTML",
		"reply_markup": markup,
	}, nil)
}

func (c *Client) SendAudio(ctx context.Context, chatID interface{}, audio string) error {
	return c.call(ctx, "sendAudio", map[string]interface{}{
		"chat_id":    chatID,
		"audio":      audio,
		"parse_mode": "HTML",
	}, nil)
}

func (c *Client) EditMessageText(ctx context.Context, chatID interface{}, messageID int64, text string, markup *InlineKeyboardMarkup) error {
	return c.call(ctx, "editMessageText", map[string]interface{}{
		"chat_id":      chatID,
		"message_id":   messageID,
		"text":         text,
		"parse_mode":   "HTML",
		"reply_markup": markup,
	}, nil)
}

func (c *Client) EditMessageMedia(ctx context.Context, chatID interface{}, messageID int64, media InputMedia, markup *InlineKeyboardMarkup) error {
	return c.call(ctx, "editMessageMedia", map[string]interface{}{
		"chat_id":      chatID,
		"message_id":   messageID,
		"media":        media,
		"reply_markup": markup,
	}, nil)
}

// AnswerCallbackQuery must run on every callback path, otherwise the tapped
// button keeps its loading spinner.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackQueryID, text string, showAlert bool) error {
	return c.call(ctx, "answerCallbackQuery", map[string]interface{}{
		"callback_query_id": callbackQueryID,
		"text":              text,
		"show_alert":        showAlert,
	}, nil)
}

func (c *Client) GetChat(ctx context.Context, chatID interface{}) (*Chat, error) {
	var chat Chat
	if err := c.call(ctx, "getChat", map[string]interface{}{"chat_id": chatID}, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (c *Client) GetChatMember(ctx context.Context, chatID interface{}, userID int64) error {
	return c.call(ctx, "getChatMember", map[string]interface{}{
		"chat_id": chatID,
		"user_id": userID,
	}, nil)
}

func (c *Client) BanChatMember(ctx context.Context, chatID interface{}, userID int64) error {
	return c.call(ctx, "banChatMember", map[string]interface{}{
		"chat_id": chatID,
		"user_id": userID,
	}, nil)
}

// UnbanChatMember clears a previous ban so a returning subscriber can use a
// fresh invite link. only_if_banned keeps it a no-op for members in good
// standing.
func (c *Client) UnbanChatMember(ctx context.Context, chatID interface{}, userID int64) error {
	return c.call(ctx, "unbanChatMember", map[string]interface{}{
		"chat_id":        chatID,
		"user_id":        userID,
		"only_if_banned": true,
	}, nil)
}

func (c *Client) CreateChatInviteLink(ctx context.Context, chatID interface{}, memberLimit int) (*ChatInviteLink, error) {
	var link ChatInviteLink
	err := c.call(ctx, "createChatInviteLink", map[string]interface{}{
		"chat_id":              chatID,
		"member_limit":         memberLimit,
		"creates_join_request": false,
	}, &link)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var me User
	if err := c.call(ctx, "getMe", map[string]interface{}{}, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func (c *Client) SetWebhook(ctx context.Context, url string) error {
	return c.call(ctx, "setWebhook", map[string]interface{}{"url": url}, nil)
}

func (c *Client) DeleteWebhook(ctx context.Context) error {
	return c.call(ctx, "deleteWebhook", map[string]interface{}{}, nil)
}

func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	return c.call(ctx, "setMyCommands", map[string]interface{}{"commands": commands}, nil)
}
