// Package api implements the HTTP client for the chat service.
// All endpoints exchange JSON bodies; failures are reported with a
// non-success status and an "error" string field, which this package
// maps onto the structured error kinds in internal/errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/parleychat/parley/internal/errors"
)

const defaultHTTPTimeout = 30 * time.Second

// Chat is a conversation summary as returned by the chat-list endpoints.
type Chat struct {
	ID        string
	Title     string
	Preview   string
	UpdatedAt time.Time
}

// Message is a single conversation entry. Model is only set on assistant
// messages and names the model that produced the reply.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

// Profile is the user's display profile. An empty Name is a valid guest identity.
type Profile struct {
	Name string `json:"name"`
}

// ChatReply is the result of sending a message to the assistant.
type ChatReply struct {
	Response  string `json:"response"`
	ModelUsed string `json:"model_used"`
	ChatID    string `json:"chat_id"`
}

// Client talks to the chat service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// NewClientWithHTTP creates a client with a custom HTTP client (for testing).
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// chatJSON is the wire form of a chat summary. Timestamps arrive as ISO
// strings without a timezone, so they need lenient parsing.
type chatJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Preview   string `json:"preview"`
	UpdatedAt string `json:"updated_at"`
}

func (c chatJSON) toChat() Chat {
	return Chat{
		ID:        c.ID,
		Title:     c.Title,
		Preview:   c.Preview,
		UpdatedAt: parseTimestamp(c.UpdatedAt),
	}
}

// timestampLayouts covers RFC 3339 and the naive ISO format the service emits.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ListChats fetches all chat summaries and the server's current chat id.
func (c *Client) ListChats(ctx context.Context) ([]Chat, string, error) {
	const op = errors.Op("api.ListChats")
	var body struct {
		Chats         []chatJSON `json:"chats"`
		CurrentChatID string     `json:"current_chat_id"`
	}
	if err := c.get(ctx, op, "/chats", &body); err != nil {
		return nil, "", err
	}
	chats := make([]Chat, len(body.Chats))
	for i, cj := range body.Chats {
		chats[i] = cj.toChat()
	}
	return chats, body.CurrentChatID, nil
}

// CreateChat asks the server for a new empty chat session.
func (c *Client) CreateChat(ctx context.Context) (Chat, error) {
	const op = errors.Op("api.CreateChat")
	var body struct {
		Chat chatJSON `json:"chat"`
	}
	if err := c.post(ctx, op, "/chats/new", struct{}{}, &body); err != nil {
		return Chat{}, err
	}
	return body.Chat.toChat(), nil
}

// SwitchChat asks the server to mark id as the current chat.
func (c *Client) SwitchChat(ctx context.Context, id string) error {
	const op = errors.Op("api.SwitchChat")
	return c.post(ctx, op, "/chats/"+url.PathEscape(id)+"/switch", struct{}{}, nil)
}

// FetchMessages loads the full message history of a chat.
func (c *Client) FetchMessages(ctx context.Context, id string) ([]Message, error) {
	const op = errors.Op("api.FetchMessages")
	var body struct {
		Chat struct {
			Messages []Message `json:"messages"`
		} `json:"chat"`
	}
	if err := c.get(ctx, op, "/chats/"+url.PathEscape(id), &body); err != nil {
		return nil, err
	}
	return body.Chat.Messages, nil
}

// DeleteChat removes a chat session. If it was the current chat, the server
// promotes a replacement; callers must re-list to learn the new current id.
func (c *Client) DeleteChat(ctx context.Context, id string) error {
	const op = errors.Op("api.DeleteChat")
	return c.do(ctx, op, http.MethodDelete, "/chats/"+url.PathEscape(id)+"/delete", nil, nil)
}

// RenameChat sets a chat's title. The title must already be validated and trimmed.
func (c *Client) RenameChat(ctx context.Context, id, title string) error {
	const op = errors.Op("api.RenameChat")
	body := struct {
		Title string `json:"title"`
	}{Title: title}
	return c.post(ctx, op, "/chats/"+url.PathEscape(id)+"/rename", body, nil)
}

// SearchChats returns chat summaries matching the query.
func (c *Client) SearchChats(ctx context.Context, query string) ([]Chat, error) {
	const op = errors.Op("api.SearchChats")
	var body struct {
		Chats []chatJSON `json:"chats"`
	}
	path := "/chats/search?q=" + url.QueryEscape(query)
	if err := c.get(ctx, op, path, &body); err != nil {
		return nil, err
	}
	chats := make([]Chat, len(body.Chats))
	for i, cj := range body.Chats {
		chats[i] = cj.toChat()
	}
	return chats, nil
}

// SendMessage posts a user message to the current chat and returns the
// assistant's reply. The model string is passed through unvalidated; the
// server is the source of truth for valid values.
func (c *Client) SendMessage(ctx context.Context, message, model string) (ChatReply, error) {
	const op = errors.Op("api.SendMessage")
	req := struct {
		Message string `json:"message"`
		Model   string `json:"model"`
	}{Message: message, Model: model}
	var reply ChatReply
	if err := c.post(ctx, op, "/chat", req, &reply); err != nil {
		return ChatReply{}, err
	}
	return reply, nil
}

// FetchProfile loads the user's display profile. An absent name is valid.
func (c *Client) FetchProfile(ctx context.Context) (Profile, error) {
	const op = errors.Op("api.FetchProfile")
	var body struct {
		Profile Profile `json:"profile"`
	}
	if err := c.get(ctx, op, "/profile", &body); err != nil {
		return Profile{}, err
	}
	return body.Profile, nil
}

// SaveProfile overwrites the user's display name and returns the stored profile.
func (c *Client) SaveProfile(ctx context.Context, name string) (Profile, error) {
	const op = errors.Op("api.SaveProfile")
	req := struct {
		Name string `json:"name"`
	}{Name: name}
	var body struct {
		Profile Profile `json:"profile"`
	}
	if err := c.post(ctx, op, "/profile", req, &body); err != nil {
		return Profile{}, err
	}
	return body.Profile, nil
}

// Health pings the service's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	const op = errors.Op("api.Health")
	return c.get(ctx, op, "/health", nil)
}

func (c *Client) get(ctx context.Context, op errors.Op, path string, out interface{}) error {
	return c.do(ctx, op, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, op errors.Op, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return errors.E(op, errors.KindUnknown, "failed to encode request body", err)
	}
	return c.do(ctx, op, http.MethodPost, path, payload, out)
}

func (c *Client) do(ctx context.Context, op errors.Op, method, path string, payload []byte, out interface{}) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.E(op, errors.KindNetwork, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.E(op, errors.KindNetwork, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.E(op, errors.KindServer, serverMessage(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.E(op, errors.KindUnexpectedResponse, "failed to parse response", err)
	}
	return nil
}

// serverMessage extracts the "error" field from a failure body. The client
// treats any non-success status as failure regardless of body shape, so a
// missing or unparseable message falls back to the status code.
func serverMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("server returned status %d", resp.StatusCode)
}
