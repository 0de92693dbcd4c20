package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is the HTTP backend for one chatbot's public surface. Every request
// carries the widget token from the embed snippet.
type Client struct {
	baseURL string
	slug    string
	token   string
	http    *http.Client
}

func NewClient(baseURL, slug, token string) *Client {
	return &Client{
		baseURL: baseURL,
		slug:    slug,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// DisplayPayload is the boot response: profile plus displayed FAQ entries.
type DisplayPayload struct {
	Profile Profile `json:"profile"`
	Faqs    []FAQ   `json:"faqs"`
}

// FetchDisplay loads the tenant profile and FAQ set, fetched once so FAQ
// selection stays a local operation.
func (c *Client) FetchDisplay(ctx context.Context) (*DisplayPayload, error) {
	var payload DisplayPayload
	if err := c.do(ctx, http.MethodGet, "display", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) SendMessage(ctx context.Context, text string) (*Reply, error) {
	var reply Reply
	body := map[string]string{"message": text}
	if err := c.do(ctx, http.MethodPost, "message", body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *Client) SubmitQuery(ctx context.Context, form FormData) error {
	return c.do(ctx, http.MethodPost, "query", form, nil)
}

func (c *Client) LogSelection(ctx context.Context, question, answer string) error {
	body := map[string]string{"question": question, "answer": answer}
	return c.do(ctx, http.MethodPost, "log", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	url := fmt.Sprintf("%s/chat/%s/%s", c.baseURL, c.slug, path)

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Widget-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
