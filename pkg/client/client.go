// Package client is a Go client for the BotDesk admin API: authentication,
// the super-admin registry, tenant profile and Q&A management, the visitor
// issue list and subscription renewal. The public chat surface has its own
// client in pkg/widget.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// MonthlyPrice mirrors the server's fixed monthly rate. The server recomputes
// and rejects a mismatched amount, so drift shows up as a 400 rather than a
// wrong charge.
const MonthlyPrice = 79.0

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// UserInfo is the account block returned by auth and registry endpoints.
type UserInfo struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	Role                string     `json:"role"`
	SubscriptionStatus  string     `json:"subscription_status"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date"`
}

type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	User         *UserInfo `json:"user"`
}

type RegisterRequest struct {
	Email              string `json:"email"`
	Password           string `json:"password"`
	Name               string `json:"name"`
	Role               string `json:"role,omitempty"`
	SubscriptionMonths int    `json:"subscription_months,omitempty"`
}

type Chatbot struct {
	ID             string            `json:"id"`
	Slug           string            `json:"slug"`
	CompanyName    string            `json:"company_name"`
	LogoURL        string            `json:"logo_url"`
	Description    string            `json:"description"`
	WelcomeMessage string            `json:"welcome_message"`
	WidgetToken    string            `json:"widget_token"`
	SocialLinks    map[string]string `json:"social_links"`
}

type QAEntry struct {
	ID        string `json:"id"`
	ChatbotID string `json:"chatbotId"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Keywords  string `json:"keywords"`
	IsDisplay bool   `json:"isDisplay"`
}

type Visitor struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Mobile  string    `json:"mobile"`
	Problem string    `json:"problem"`
	Solved  bool      `json:"solved"`
	Date    time.Time `json:"date"`
}

type VisitorPage struct {
	Visitors []Visitor `json:"visitors"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

type Renewal struct {
	ID         string    `json:"id"`
	Months     int       `json:"months"`
	Amount     float64   `json:"amount"`
	NewEndDate time.Time `json:"new_end_date"`
}

type RenewResult struct {
	Renewal  *Renewal `json:"renewal"`
	Replayed bool     `json:"replayed"`
}

// Login authenticates and installs the returned access token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return &resp, nil
}

// Register creates an account. Super-admin token required.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*UserInfo, error) {
	var info UserInfo
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]UserInfo, error) {
	var users []UserInfo
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/delete-users/"+id, nil, nil)
}

// Renew extends the caller's subscription. The amount is computed locally from
// the fixed monthly price; idempotencyKey dedupes a double click.
func (c *Client) Renew(ctx context.Context, months int, idempotencyKey string) (*RenewResult, error) {
	if months <= 0 {
		return nil, fmt.Errorf("duration must be a positive number of months")
	}
	body := map[string]interface{}{
		"duration":        months,
		"amount":          float64(months) * MonthlyPrice,
		"idempotency_key": idempotencyKey,
	}
	var result RenewResult
	if err := c.do(ctx, http.MethodPost, "/auth/admin/renew", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Chatbots(ctx context.Context) ([]Chatbot, error) {
	var bots []Chatbot
	if err := c.do(ctx, http.MethodGet, "/user/chatbots", nil, &bots); err != nil {
		return nil, err
	}
	return bots, nil
}

func (c *Client) CreateChatbot(ctx context.Context, companyName, description, welcome string) (*Chatbot, error) {
	body := map[string]string{
		"companyName":    companyName,
		"description":    description,
		"welcomeMessage": welcome,
	}
	var bot Chatbot
	if err := c.do(ctx, http.MethodPost, "/user/chatbots", body, &bot); err != nil {
		return nil, err
	}
	return &bot, nil
}

func (c *Client) CreateQA(ctx context.Context, entry QAEntry) (*QAEntry, error) {
	var created QAEntry
	if err := c.do(ctx, http.MethodPost, "/user/qa", entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateQA(ctx context.Context, id string, entry QAEntry) (*QAEntry, error) {
	var updated QAEntry
	if err := c.do(ctx, http.MethodPut, "/user/qa/"+id, entry, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteQA(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/qa/"+id, nil, nil)
}

func (c *Client) ListQA(ctx context.Context, chatbotID string) ([]QAEntry, error) {
	var entries []QAEntry
	if err := c.do(ctx, http.MethodGet, "/user/get-all-qa/"+chatbotID, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Visitors fetches one page of the issue list. Zero page/limit use server
// defaults; search and fromDate (YYYY-MM-DD) are optional filters.
func (c *Client) Visitors(ctx context.Context, slug string, page, limit int, search, fromDate string) (*VisitorPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		q.Set("search", search)
	}
	if fromDate != "" {
		q.Set("fromDate", fromDate)
	}

	path := fmt.Sprintf("/chat/%s/visitorslist", slug)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var pageResp VisitorPage
	if err := c.do(ctx, http.MethodGet, path, nil, &pageResp); err != nil {
		return nil, err
	}
	return &pageResp, nil
}

func (c *Client) UpdateVisitorStatus(ctx context.Context, slug, visitorID string, solved bool) error {
	body := map[string]bool{"solved": solved}
	path := fmt.Sprintf("/chat/%s/visitor/%s/status", slug, visitorID)
	return c.do(ctx, http.MethodPut, path, body, nil)
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
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

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
