package client

import (
	"context"
	"time"

	"github.com/botdesk/botdesk-backend/pkg/session"
)

// SessionClient wraps Client with durable session state: login persists the
// token and subscription fields, logout clears them, and a restart picks the
// token back up from disk.
type SessionClient struct {
	*Client
	store *session.Store
}

// NewWithSession builds a client whose auth state survives restarts. A token
// already in the store is installed immediately.
func NewWithSession(baseURL string, store *session.Store) (*SessionClient, error) {
	c := New(baseURL)
	token, err := store.Get(session.KeyToken)
	if err != nil {
		return nil, err
	}
	if token != "" {
		c.SetToken(token)
	}
	return &SessionClient{Client: c, store: store}, nil
}

// Login authenticates and persists the session fields the dashboard reads.
func (c *SessionClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp, err := c.Client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{
		session.KeyToken: resp.AccessToken,
	}
	if resp.User != nil {
		fields[session.KeyUserID] = resp.User.ID
		fields[session.KeyUserRole] = resp.User.Role
		fields[session.KeySubscriptionStatus] = resp.User.SubscriptionStatus
		if resp.User.SubscriptionEndDate != nil {
			fields[session.KeySubscriptionEndDate] = resp.User.SubscriptionEndDate.Format(time.RFC3339)
		}
	}
	for key, value := range fields {
		if err := c.store.Set(key, value); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// SetActiveChatbot persists the chatbot the dashboard is working on.
func (c *SessionClient) SetActiveChatbot(id, slug string) error {
	if err := c.store.Set(session.KeyChatbotID, id); err != nil {
		return err
	}
	return c.store.Set(session.KeyChatbotSlug, slug)
}

// Logout revokes the server session and clears every stored field together.
func (c *SessionClient) Logout(ctx context.Context) error {
	err := c.Client.Logout(ctx)
	if clearErr := c.store.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	c.SetToken("")
	return err
}

// SubscriptionExpired runs the client-side gate check against stored state.
func (c *SessionClient) SubscriptionExpired(now time.Time) (bool, error) {
	snap, err := c.store.Snapshot()
	if err != nil {
		return true, err
	}
	return snap.SubscriptionExpired(now), nil
}
