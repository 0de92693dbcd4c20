package services

import "github.com/botdesk/botdesk-backend/internal/core/auth"

// authOwnerLookup adapts the user repository to the lead-notification hook.
type authOwnerLookup struct {
	repo *auth.Repository
}

func NewOwnerLookup(repo *auth.Repository) OwnerLookup {
	return &authOwnerLookup{repo: repo}
}

func (l *authOwnerLookup) OwnerContact(userID string) (string, string, error) {
	user, err := l.repo.GetUserByID(userID)
	if err != nil {
		return "", "", err
	}
	return user.Name, user.Email, nil
}
