package widget

import "context"

// Sender identifies which side of the conversation a message belongs to.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one chat bubble. The transcript is append-only.
type Message struct {
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}

// Mode selects which input affordance the widget shows.
type Mode string

const (
	// ModeSuggestions shows the FAQ list and the free-text input.
	ModeSuggestions Mode = "suggestions"
	// ModeForm hides free text and shows the structured inquiry form.
	ModeForm Mode = "form"
)

// Profile is the tenant slice rendered in the widget header.
type Profile struct {
	Slug           string            `json:"slug"`
	CompanyName    string            `json:"companyName"`
	LogoURL        string            `json:"logoUrl"`
	Description    string            `json:"description"`
	WelcomeMessage string            `json:"welcomeMessage"`
	SocialLinks    map[string]string `json:"socialLinks"`
}

// FAQ is one suggested question. The answer is client-resident so selecting a
// suggestion never crosses the network.
type FAQ struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}

// FormData holds the inquiry form fields. Name and email are required.
type FormData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"mobile"`
	Message string `json:"problem"`
}

// Reply is the server's classification of one free-text message.
type Reply struct {
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback"`
}

// Backend is the network surface the engine talks to. The HTTP client in this
// package implements it; tests substitute fakes.
type Backend interface {
	SendMessage(ctx context.Context, text string) (*Reply, error)
	SubmitQuery(ctx context.Context, form FormData) error
	LogSelection(ctx context.Context, question, answer string) error
}
