// Package widget implements the embeddable chat widget's interaction engine:
// a small state machine over an append-only transcript, a suggestions/form
// mode switch and a handful of guarded operations. Mode changes that follow a
// bot reply are not applied on a timer; the completing operation arms a
// pending mode and the renderer applies it by calling ReplyRendered once the
// reply is on screen.
package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Canned bot texts. Network failures degrade to reassurance instead of an
// error state so an anonymous visitor is never shown a failure.
const (
	escalateUserText  = "My question is not listed"
	escalateBotPrompt = "No problem! Please share your contact details and your question, and our team will reach out."
	reassuranceText   = "Thanks for your message! We've noted it and our team will be in touch shortly."
	formApologyText   = "Sorry, something went wrong submitting your details. Please try again in a moment."
)

var ErrMissingFields = errors.New("name and email are required")

// Widget drives one visitor conversation. All methods are safe for concurrent
// use; the selection log runs off the calling goroutine.
type Widget struct {
	backend Backend

	mu          sync.Mutex
	profile     Profile
	faqs        []FAQ
	messages    []Message
	mode        Mode
	pendingMode Mode
	input       string
	form        FormData
	inFlight    bool
}

func New(backend Backend) *Widget {
	return &Widget{
		backend: backend,
		mode:    ModeSuggestions,
	}
}

// Initialize seeds the transcript with the tenant's welcome message, or a
// generated default naming the tenant when none is configured. It runs on
// first load and again whenever the profile changes.
func (w *Widget) Initialize(profile Profile, faqs []FAQ) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.profile = profile
	w.faqs = faqs
	w.messages = []Message{{Text: welcomeText(profile), Sender: SenderBot}}
	w.mode = ModeSuggestions
	w.pendingMode = ""
	w.input = ""
	w.form = FormData{}
}

// SelectFAQ appends the question and its client-resident answer in order,
// fires a best-effort selection log and arms a return to suggestions for when
// the answer has rendered.
func (w *Widget) SelectFAQ(faq FAQ) {
	w.mu.Lock()
	w.messages = append(w.messages,
		Message{Text: faq.Question, Sender: SenderUser},
		Message{Text: faq.Answer, Sender: SenderBot},
	)
	w.pendingMode = ModeSuggestions
	w.mu.Unlock()

	go func() {
		// Best effort: a lost log never disturbs the conversation.
		_ = w.backend.LogSelection(context.Background(), faq.Question, faq.Answer)
	}()
}

// EscalateToForm switches to the inquiry form after the visitor indicates no
// suggestion matches.
func (w *Widget) EscalateToForm() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.messages = append(w.messages,
		Message{Text: escalateUserText, Sender: SenderUser},
		Message{Text: escalateBotPrompt, Sender: SenderBot},
	)
	w.mode = ModeForm
}

// SubmitForm sends the inquiry form. The in-flight flag is the only guard
// against duplicate submits. Whatever the outcome, the fields are cleared and
// the widget returns to suggestions once the closing reply has rendered.
func (w *Widget) SubmitForm(ctx context.Context, form FormData) error {
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Email) == "" {
		return ErrMissingFields
	}

	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return nil
	}
	w.inFlight = true
	w.mu.Unlock()

	err := w.backend.SubmitQuery(ctx, form)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.messages = append(w.messages, Message{Text: formApologyText, Sender: SenderBot})
	} else {
		ack := fmt.Sprintf("Thanks %s! We've received your question and will reply to %s", form.Name, form.Email)
		if form.Phone != "" {
			ack += " or " + form.Phone
		}
		ack += " soon."
		w.messages = append(w.messages, Message{Text: ack, Sender: SenderBot})
	}
	w.form = FormData{}
	w.pendingMode = ModeSuggestions
	w.inFlight = false
	return err
}

// SendFreeText sends the current input. It is a no-op when the trimmed input
// is empty or a request is already pending. The user message is appended
// optimistically before the call.
func (w *Widget) SendFreeText(ctx context.Context) error {
	w.mu.Lock()
	text := strings.TrimSpace(w.input)
	if text == "" || w.inFlight {
		w.mu.Unlock()
		return nil
	}
	w.messages = append(w.messages, Message{Text: text, Sender: SenderUser})
	w.input = ""
	w.inFlight = true
	w.mu.Unlock()

	reply, err := w.backend.SendMessage(ctx, text)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false

	if err != nil || reply == nil || reply.Answer == "" {
		w.messages = append(w.messages, Message{Text: reassuranceText, Sender: SenderBot})
		return err
	}

	w.messages = append(w.messages, Message{Text: reply.Answer, Sender: SenderBot})
	if reply.Fallback {
		w.pendingMode = ModeForm
	}
	return nil
}

// ReplyRendered is the render-completion callback: the host calls it once the
// latest bot reply is on screen, applying whichever mode change the completing
// operation armed.
func (w *Widget) ReplyRendered() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pendingMode != "" {
		w.mode = w.pendingMode
		w.pendingMode = ""
	}
}

// Reset restores the widget to its initial state: a single welcome message,
// suggestions mode and an empty input.
func (w *Widget) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.messages = []Message{{Text: welcomeText(w.profile), Sender: SenderBot}}
	w.mode = ModeSuggestions
	w.pendingMode = ""
	w.input = ""
	w.form = FormData{}
}

func (w *Widget) SetInput(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = s
}

func (w *Widget) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// Messages returns a copy of the transcript.
func (w *Widget) Messages() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.messages))
	copy(out, w.messages)
	return out
}

func (w *Widget) Mode() Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

func (w *Widget) InFlight() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

func (w *Widget) Profile() Profile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profile
}

func (w *Widget) FAQs() []FAQ {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]FAQ, len(w.faqs))
	copy(out, w.faqs)
	return out
}

func welcomeText(profile Profile) string {
	if profile.WelcomeMessage != "" {
		return profile.WelcomeMessage
	}
	name := profile.CompanyName
	if name == "" {
		name = "our team"
	}
	return fmt.Sprintf("Hi! Welcome to %s. How can we help you today?", name)
}
