package widget

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

type fakeBackend struct {
	mu         sync.Mutex
	reply      *Reply
	sendErr    error
	submitErr  error
	sendCalls  int
	submits    []FormData
	selections []string
}

func (f *fakeBackend) SendMessage(ctx context.Context, text string) (*Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendCalls++
	return f.reply, f.sendErr
}

func (f *fakeBackend) SubmitQuery(ctx context.Context, form FormData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits = append(f.submits, form)
	return f.submitErr
}

func (f *fakeBackend) LogSelection(ctx context.Context, question, answer string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selections = append(f.selections, question)
	return nil
}

func newTestWidget(backend Backend) *Widget {
	w := New(backend)
	w.Initialize(Profile{CompanyName: "Acme", WelcomeMessage: "Hi there!"}, []FAQ{
		{Question: "Pricing?", Answer: "$79/mo"},
	})
	return w
}

func TestInitializeSeedsWelcome(t *testing.T) {
	w := newTestWidget(&fakeBackend{})

	msgs := w.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Text != "Hi there!" || msgs[0].Sender != SenderBot {
		t.Fatalf("unexpected welcome message: %+v", msgs[0])
	}
	if w.Mode() != ModeSuggestions {
		t.Fatalf("expected suggestions mode, got %s", w.Mode())
	}
}

func TestInitializeGeneratesDefaultWelcome(t *testing.T) {
	w := New(&fakeBackend{})
	w.Initialize(Profile{CompanyName: "Acme"}, nil)

	msgs := w.Messages()
	if !strings.Contains(msgs[0].Text, "Acme") {
		t.Fatalf("default welcome should name the tenant, got %q", msgs[0].Text)
	}
}

func TestSelectFAQAppendsQuestionThenAnswer(t *testing.T) {
	backend := &fakeBackend{}
	w := newTestWidget(backend)

	w.SelectFAQ(FAQ{Question: "Pricing?", Answer: "$79/mo"})

	msgs := w.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[1].Text != "Pricing?" || msgs[1].Sender != SenderUser {
		t.Fatalf("second message should be the user question, got %+v", msgs[1])
	}
	if msgs[2].Text != "$79/mo" || msgs[2].Sender != SenderBot {
		t.Fatalf("third message should be the bot answer, got %+v", msgs[2])
	}
}

func TestSelectFAQAppendsTwoRegardlessOfMode(t *testing.T) {
	w := newTestWidget(&fakeBackend{})
	w.EscalateToForm()
	before := len(w.Messages())

	w.SelectFAQ(FAQ{Question: "Pricing?", Answer: "$79/mo"})

	if got := len(w.Messages()); got != before+2 {
		t.Fatalf("expected exactly two appended messages, got %d", got-before)
	}
}

func TestSelectFAQArmsSuggestionsForRender(t *testing.T) {
	w := newTestWidget(&fakeBackend{})
	w.EscalateToForm()
	if w.Mode() != ModeForm {
		t.Fatal("setup: expected form mode")
	}

	w.SelectFAQ(FAQ{Question: "Pricing?", Answer: "$79/mo"})
	if w.Mode() != ModeForm {
		t.Fatal("mode must not change before the reply has rendered")
	}

	w.ReplyRendered()
	if w.Mode() != ModeSuggestions {
		t.Fatalf("expected suggestions after render, got %s", w.Mode())
	}
}

func TestSendFreeTextNoOpOnBlankInput(t *testing.T) {
	backend := &fakeBackend{}
	w := newTestWidget(backend)
	w.SetInput("   ")

	if err := w.SendFreeText(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.sendCalls != 0 {
		t.Fatal("blank input must not hit the network")
	}
	if len(w.Messages()) != 1 {
		t.Fatal("blank input must not change the transcript")
	}
}

func TestSendFreeTextAnswered(t *testing.T) {
	backend := &fakeBackend{reply: &Reply{Answer: "We are open 9 to 5."}}
	w := newTestWidget(backend)
	w.SetInput("when are you open?")

	if err := w.SendFreeText(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := w.Messages()
	if msgs[len(msgs)-1].Text != "We are open 9 to 5." {
		t.Fatalf("expected bot answer, got %+v", msgs[len(msgs)-1])
	}
	if w.Input() != "" {
		t.Fatal("input should be cleared after sending")
	}

	w.ReplyRendered()
	if w.Mode() != ModeSuggestions {
		t.Fatal("answered reply must not switch to the form")
	}
}

func TestSendFreeTextFallbackArmsForm(t *testing.T) {
	backend := &fakeBackend{reply: &Reply{Answer: "Sorry, no answer.", Fallback: true}}
	w := newTestWidget(backend)
	w.SetInput("do you ship to the moon")

	if err := w.SendFreeText(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Mode() != ModeSuggestions {
		t.Fatal("mode must not change before render")
	}

	w.ReplyRendered()
	if w.Mode() != ModeForm {
		t.Fatalf("fallback reply should open the form after render, got %s", w.Mode())
	}
}

func TestSendFreeTextFailureDegradesToReassurance(t *testing.T) {
	backend := &fakeBackend{sendErr: errors.New("network down")}
	w := newTestWidget(backend)
	w.SetInput("hello?")

	_ = w.SendFreeText(context.Background())

	msgs := w.Messages()
	last := msgs[len(msgs)-1]
	if last.Sender != SenderBot || !strings.Contains(last.Text, "in touch") {
		t.Fatalf("failure should append reassurance text, got %+v", last)
	}
	if w.InFlight() {
		t.Fatal("inFlight must clear on failure")
	}
}

// blockingBackend parks SendMessage and SubmitQuery until release is closed,
// so a test can observe the widget while a request is still in flight.
type blockingBackend struct {
	fakeBackend
	entered chan struct{}
	release chan struct{}
}

func (b *blockingBackend) SendMessage(ctx context.Context, text string) (*Reply, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.fakeBackend.SendMessage(ctx, text)
}

func (b *blockingBackend) SubmitQuery(ctx context.Context, form FormData) error {
	b.entered <- struct{}{}
	<-b.release
	return b.fakeBackend.SubmitQuery(ctx, form)
}

func newBlockingBackend() *blockingBackend {
	return &blockingBackend{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func TestSendFreeTextNoOpWhileInFlight(t *testing.T) {
	backend := newBlockingBackend()
	backend.reply = &Reply{Answer: "We are open 9 to 5."}
	w := newTestWidget(backend)
	w.SetInput("when are you open?")

	done := make(chan error, 1)
	go func() { done <- w.SendFreeText(context.Background()) }()
	<-backend.entered

	transcript := len(w.Messages())
	w.SetInput("second message")
	if err := w.SendFreeText(context.Background()); err != nil {
		t.Fatalf("in-flight send should be a silent no-op, got %v", err)
	}
	if got := len(w.Messages()); got != transcript {
		t.Fatalf("in-flight send must not change the transcript, %d -> %d", transcript, got)
	}
	if w.Input() != "second message" {
		t.Fatalf("in-flight send must preserve the input, got %q", w.Input())
	}

	close(backend.release)
	if err := <-done; err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if backend.sendCalls != 1 {
		t.Fatalf("only the first send may hit the network, got %d calls", backend.sendCalls)
	}
}

func TestSubmitFormNoOpWhileInFlight(t *testing.T) {
	backend := newBlockingBackend()
	w := newTestWidget(backend)
	w.EscalateToForm()

	form := FormData{Name: "Jo", Email: "jo@example.com"}
	done := make(chan error, 1)
	go func() { done <- w.SubmitForm(context.Background(), form) }()
	<-backend.entered

	transcript := len(w.Messages())
	if err := w.SubmitForm(context.Background(), form); err != nil {
		t.Fatalf("in-flight submit should be a silent no-op, got %v", err)
	}
	if got := len(w.Messages()); got != transcript {
		t.Fatalf("in-flight submit must not change the transcript, %d -> %d", transcript, got)
	}

	close(backend.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if len(backend.submits) != 1 {
		t.Fatalf("only the first submit may reach the backend, got %d", len(backend.submits))
	}
}

func TestEscalateToForm(t *testing.T) {
	w := newTestWidget(&fakeBackend{})

	w.EscalateToForm()

	if w.Mode() != ModeForm {
		t.Fatalf("expected form mode, got %s", w.Mode())
	}
	msgs := w.Messages()
	if msgs[len(msgs)-2].Sender != SenderUser || msgs[len(msgs)-1].Sender != SenderBot {
		t.Fatal("escalation should append a user notice then a bot prompt")
	}
}

func TestSubmitFormSuccess(t *testing.T) {
	backend := &fakeBackend{}
	w := newTestWidget(backend)
	w.EscalateToForm()

	form := FormData{Name: "Jo", Email: "jo@example.com", Phone: "555-1234", Message: "help"}
	if err := w.SubmitForm(context.Background(), form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := w.Messages()
	ack := msgs[len(msgs)-1].Text
	if !strings.Contains(ack, "Jo") || !strings.Contains(ack, "jo@example.com") || !strings.Contains(ack, "555-1234") {
		t.Fatalf("ack should reference name, email and phone, got %q", ack)
	}

	w.ReplyRendered()
	if w.Mode() != ModeSuggestions {
		t.Fatal("mode should return to suggestions after the ack renders")
	}
	if len(backend.submits) != 1 {
		t.Fatalf("expected one submit, got %d", len(backend.submits))
	}
}

func TestSubmitFormFailure(t *testing.T) {
	backend := &fakeBackend{submitErr: errors.New("boom")}
	w := newTestWidget(backend)
	w.EscalateToForm()

	err := w.SubmitForm(context.Background(), FormData{Name: "Jo", Email: "jo@example.com"})
	if err == nil {
		t.Fatal("expected error")
	}

	msgs := w.Messages()
	if !strings.Contains(msgs[len(msgs)-1].Text, "Sorry") {
		t.Fatalf("failure should append an apology, got %q", msgs[len(msgs)-1].Text)
	}

	w.ReplyRendered()
	if w.Mode() != ModeSuggestions {
		t.Fatal("mode should return to suggestions even on failure")
	}
}

func TestSubmitFormRequiresNameAndEmail(t *testing.T) {
	backend := &fakeBackend{}
	w := newTestWidget(backend)
	before := len(w.Messages())

	if err := w.SubmitForm(context.Background(), FormData{Email: "jo@example.com"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if len(backend.submits) != 0 {
		t.Fatal("invalid form must not reach the backend")
	}
	if len(w.Messages()) != before {
		t.Fatal("invalid form must not change the transcript")
	}
}

func TestReset(t *testing.T) {
	w := newTestWidget(&fakeBackend{})
	w.SelectFAQ(FAQ{Question: "Pricing?", Answer: "$79/mo"})
	w.EscalateToForm()
	w.SetInput("typing...")

	w.Reset()

	msgs := w.Messages()
	if len(msgs) != 1 || msgs[0].Text != "Hi there!" {
		t.Fatalf("reset should leave only the welcome message, got %v", msgs)
	}
	if w.Mode() != ModeSuggestions {
		t.Fatalf("expected suggestions mode, got %s", w.Mode())
	}
	if w.Input() != "" {
		t.Fatal("input should be empty after reset")
	}
}

func TestEndToEndScenario(t *testing.T) {
	w := New(&fakeBackend{})
	w.Initialize(Profile{CompanyName: "Acme", WelcomeMessage: "Hi there!"}, []FAQ{
		{Question: "Pricing?", Answer: "₹79/mo"},
	})

	msgs := w.Messages()
	if len(msgs) != 1 || msgs[0].Text != "Hi there!" || msgs[0].Sender != SenderBot {
		t.Fatalf("unexpected initial transcript: %v", msgs)
	}

	w.SelectFAQ(FAQ{Question: "Pricing?", Answer: "₹79/mo"})
	msgs = w.Messages()
	want := []Message{
		{Text: "Hi there!", Sender: SenderBot},
		{Text: "Pricing?", Sender: SenderUser},
		{Text: "₹79/mo", Sender: SenderBot},
	}
	if len(msgs) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(msgs))
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Fatalf("message %d = %+v, want %+v", i, msgs[i], want[i])
		}
	}

	w.ReplyRendered()
	if w.Mode() != ModeSuggestions {
		t.Fatalf("expected suggestions after render, got %s", w.Mode())
	}
}
