package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/botdesk/botdesk-backend/pkg/widget"
)

// Terminal harness driving one widget session against a running server. FAQ
// suggestions are picked by number; anything else goes out as free text.
func main() {
	var baseURL, slug, token string
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "API base URL")
	flag.StringVar(&slug, "slug", "", "Chatbot slug")
	flag.StringVar(&token, "token", "", "Widget token")
	flag.Parse()

	if slug == "" || token == "" {
		log.Fatal("❌ -slug and -token are required")
	}

	ctx := context.Background()
	backend := widget.NewClient(baseURL, slug, token)

	display, err := backend.FetchDisplay(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to load chatbot: %v", err)
	}

	w := widget.New(backend)
	w.Initialize(display.Profile, display.Faqs)

	fmt.Printf("💬 %s\n", display.Profile.CompanyName)
	if display.Profile.Description != "" {
		fmt.Println(display.Profile.Description)
	}
	fmt.Println(strings.Repeat("-", 40))

	rendered := 0
	rendered = render(w, rendered)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt(w)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			return
		case line == "/reset":
			w.Reset()
			rendered = 0
		case line == "/form":
			w.EscalateToForm()
		case w.Mode() == widget.ModeForm:
			submitForm(ctx, w, scanner, line)
		default:
			if n, err := strconv.Atoi(line); err == nil {
				faqs := w.FAQs()
				if n >= 1 && n <= len(faqs) {
					w.SelectFAQ(faqs[n-1])
					break
				}
			}
			w.SetInput(line)
			if err := w.SendFreeText(ctx); err != nil {
				log.Printf("⚠️  Send failed: %v", err)
			}
		}

		rendered = render(w, rendered)
		w.ReplyRendered()
	}
}

// render prints any messages appended since the last call.
func render(w *widget.Widget, rendered int) int {
	msgs := w.Messages()
	for _, m := range msgs[rendered:] {
		icon := "🤖"
		if m.Sender == widget.SenderUser {
			icon = "🧑"
		}
		fmt.Printf("%s %s\n", icon, m.Text)
	}
	return len(msgs)
}

func prompt(w *widget.Widget) {
	if w.Mode() == widget.ModeForm {
		fmt.Print("✍️  your name> ")
		return
	}
	faqs := w.FAQs()
	if len(faqs) > 0 {
		fmt.Println("Suggestions:")
		for i, f := range faqs {
			fmt.Printf("  %d. %s\n", i+1, f.Question)
		}
	}
	fmt.Print("> ")
}

// submitForm walks the inquiry form fields one prompt at a time, starting
// from the name the caller already typed.
func submitForm(ctx context.Context, w *widget.Widget, scanner *bufio.Scanner, name string) {
	read := func(label string) string {
		fmt.Printf("✍️  %s> ", label)
		if !scanner.Scan() {
			return ""
		}
		return strings.TrimSpace(scanner.Text())
	}

	form := widget.FormData{
		Name:    name,
		Email:   read("email"),
		Phone:   read("phone (optional)"),
		Message: read("your question"),
	}
	if err := w.SubmitForm(ctx, form); err != nil {
		log.Printf("⚠️  %v", err)
	}
}
