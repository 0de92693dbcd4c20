package services

import (
	"testing"

	"github.com/botdesk/botdesk-backend/internal/models"
	"github.com/lib/pq"
)

func testEntries() []models.QAEntry {
	return []models.QAEntry{
		{
			Question: "What are your opening hours?",
			Answer:   "We are open 9 to 5, Monday to Friday.",
			Keywords: pq.StringArray{"hours", "open"},
		},
		{
			Question: "How much does it cost?",
			Answer:   "Plans start at $79 per month.",
			Keywords: pq.StringArray{"price", "cost", "pricing"},
		},
		{
			Question: "Do you offer refunds?",
			Answer:   "Yes, within 30 days of purchase.",
			Keywords: pq.StringArray{"refund"},
		},
	}
}

func TestMatchEntryExactQuestion(t *testing.T) {
	reply := matchEntry(testEntries(), "what are your opening hours?")
	if reply.Fallback {
		t.Fatal("expected a match, got fallback")
	}
	if reply.Answer != "We are open 9 to 5, Monday to Friday." {
		t.Fatalf("unexpected answer: %q", reply.Answer)
	}
}

func TestMatchEntryExactBeatsKeyword(t *testing.T) {
	// "How much does it cost?" contains no keyword of the first entry, but if
	// it did, the exact-question pass must still win over keyword containment.
	entries := testEntries()
	entries[0].Keywords = pq.StringArray{"cost"}

	reply := matchEntry(entries, "  How Much Does It Cost?  ")
	if reply.Answer != "Plans start at $79 per month." {
		t.Fatalf("exact question match should win, got %q", reply.Answer)
	}
}

func TestMatchEntryKeywordContainment(t *testing.T) {
	reply := matchEntry(testEntries(), "hey, can I get a refund on my order")
	if reply.Fallback {
		t.Fatal("expected keyword match, got fallback")
	}
	if reply.Answer != "Yes, within 30 days of purchase." {
		t.Fatalf("unexpected answer: %q", reply.Answer)
	}
}

func TestMatchEntryFirstKeywordHitWins(t *testing.T) {
	// Mentions both "open" and "pricing"; the earlier entry must win.
	reply := matchEntry(testEntries(), "are you open and what is the pricing")
	if reply.Answer != "We are open 9 to 5, Monday to Friday." {
		t.Fatalf("first entry should win, got %q", reply.Answer)
	}
}

func TestMatchEntryFallback(t *testing.T) {
	reply := matchEntry(testEntries(), "do you ship to the moon")
	if !reply.Fallback {
		t.Fatal("expected fallback")
	}
	if reply.Answer != FallbackReply {
		t.Fatalf("unexpected fallback text: %q", reply.Answer)
	}
}

func TestMatchEntryEmptyEntries(t *testing.T) {
	reply := matchEntry(nil, "anything")
	if !reply.Fallback {
		t.Fatal("expected fallback with no entries")
	}
}
