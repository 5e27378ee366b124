package whatsapp

import (
	"net/url"
	"testing"
)

func TestDigits(t *testing.T) {
	if got := Digits("+1 (234) 567-890"); got != "1234567890" {
		t.Fatalf("unexpected digits %q", got)
	}
	if got := Digits("abc"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestLinkEncodesText(t *testing.T) {
	text := "Hi! Total Amount: $179.98\n\n• Serum (30ml)"
	link, err := Link("https://wa.me/", "+1234567890", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if u.Host != "wa.me" || u.Path != "/1234567890" {
		t.Fatalf("unexpected link target %s", link)
	}
	if got := u.Query().Get("text"); got != text {
		t.Fatalf("text did not round trip: %q", got)
	}
}

func TestLinkDefaultsBaseURL(t *testing.T) {
	link, err := Link("", "+27 82 000 0000", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link != "https://wa.me/27820000000?text=hi" {
		t.Fatalf("unexpected link %s", link)
	}
}

func TestLinkRejectsBadInput(t *testing.T) {
	if _, err := Link(DefaultBaseURL, "none", "hi"); err == nil {
		t.Fatal("expected error for phone without digits")
	}
	if _, err := Link("wa.me", "123", "hi"); err == nil {
		t.Fatal("expected error for relative base url")
	}
}
