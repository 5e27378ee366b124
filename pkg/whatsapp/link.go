// Package whatsapp builds click-to-chat links for the messaging handoff.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// DefaultBaseURL is the public click-to-chat endpoint.
const DefaultBaseURL = "https://wa.me"

// Digits strips everything but ASCII digits from a phone number.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Link returns <baseURL>/<digits>?text=<escaped text>.
func Link(baseURL, phone, text string) (string, error) {
	digits := Digits(phone)
	if digits == "" {
		return "", fmt.Errorf("phone number %q has no digits", phone)
	}
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", baseURL)
	}
	u = u.JoinPath(digits)
	u.RawQuery = "text=" + url.QueryEscape(text)
	return u.String(), nil
}
