package validate

import "testing"

func TestLuhn(t *testing.T) {
	if !Luhn(Digits("4532-1234-5678-9010")) {
		t.Fatalf("expected 4532-1234-5678-9010 to pass the checksum")
	}
	if Luhn(Digits("4532-1234-5678-9011")) {
		t.Fatalf("expected 4532-1234-5678-9011 to fail the checksum")
	}
}

func TestLuhnRejectsNonDigits(t *testing.T) {
	if Luhn("4532abcd56789010") {
		t.Fatalf("non-digit input must fail")
	}
	if Luhn("") {
		t.Fatalf("empty input must fail")
	}
	if Luhn("123") {
		t.Fatalf("too-short input must fail")
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("4532-1234 5678.9010"); got != "4532123456789010" {
		t.Fatalf("unexpected digits: %q", got)
	}
}

func TestIsAlphabet(t *testing.T) {
	if !IsAlphabet("abc123", "abcdefghijklmnopqrstuvwxyz0123456789") {
		t.Fatalf("expected match")
	}
	if IsAlphabet("", "abc") {
		t.Fatalf("empty string is not in any alphabet")
	}
	if IsAlphabet("abc!", "abc") {
		t.Fatalf("expected mismatch")
	}
}
