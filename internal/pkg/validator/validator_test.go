package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidBadgeID(t *testing.T) {
	valid := []string{"1234", "078853", "0123456789"}
	invalid := []string{"", "123", "12345678901", "12a45", "12 45"}
	for _, id := range valid {
		if !IsValidBadgeID(id) {
			t.Errorf("IsValidBadgeID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidBadgeID(id) {
			t.Errorf("IsValidBadgeID(%q) = true, want false", id)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"8:05 AM", "12:00 PM", "11:59 pm", "1:15 AM"}
	invalid := []string{"", "8:05", "8:05AM", "08:5 AM", "25:00 AM", "8:05 XM"}
	for _, s := range valid {
		if !IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateKey(t *testing.T) {
	valid := []string{"07-12-2025", "31-01-2026"}
	invalid := []string{"", "7-12-2025", "07/12/2025", "2025-12-07", "07-12-25"}
	for _, s := range valid {
		if !IsValidDateKey(s) {
			t.Errorf("IsValidDateKey(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidDateKey(s) {
			t.Errorf("IsValidDateKey(%q) = true, want false", s)
		}
	}
}

func TestIsValidName(t *testing.T) {
	valid := []string{"Sarah Perilus", "Jean-Baptiste", "O'Neil", "Aurélie"}
	invalid := []string{"", "   ", "R2D2", "a@b"}
	for _, s := range valid {
		if !IsValidName(s) {
			t.Errorf("IsValidName(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidName(s) {
			t.Errorf("IsValidName(%q) = true, want false", s)
		}
	}
}
