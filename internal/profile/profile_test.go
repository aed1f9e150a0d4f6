package profile

import "testing"

func TestDisplayName_GuestFallback(t *testing.T) {
	s := NewStore()
	if s.Loaded() {
		t.Error("new store should not be loaded")
	}
	if got := s.DisplayName(); got != GuestDisplayName {
		t.Errorf("DisplayName = %q, want %q before any load", got, GuestDisplayName)
	}
}

func TestSet(t *testing.T) {
	s := NewStore()
	s.Set("Ada Lovelace")

	if !s.Loaded() {
		t.Error("store should be loaded after Set")
	}
	if s.Name() != "Ada Lovelace" {
		t.Errorf("Name = %q", s.Name())
	}
	if s.DisplayName() != "Ada Lovelace" {
		t.Errorf("DisplayName = %q", s.DisplayName())
	}
}

func TestSet_BlankNameKeepsGuestDisplay(t *testing.T) {
	s := NewStore()
	s.Set("Ada")
	s.Set("   ")

	if !s.Loaded() {
		t.Error("store should remain loaded")
	}
	if s.Name() != "" {
		t.Errorf("Name = %q, want empty", s.Name())
	}
	if s.DisplayName() != GuestDisplayName {
		t.Errorf("DisplayName = %q, want guest fallback for a blank name", s.DisplayName())
	}
}

func TestSet_TrimsWhitespace(t *testing.T) {
	s := NewStore()
	s.Set("  Ada  ")
	if s.Name() != "Ada" {
		t.Errorf("Name = %q, want Ada", s.Name())
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ada", "Ada"},
		{"  Ada  ", "Ada"},
		{"", ""},
		{"  \t ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.input); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
