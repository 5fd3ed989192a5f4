package offlinerepo

import "testing"

func TestScopeFor(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{"entity and owner", []string{"cart", "user-42"}, "cart::user-42"},
		{"single segment", []string{"products"}, "products"},
		{"empty segments dropped", []string{"cart", "", "u1"}, "cart::u1"},
		{"uppercase lowered", []string{"Orders", "U1"}, "orders::u1"},
		{"uuid owner", []string{"wishlist", "6f1c0e6e-8a1e-4c2b-9f3a-1d2e3f4a5b6c"}, "wishlist::6f1c0e6e-8a1e-4c2b-9f3a-1d2e3f4a5b6c"},
		{"no segments", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScopeFor(tt.segments...); got != tt.want {
				t.Errorf("ScopeFor(%v) = %q, expected %q", tt.segments, got, tt.want)
			}
		})
	}
}

func TestNormalizeScope(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Cart", "cart"},
		{"user 42", "user_42"},
		{"a//b", "a_b"},
		{"  padded  ", "padded"},
		{"dots.and-dashes", "dots.and-dashes"},
		{"___", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeScope(tt.input); got != tt.want {
			t.Errorf("NormalizeScope(%q) = %q, expected %q", tt.input, got, tt.want)
		}
	}
}
