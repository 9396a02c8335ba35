package validators

import "testing"

func TestIsDocumentValid(t *testing.T) {
	tests := []struct {
		doc  string
		want bool
	}{
		{"12345678", true},
		{" 12345678 ", true},
		{"123456", true},
		{"123456789012", true},
		{"12345", false},
		{"1234567890123", false},
		{"1234a678", false},
		{"CE-001234567", true},
		{"CE-12345", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsDocumentValid(tt.doc); got != tt.want {
			t.Errorf("IsDocumentValid(%q) = %v, want %v", tt.doc, got, tt.want)
		}
	}
}

func TestIsPhoneValid(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"987654321", true},
		{"+51 987 654 321", true},
		{"987-654-321", true},
		{"98+7654321", false},
		{"abc1234567", false},
		{"123", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPhoneValid(tt.phone); got != tt.want {
			t.Errorf("IsPhoneValid(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}
