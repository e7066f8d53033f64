package validation

import (
	"strings"
	"testing"
)

func TestValidateKeyword(t *testing.T) {
	tests := []struct {
		keyword string
		want    bool
	}{
		{"running shoes", true},
		{"shoes", true},
		{"best running shoes for marathon", true},
		{"runner's world", true},
		{"4k monitor", true},
		{"gluten-free bread", true},
		{"café running shoes", true},
		{"zapatos de correr", true},
		{"laufschuhe für damen", true},
		{"跑鞋", true},
		{"", false},
		{" running shoes", false},
		{"running  shoes", false},
		{"Running Shoes", false},
		{"shoes!", false},
		{"<script>", false},
		{strings.Repeat("a", MaxKeywordLength+1), false},
	}

	for _, tt := range tests {
		if got := ValidateKeyword(tt.keyword); got != tt.want {
			t.Errorf("ValidateKeyword(%q) = %v, want %v", tt.keyword, got, tt.want)
		}
	}
}

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Running Shoes", "running shoes"},
		{"  running   shoes  ", "running shoes"},
		{"\trunning\nshoes", "running shoes"},
		{"shoes", "shoes"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeKeyword(tt.in); got != tt.want {
			t.Errorf("NormalizeKeyword(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://cdn.example.com/ad.png", true},
		{"http://example.com/image.jpg", true},
		{"javascript:alert(1)", false},
		{"data:text/html,hi", false},
		{"ftp://example.com/file", false},
		{"https://", false},
		{"", false},
		{"not a url at all ://", false},
	}

	for _, tt := range tests {
		if got, _ := ValidateURL(tt.url); got != tt.want {
			t.Errorf("ValidateURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
