package tinyurl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"http://example.com", true},
		{"https://example.com", true},
		{"example.com", true},
		{"HTTPS://WWW.EXAMPLE.COM", true},
		{"https://www.example.co.uk/path/to/page", true},
		{"http://my-site.io/a_b-c~d%20e.html", true},
		{"https://example.com/search?q=go&page=2", true},
		{"https://example.com/docs#section-1", true},
		{"http://example.com:8080/", true},
		{"http://192.168.0.1:8080/a/b", true},
		{"10.0.0.1", true},
		{"", false},
		{"not a url", false},
		{"http://", false},
		{"https://", false},
		{"ftp://example.com", false},
		{"http:/example.com", false},
		{"htp://example.com", false},
		{"http://localhost", false},
		{"http://example.c", false},
		{"http://exa mple.com", false},
		{"http://-example.com", false},
		{"http://example.com/<script>", false},
		{"http://example.com:port", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equalf(t, tt.want, IsValidURL(tt.in), "IsValidURL(%q)", tt.in)
		})
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", true},
		{"single", "a", true},
		{"mixed", "aZ09", true},
		{"hex uuid", "37cf554da0c54f3340498bbac20d9cae", false},
		{"max length", strings.Repeat("Z", 22), true},
		{"too long", strings.Repeat("Z", 23), false},
		{"dash", "abc-def", false},
		{"underscore", "abc_def", false},
		{"slash", "abc/def", false},
		{"space", "abc def", false},
		{"unicode", "abcé", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equalf(t, tt.want, IsValidID(tt.in), "IsValidID(%q)", tt.in)
		})
	}
}

func TestIsValidID_GeneratedIDs(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.Truef(t, IsValidID(id), "generated id %q rejected", id)
	}
}
