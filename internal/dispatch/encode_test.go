package dispatch

import "testing"

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"space", "a b", "a%20b"},
		{"ampersand", "a&b", "a%26b"},
		{"kept punctuation", "a-b._~/c?", "a-b._~/c?"},
		{"equals and hash", "x=1#y", "x%3D1%23y"},
		{"plus", "1+1", "1%2B1"},
		{"newline", "a\nb", "a%0Ab"},
		{"percent", "100%", "100%25"},
		{"multibyte", "é", "%C3%A9"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.in); got != tt.want {
				t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncode_OnlyAllowedBytesSurvive(t *testing.T) {
	var all []byte
	for c := 0; c < 256; c++ {
		all = append(all, byte(c))
	}
	out := Encode(string(all))
	for i := 0; i < len(out); i++ {
		c := out[i]
		if c == '%' {
			i += 2
			continue
		}
		if !unreserved(c) {
			t.Fatalf("byte %q leaked through unencoded", c)
		}
	}
}
