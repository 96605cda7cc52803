package dispatch

import "strings"

const upperhex = "0123456789ABCDEF"

// Encode percent-encodes text for a URL query. ASCII letters, digits and
// "-._~/?" pass through; every other byte of the UTF-8 encoding becomes %XX.
func Encode(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~', '/', '?':
		return true
	}
	return false
}
