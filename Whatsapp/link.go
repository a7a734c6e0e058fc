package Whatsapp

import "strings"

const linkBase = "https://wa.me/"

// BuildLink returns a wa.me deep link that opens a chat with phone, pre-filled with message.
func BuildLink(phone, message string) string {
	return linkBase + Digits(phone) + "?text=" + EncodeComponent(message)
}

// Digits strips every non-digit character from phone.
func Digits(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for i := 0; i < len(phone); i++ {
		if c := phone[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// EncodeComponent percent-encodes s byte-wise, keeping only A-Z a-z 0-9 and -_.!~*'().
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
