package markup

import (
	"regexp"
	"strings"
)

// Trim removes spaces, tabs and form feeds from both ends of s.
func Trim(s string) string { return strings.Trim(s, blanks) }

var (
	leadingBlankLines  = regexp.MustCompile(`^(?: *\n)+`)
	trailingBlankLines = regexp.MustCompile(`(?:\n *)+$`)
)

// LtrimTextBlock removes leading lines that consist only of spaces.
func LtrimTextBlock(s string) string { return leadingBlankLines.ReplaceAllString(s, "") }

// RtrimTextBlock removes trailing lines that consist only of spaces.
func RtrimTextBlock(s string) string { return trailingBlankLines.ReplaceAllString(s, "") }

// SplitClasses splits a class attribute value into tokens.
func SplitClasses(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return strings.ContainsRune(blanks, r) })
}

// MergeClasses concatenates class lists. Empty tokens are kept; they are
// dropped when rendered.
func MergeClasses(lists ...[]string) []string {
	var merged []string
	for _, l := range lists {
		merged = append(merged, l...)
	}
	return merged
}

var escaper = strings.NewReplacer(
	`"`, "&quot;", "'", "&#39;", "&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape escapes text for use in markup, both as content and as an attribute
// value.
func Escape(s string) string { return escaper.Replace(s) }

const hexDigits = "0123456789ABCDEF"

// EncodeURI percent-encodes every byte of s except ASCII letters, digits and
// the characters that may appear in a complete URI, so that an already valid
// URI is kept as is.
func EncodeURI(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if keepInURI(b) {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(hexDigits[b>>4])
			sb.WriteByte(hexDigits[b&0xf])
		}
	}
	return sb.String()
}

func keepInURI(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || '0' <= b && b <= '9' ||
		strings.IndexByte(";,/?:@&=+$-_.!~*'()#", b) >= 0
}
