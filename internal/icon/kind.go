package icon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies an icon reference for renderers.
type Kind int

const (
	KindNone Kind = iota
	KindEmoji
	KindDataURL
	KindURL
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindEmoji:
		return "emoji"
	case KindDataURL:
		return "data-url"
	case KindURL:
		return "url"
	case KindPath:
		return "path"
	}
	return "none"
}

// KindOf inspects ref.
func KindOf(ref string) Kind {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return KindNone
	case strings.HasPrefix(ref, "data:"):
		return KindDataURL
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return KindURL
	case isEmoji(ref):
		return KindEmoji
	}
	return KindPath
}

// isEmoji treats short strings made of symbols (and their joiners/selectors) as emoji.
func isEmoji(s string) bool {
	if utf8.RuneCountInString(s) > 8 {
		return false
	}
	symbol := false
	for _, r := range s {
		switch {
		case r == 0x200d || (r >= 0xfe00 && r <= 0xfe0f):
		case r >= 0x1f000 || (r >= 0x2300 && r <= 0x27bf) || (r >= 0x2b00 && r <= 0x2bff):
			symbol = true
		case unicode.Is(unicode.So, r):
			symbol = true
		default:
			return false
		}
	}
	return symbol
}
