package preferences

import (
	"fmt"
	"regexp"
)

const (
	fontSizeKey   = "font_size"
	sortOptionKey = "sort_option"
)

type FontSize string

const (
	FontSizeSmall  FontSize = "SMALL"
	FontSizeMedium FontSize = "MEDIUM"
	FontSizeLarge  FontSize = "LARGE"

	DefaultFontSize = FontSizeMedium
)

// ParseFontSize returns the font size named by s and false when s names none.
func ParseFontSize(s string) (FontSize, bool) {
	switch size := FontSize(s); size {
	case FontSizeSmall, FontSizeMedium, FontSizeLarge:
		return size, true
	default:
		return DefaultFontSize, false
	}
}

// hintNamePattern limits hint names to what can safely be embedded in a key.
var hintNamePattern = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

func hintKey(hint string) string {
	return fmt.Sprintf("hint.%s.seen", hint)
}
