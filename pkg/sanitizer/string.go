package sanitizer

import "strings"

// stripControl removes C0 control characters and DEL. Line breaks and tabs
// are kept so multi-line notes survive.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\t' && r != '\r' {
			return -1
		}
		if r == 0x7f {
			return -1
		}
		return r
	}, s)
}
