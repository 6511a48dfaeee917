// Package initials computes the text and the color of an avatar for the
// name of a person.
package initials

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// See https://github.com/cozy/cozy-ui/blob/master/react/Avatar/index.jsx#L9-L26
// and https://docs.cozy.io/cozy-ui/styleguide/section-settings.html#kssref-settings-colors
var colors = []string{
	"#1FA8F1",
	"#FD7461",
	"#FC6D00",
	"#F52D2D",
	"#FF962F",
	"#FF7F1B",
	"#6984CE",
	"#7F6BEE",
	"#B449E7",
	"#40DE8E",
	"#0DCBCF",
	"#35CE68",
	"#3DA67E",
	"#C2ADF4",
	"#FFC644",
	"#FC4C83",
}

// Of returns n letters for the name: the initials of the first words and of
// the last one. When the name has less than n words, the first word gives
// the missing letters. The result is shorter than n only when the name has
// not enough letters.
func Of(name string, n int) string {
	if n <= 0 {
		return ""
	}
	var initials []rune
	var first string
	for _, part := range strings.Fields(name) {
		r, size := utf8.DecodeRuneInString(part)
		if size > 0 && unicode.IsLetter(r) {
			initials = append(initials, r)
			if first == "" {
				first = part
			}
		}
	}
	if len(initials) >= n {
		return string(initials[:n-1]) + string(initials[len(initials)-1])
	}
	if len(initials) == 0 {
		return ""
	}

	var extra []rune
	for _, r := range []rune(first)[1:] {
		if len(initials)+len(extra) == n {
			break
		}
		if unicode.IsLetter(r) {
			extra = append(extra, r)
		}
	}
	return string(initials[0]) + string(extra) + string(initials[1:])
}

// Color returns a color of the palette for the name. The same name has
// always the same color.
func Color(name string) string {
	sum := 0
	for i := 0; i < len(name); i++ {
		sum += int(name[i])
	}
	return colors[sum%len(colors)]
}
