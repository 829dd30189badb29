package formatter

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// FormatNumber groups the digits of n in threes.
// Example: 1234567 -> "1,234,567"
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}

	var sb strings.Builder
	sb.WriteString(sign)
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	return sb.String()
}

// FormatAperture renders an f-number, "-" when unknown.
// Example: 2.8 -> "f/2.8"
func FormatAperture(f float64) string {
	if f <= 0 {
		return "-"
	}
	return "f/" + strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatDate renders the calendar date of t, "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

// Wrap breaks s into lines of at most width runes on word boundaries.
// Words longer than width keep a line to themselves.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}

	var lines []string
	var cur strings.Builder
	n := 0
	for _, word := range strings.Fields(s) {
		w := utf8.RuneCountInString(word)
		switch {
		case n == 0:
		case n+1+w > width:
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		default:
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(word)
		n += w
	}
	if n > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

var markdownV2 = strings.NewReplacer(
	"_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
	"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`,
	"=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
)

// EscapeMarkdownV2 escapes the characters Telegram's MarkdownV2 reserves
func EscapeMarkdownV2(s string) string {
	return markdownV2.Replace(s)
}
