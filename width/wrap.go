package width

import (
	"strings"
	"unicode"
)

// Wrap splits s into lines whose width are at most maxWidth,
// using default condition. See Condition.Wrap.
func Wrap(s string, maxWidth int) []string {
	return Default.Wrap(s, maxWidth)
}

// Wrap splits s into lines whose east asian width are at most maxWidth.
// Explicit "\n" always breaks a line. Lines are broken at the last space
// when possible, otherwise at rune boundary, since wide text such as
// Japanese has no spaces. maxWidth <= 0 means no wrapping.
func (c Condition) Wrap(s string, maxWidth int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if maxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		lines = append(lines, c.wrapLine(para, maxWidth)...)
	}
	return lines
}

func (c Condition) wrapLine(s string, maxWidth int) []string {
	var (
		lines     []string
		line      []rune
		lineW     int
		lastSpace = -1 // index in line
	)
	for _, r := range s {
		w := c.RuneWidth(r)
		if lineW+w > maxWidth && len(line) > 0 {
			if lastSpace >= 0 && !unicode.IsSpace(r) {
				// break at last space and carry the rest.
				rest := append([]rune(nil), line[lastSpace+1:]...)
				lines = append(lines, strings.TrimRightFunc(string(line[:lastSpace]), unicode.IsSpace))
				line = rest
				lineW = c.StringWidth(string(rest))
			} else {
				lines = append(lines, strings.TrimRightFunc(string(line), unicode.IsSpace))
				line = line[:0]
				lineW = 0
			}
			lastSpace = -1
			if unicode.IsSpace(r) && len(line) == 0 {
				continue // no leading space in new line.
			}
		}
		if unicode.IsSpace(r) {
			lastSpace = len(line)
		}
		line = append(line, r)
		lineW += w
	}
	lines = append(lines, strings.TrimRightFunc(string(line), unicode.IsSpace))
	return lines
}
