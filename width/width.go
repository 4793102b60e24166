// package width measures text by unicode east asian width, which is
// the number of columns a text occupies in a dialogue box.
// see http://unicode.org/reports/tr11/
package width

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"
)

// Default follows east asian condition of running system environment.
var Default = NewCondition(runewidth.EastAsianWidth)

// Condition decides width of ambiguous characters.
// Ambiguous characters are 2 columns in east asian locale, otherwise 1.
// The zero value is usable and treats them as narrow.
type Condition struct {
	IsEastAsian bool
}

func NewCondition(isEastAsian bool) *Condition {
	return &Condition{IsEastAsian: isEastAsian}
}

// RuneWidth returns number of columns of r. Invalid rune is 1 column
// since it is drawn as replacement character.
func (c Condition) RuneWidth(r rune) int {
	if r == 0 {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	case width.EastAsianAmbiguous:
		if c.IsEastAsian {
			return 2
		}
	}
	return 1
}

// StringWidth returns total columns of s.
func (c Condition) StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += c.RuneWidth(r)
	}
	return w
}

// MaxWidth returns columns of the widest line in lines.
func (c Condition) MaxWidth(lines []string) int {
	max := 0
	for _, l := range lines {
		if w := c.StringWidth(l); w > max {
			max = w
		}
	}
	return max
}

func RuneWidth(r rune) int         { return Default.RuneWidth(r) }
func StringWidth(s string) int     { return Default.StringWidth(s) }
func MaxWidth(lines []string) int { return Default.MaxWidth(lines) }
