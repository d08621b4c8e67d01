package extract

import (
	"regexp"
	"strings"
)

// Name is a candidate name split into parts.
type Name struct {
	First     string
	Middle    string
	Last      string
	Suffix    string
	Preferred string
}

var (
	nickname = regexp.MustCompile(`["“”]([^"“”]+)["“”]|\(([^)]+)\)`)
	suffixes = map[string]string{
		"jr": "Jr.", "sr": "Sr.", "ii": "II", "iii": "III", "iv": "IV", "v": "V",
	}
)

// ParseName splits "First Middle Last Suffix" or "Last, First Middle" into
// parts. A quoted or parenthesized nickname becomes the preferred name.
func ParseName(full string) Name {
	var n Name
	full = Clean(full)
	if m := nickname.FindStringSubmatch(full); m != nil {
		n.Preferred = Clean(m[1] + m[2])
		full = Clean(nickname.ReplaceAllString(full, " "))
	}
	if full == "" {
		return n
	}
	if i := strings.Index(full, ","); i > 0 {
		last, rest := Clean(full[:i]), Clean(full[i+1:])
		// "Smith, Jr." is a suffix, not the "Last, First" form
		if s, ok := suffixes[suffixKey(rest)]; ok {
			full = last
			n.Suffix = s
		} else if rest != "" {
			// "Smith, John Jr." keeps the suffix after the last name
			words := strings.Fields(rest)
			if s, ok := suffixes[suffixKey(words[len(words)-1])]; ok && len(words) > 1 {
				n.Suffix = s
				rest = strings.Join(words[:len(words)-1], " ")
			}
			full = rest + " " + last
		}
	}
	words := strings.Fields(full)
	if len(words) > 1 {
		if s, ok := suffixes[suffixKey(words[len(words)-1])]; ok {
			n.Suffix = s
			words = words[:len(words)-1]
		}
	}
	switch len(words) {
	case 0:
	case 1:
		n.Last = words[0]
	default:
		n.First = words[0]
		n.Last = words[len(words)-1]
		n.Middle = strings.Join(words[1:len(words)-1], " ")
	}
	return n
}

// Full joins the legal parts back together in "First Middle Last Suffix" order.
func (n Name) Full() string {
	return Clean(strings.Join([]string{n.First, n.Middle, n.Last, n.Suffix}, " "))
}

func suffixKey(s string) string {
	return strings.Trim(strings.ToLower(s), ".,")
}
