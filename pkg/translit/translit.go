// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package translit renders Unicode text, Cyrillic names in particular, in
plain Latin ASCII.

Cyrillic letters go through a fixed letter table in the j-series scheme
(й → j, ё → jo, ю → ju, я → ja, ц → c, х → h), so letters that differ only
by a diacritic keep distinct spellings: Йосиф is "Josif", Иосиф is "Iosif".
Any other script is stripped of combining marks and handed to go-unidecode.
Output is deterministic for a given input.
*/
package translit

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cyrillic maps lower-case Cyrillic letters to Latin.
var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "jo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "ju", 'я': "ja",

	// Ukrainian and Belarusian
	'і': "i", 'ї': "ji", 'є': "je", 'ґ': "g", 'ў': "w",
}

// stripMarks drops combining marks from decomposed text: "Léa" becomes "Lea".
// A chain keeps internal buffers, so each call builds its own.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Latin transliterates s into ASCII.
//
//	translit.Latin("Иванов") // "Ivanov"
//	translit.Latin("Йосиф")  // "Josif"
//	translit.Latin("Léa")    // "Lea"
func Latin(s string) string {
	var out, other strings.Builder

	flush := func() {
		if other.Len() == 0 {
			return
		}
		out.WriteString(foreign(other.String()))
		other.Reset()
	}

	// NFC first so that a decomposed И + breve is still read as Й.
	for _, r := range norm.NFC.String(s) {
		lower := unicode.ToLower(r)
		latin, ok := cyrillic[lower]
		if !ok {
			other.WriteRune(r)
			continue
		}

		flush()
		if r != lower && latin != "" {
			latin = strings.ToUpper(latin[:1]) + latin[1:]
		}
		out.WriteString(latin)
	}
	flush()

	return out.String()
}

func foreign(s string) string {
	stripped, _, err := transform.String(stripMarks(), s)
	if err != nil {
		stripped = s
	}
	return unidecode.Unidecode(stripped)
}

// Initial returns the lower-cased first character of the transliterated s.
//
// ok is false when s is blank or when the transliteration does not start with
// a Latin letter or a digit. Digits pass through unchanged.
func Initial(s string) (initial byte, ok bool) {
	latin := strings.TrimSpace(Latin(strings.TrimSpace(s)))
	if latin == "" {
		return 0, false
	}

	first := latin[0]
	switch {
	case first >= 'A' && first <= 'Z':
		return first + ('a' - 'A'), true
	case first >= 'a' && first <= 'z', first >= '0' && first <= '9':
		return first, true
	default:
		return 0, false
	}
}
