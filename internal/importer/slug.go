package importer

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

var translitMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Slugify builds a URL-safe slug: Cyrillic transliteration, lowercasing and
// collapse of every non-alphanumeric run into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || unicode.IsDigit(r):
			b.WriteRune(r)
		case translitMap[r] != "" || r == 'ъ' || r == 'ь':
			b.WriteString(translitMap[r])
		default:
			b.WriteByte('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// UniqueSlug suffixes the slug with a timestamp so repeated titles never
// collide on the unique index.
func UniqueSlug(title string, now time.Time) string {
	slug := Slugify(title)
	if slug == "" {
		slug = "item"
	}
	return fmt.Sprintf("%s-%d", slug, now.Unix())
}
