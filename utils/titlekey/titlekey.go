// Package titlekey derives stable dedup keys from free-text movie titles.
//
// Venues publish the same film with inconsistent casing, punctuation and
// spacing ("EL TOPO!", "El Topo"). The key collapses those variants so one
// adapter run produces one Movie per film. The mapping is lossy: two
// genuinely different titles that normalize identically will merge, which
// is accepted as best-effort behavior.
package titlekey

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Key normalizes a title into its dedup key: transliterate to ASCII,
// lower-case, strip everything but letters, digits and whitespace, then
// collapse whitespace runs to single hyphens. Pure and deterministic.
func Key(title string) string {
	s := strings.ToLower(unidecode.Unidecode(title))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), "-")
}
