package email

import (
	"strings"

	"github.com/avelarde/mailhub/internal/domain/user"
)

const (
	VariantDot        = "dot"
	VariantUnderscore = "underscore"
	VariantInitial    = "initial"
	VariantDash       = "dash"
	VariantCorporate  = "corporate"
	VariantCompact    = "compact"
	VariantReversed   = "reversed"
	VariantInitials   = "initials"
)

// Variants fixes the generation order so flattened batches are deterministic.
var Variants = []string{
	VariantDot,
	VariantUnderscore,
	VariantInitial,
	VariantDash,
	VariantCorporate,
	VariantCompact,
	VariantReversed,
	VariantInitials,
}

// Generate derives the 8 address variants for a name pair. Pure and total:
// names that normalize to nothing fall back to "a"/"b" so every variant is
// still well formed.
func Generate(firstName, lastName string) map[string]string {
	first := normalize(firstName, "a")
	last := normalize(lastName, "b")

	fi := first[:1]
	li := last[:1]

	return map[string]string{
		VariantDot:        first + "." + last + "@lumamail.com",
		VariantUnderscore: first + "_" + last + "@boxkite.io",
		VariantInitial:    fi + last + "@quillpost.net",
		VariantDash:       first + "-" + last + "@sendfox.org",
		VariantCorporate:  fi + "." + last + "@corpserve.com",
		VariantCompact:    first + last + "@plainbox.co",
		VariantReversed:   last + "." + first + "@reversio.net",
		VariantInitials:   fi + li + "@monogram.dev",
	}
}

// RecordsForUsers flattens per-user alias maps into one batch in user order,
// variants in table order within each user.
func RecordsForUsers(users []user.User) []Record {
	records := make([]Record, 0, len(users)*len(Variants))

	for _, u := range users {
		aliases := Generate(u.FirstName, u.LastName)

		for _, v := range Variants {
			records = append(records, Record{
				UserID:  u.ID,
				Variant: v,
				Address: aliases[v],
			})
		}
	}

	return records
}

// normalize keeps ASCII letters only and lowercases them.
func normalize(s, fallback string) string {
	var b strings.Builder

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}

	if b.Len() == 0 {
		return fallback
	}

	return b.String()
}
