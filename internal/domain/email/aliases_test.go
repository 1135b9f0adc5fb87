package email

import (
	"strings"
	"testing"

	"github.com/avelarde/mailhub/internal/domain/user"
)

func TestGenerateShape(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
	}{
		{name: "plain_ascii", firstName: "Juan", lastName: "Perez"},
		{name: "accented", firstName: "María", lastName: "Pérez"},
		{name: "mixed_case", firstName: "CaRLos", lastName: "GaRCia"},
		{name: "with_spaces", firstName: "Ana Sofia", lastName: "de la Cruz"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			aliases := Generate(tt.firstName, tt.lastName)

			if len(aliases) != 8 {
				t.Fatalf("got %d variants, want 8", len(aliases))
			}

			seen := make(map[string]struct{}, len(aliases))

			for _, v := range Variants {
				addr, ok := aliases[v]

				if !ok {
					t.Fatalf("missing variant %q", v)
				}

				if addr == "" || !strings.Contains(addr, "@") {
					t.Fatalf("variant %q produced malformed address %q", v, addr)
				}

				local, _, _ := strings.Cut(addr, "@")

				if local == "" {
					t.Fatalf("variant %q has empty local part: %q", v, addr)
				}

				if strings.ToLower(addr) != addr {
					t.Fatalf("variant %q not lowercased: %q", v, addr)
				}

				seen[addr] = struct{}{}
			}

			if len(seen) != 8 {
				t.Fatalf("variants collided: %v", aliases)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first := Generate("Juan", "Pérez")

	for i := 0; i < 10; i++ {
		again := Generate("Juan", "Pérez")

		for v, addr := range first {
			if again[v] != addr {
				t.Fatalf("variant %q changed between calls: %q vs %q", v, addr, again[v])
			}
		}
	}
}

func TestGenerateFallbackForUnusableNames(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		wantLocal string // expected "dot" local part
	}{
		{name: "digits_only", firstName: "1234", lastName: "5678", wantLocal: "a.b"},
		{name: "symbols_only", firstName: "!!!", lastName: "???", wantLocal: "a.b"},
		{name: "empty", firstName: "", lastName: "", wantLocal: "a.b"},
		{name: "first_only_unusable", firstName: "99", lastName: "Gómez", wantLocal: "a.gmez"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			aliases := Generate(tt.firstName, tt.lastName)

			local, _, _ := strings.Cut(aliases[VariantDot], "@")

			if local != tt.wantLocal {
				t.Fatalf("got dot local %q, want %q", local, tt.wantLocal)
			}

			for v, addr := range aliases {
				if !strings.Contains(addr, "@") || strings.HasPrefix(addr, "@") {
					t.Fatalf("variant %q malformed after fallback: %q", v, addr)
				}
			}
		})
	}
}

func TestGenerateAccentsAreStripped(t *testing.T) {
	aliases := Generate("María", "Pérez")

	// non-ASCII runes are dropped, not transliterated
	if got := aliases[VariantDot]; got != "mara.prez@lumamail.com" {
		t.Fatalf("got %q", got)
	}
}

func TestRecordsForUsers(t *testing.T) {
	users := []user.User{
		{ID: 1, FirstName: "Juan", LastName: "Pérez"},
		{ID: 2, FirstName: "Ana", LastName: "Gómez"},
	}

	records := RecordsForUsers(users)

	if len(records) != 16 {
		t.Fatalf("got %d records, want 16", len(records))
	}

	// user order preserved, variant order fixed within each user
	if records[0].UserID != 1 || records[8].UserID != 2 {
		t.Fatalf("user order not preserved: %+v", records)
	}

	for i, rec := range records {
		if rec.Variant != Variants[i%len(Variants)] {
			t.Fatalf("record %d variant %q, want %q", i, rec.Variant, Variants[i%len(Variants)])
		}

		if !strings.Contains(rec.Address, "@") {
			t.Fatalf("record %d malformed address %q", i, rec.Address)
		}
	}
}

func TestRecordsForUsersEmpty(t *testing.T) {
	if got := RecordsForUsers(nil); len(got) != 0 {
		t.Fatalf("got %d records for no users", len(got))
	}
}
