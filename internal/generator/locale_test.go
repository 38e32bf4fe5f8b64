package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLocales(t *testing.T) {
	locales := DefaultLocales()

	assert.Equal(t, []string{"Germany", "France", "Italy", "Spain", "Portugal"}, locales.Countries())

	prefixes := map[string]string{
		"GE1": "Germany",
		"FR2": "France",
		"IT1": "Italy",
		"SP9": "Spain",
		"PO1": "Portugal",
	}
	for id, country := range prefixes {
		loc, err := locales.ByAccountID(id)
		require.NoError(t, err)
		assert.Equal(t, country, loc.Country)
	}
}

func TestNewLocales_RejectsPrefixCollision(t *testing.T) {
	_, err := NewLocales(&Locale{Country: "Germany"}, &Locale{Country: "Georgia"})
	assert.Error(t, err)
}

func TestLocale_EmailIsASCIIFolded(t *testing.T) {
	loc, err := DefaultLocales().ByCountry("Germany")
	require.NoError(t, err)

	email := loc.Email(NewRand(1), "Jürgen Müller")
	assert.Regexp(t, `^jurgen\.muller@`, email)
}

func TestLocale_TextRespectsLimit(t *testing.T) {
	loc, err := DefaultLocales().ByCountry("Portugal")
	require.NoError(t, err)
	r := NewRand(8)

	for _, limit := range []int{20, 50, 100} {
		text := loc.Text(r, limit)
		assert.LessOrEqual(t, len([]rune(text)), limit)
		assert.Regexp(t, `\.$`, text)
	}
}

func TestFoldASCII(t *testing.T) {
	tests := map[string]string{
		"Élodie Lefèvre":  "Elodie Lefevre",
		"Gonçalo Núñez":   "Goncalo Nunez",
		"Niccolò Ferrari": "Niccolo Ferrari",
		"Anna Koch":       "Anna Koch",
	}
	for in, want := range tests {
		assert.Equal(t, want, foldASCII(in))
	}
}
