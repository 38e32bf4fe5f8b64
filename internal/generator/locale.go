package generator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedCountry is returned when a country name or account_id prefix
// is not one of the supported countries.
var ErrUnsupportedCountry = errors.New("unsupported country")

// Locale holds the fake-data rules for one country.
type Locale struct {
	Country string // e.g. "Germany"
	ISOCode string // e.g. "DE"
	Tag     string // e.g. "de_DE"

	firstNames  []string
	lastNames   []string
	streets     []string
	addressFmt  string // {street} and {number} placeholders
	cities      []string
	states      []string
	postcodeFmt string // '#' is replaced with a digit
	phoneFmt    string // '#' is replaced with a digit
	mailDomains []string
	words       []string
}

// Prefix returns the two-letter account_id prefix for the locale's country.
func (l *Locale) Prefix() string {
	return countryPrefix(l.Country)
}

// Name returns a full owner name.
func (l *Locale) Name(r Rand) string {
	return r.RandomString(l.firstNames) + " " + r.RandomString(l.lastNames)
}

// Email derives a mailbox from the owner name and a local mail domain.
func (l *Locale) Email(r Rand, name string) string {
	local := strings.Join(strings.Fields(strings.ToLower(foldASCII(name))), ".")
	return local + "@" + r.RandomString(l.mailDomains)
}

// Phone returns a phone number in the country's format.
func (l *Locale) Phone(r Rand) string {
	return r.Numerify(l.phoneFmt)
}

// StreetAddress returns a street line with a house number.
func (l *Locale) StreetAddress(r Rand) string {
	addr := strings.ReplaceAll(l.addressFmt, "{street}", r.RandomString(l.streets))
	return strings.ReplaceAll(addr, "{number}", fmt.Sprintf("%d", r.IntRange(1, 199)))
}

// City returns a city.
func (l *Locale) City(r Rand) string {
	return r.RandomString(l.cities)
}

// State returns a state or region.
func (l *Locale) State(r Rand) string {
	return r.RandomString(l.states)
}

// Postcode returns a postal code in the country's format.
func (l *Locale) Postcode(r Rand) string {
	return r.Numerify(l.postcodeFmt)
}

// Text returns a sentence built from the locale vocabulary, at most maxChars
// characters long.
func (l *Locale) Text(r Rand, maxChars int) string {
	var b strings.Builder
	for {
		w := r.RandomString(l.words)
		n := utf8.RuneCountInString(b.String())
		// one rune for the separator, one for the final period
		if n > 0 && n+1+utf8.RuneCountInString(w)+1 > maxChars {
			break
		}
		if n == 0 && utf8.RuneCountInString(w)+1 > maxChars {
			break
		}
		if n > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	return capitalize(b.String()) + "."
}

// Locales is an immutable lookup of supported countries, by name and by
// account_id prefix.
type Locales struct {
	order    []string
	byName   map[string]*Locale
	byPrefix map[string]*Locale
}

// NewLocales builds a lookup from the given locales. Countries keep the order
// in which they are passed.
func NewLocales(locales ...*Locale) (*Locales, error) {
	l := &Locales{
		byName:   make(map[string]*Locale, len(locales)),
		byPrefix: make(map[string]*Locale, len(locales)),
	}
	for _, loc := range locales {
		if _, ok := l.byName[loc.Country]; ok {
			return nil, fmt.Errorf("NewLocales: duplicate country %q", loc.Country)
		}
		if other, ok := l.byPrefix[loc.Prefix()]; ok {
			return nil, fmt.Errorf("NewLocales: %q and %q share account prefix %q", other.Country, loc.Country, loc.Prefix())
		}
		l.order = append(l.order, loc.Country)
		l.byName[loc.Country] = loc
		l.byPrefix[loc.Prefix()] = loc
	}
	return l, nil
}

// Countries returns the supported country names in generation order.
func (l *Locales) Countries() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// ByCountry looks a locale up by country name.
func (l *Locales) ByCountry(country string) (*Locale, error) {
	loc, ok := l.byName[country]
	if !ok {
		return nil, fmt.Errorf("country %q: %w", country, ErrUnsupportedCountry)
	}
	return loc, nil
}

// ByAccountID looks a locale up by the two-letter prefix of an account_id.
func (l *Locales) ByAccountID(accountID string) (*Locale, error) {
	if len(accountID) < 2 {
		return nil, fmt.Errorf("account_id %q: %w", accountID, ErrUnsupportedCountry)
	}
	loc, ok := l.byPrefix[accountID[:2]]
	if !ok {
		return nil, fmt.Errorf("account_id %q: %w", accountID, ErrUnsupportedCountry)
	}
	return loc, nil
}

func countryPrefix(country string) string {
	if len(country) < 2 {
		return strings.ToUpper(country)
	}
	return strings.ToUpper(country[:2])
}

// foldASCII strips diacritics, e.g. "Müller" -> "Muller".
func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
