// Package location derives a best-effort city and country from free-text venue
// fields. It never falls back to a fixed home country: text with no recognizable
// place yields models.UnknownLocation.
package location

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/event-content-pipeline/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Attribution is the extracted place. City is nil when only the country is known.
type Attribution struct {
	City    *string
	Country string
}

// Known reports whether a country was recognized.
func (a Attribution) Known() bool {
	return a.Country != models.UnknownLocation
}

// CityName returns the city or the unknown sentinel.
func (a Attribution) CityName() string {
	if a.City == nil {
		return models.UnknownLocation
	}
	return *a.City
}

type place struct {
	name    string // canonical name stored on the article
	country string // canonical country; equals name for countries
	pattern *regexp.Regexp
	length  int
}

// Extractor matches venue text against known cities and countries.
type Extractor struct {
	cities    []place
	countries []place
}

// NewExtractor builds an extractor over the built-in gazetteer.
func NewExtractor() *Extractor {
	return NewExtractorWith(defaultCities, defaultCountries)
}

// NewExtractorWith builds an extractor from custom tables. cities maps an alias to
// {canonical city, country}; countries maps an alias to the canonical country.
func NewExtractorWith(cities map[string][2]string, countries map[string]string) *Extractor {
	x := &Extractor{}
	for alias, target := range cities {
		x.cities = append(x.cities, newPlace(alias, target[0], target[1]))
	}
	for alias, country := range countries {
		x.countries = append(x.countries, newPlace(alias, country, country))
	}
	sortPlaces(x.cities)
	sortPlaces(x.countries)
	return x
}

func newPlace(alias, name, country string) place {
	folded := fold(alias)
	return place{
		name:    name,
		country: country,
		pattern: regexp.MustCompile(`(^|[^\pL\pN])` + regexp.QuoteMeta(folded) + `($|[^\pL\pN])`),
		length:  len(folded),
	}
}

// longer aliases first so "abu dhabi" wins over shorter overlapping names
func sortPlaces(places []place) {
	sort.Slice(places, func(i, j int) bool {
		if places[i].length != places[j].length {
			return places[i].length > places[j].length
		}
		return places[i].name < places[j].name
	})
}

// Extract attributes a location to the concatenated venue name and address.
// A city is returned only when it agrees with a named country. Among several named
// countries the one appearing last wins, since the address follows the venue name.
func (x *Extractor) Extract(text string) Attribution {
	folded := fold(text)
	if strings.TrimSpace(folded) == "" {
		return Attribution{Country: models.UnknownLocation}
	}

	countries := matchesOf(x.countries, folded)
	cities := matchesOf(x.cities, folded)

	if len(countries) == 0 {
		if len(cities) == 0 {
			return Attribution{Country: models.UnknownLocation}
		}
		return cityAttribution(cities[0].place)
	}

	for _, country := range countries {
		for _, c := range cities {
			if c.place.country == country.place.name {
				return cityAttribution(c.place)
			}
		}
	}
	return Attribution{Country: countries[0].place.name}
}

type match struct {
	place *place
	end   int // end offset of the last occurrence
}

// matchesOf returns every place found in folded, latest occurrence first.
// Ties keep the longer alias.
func matchesOf(places []place, folded string) []match {
	var out []match
	for i := range places {
		locs := places[i].pattern.FindAllStringIndex(folded, -1)
		if len(locs) == 0 {
			continue
		}
		out = append(out, match{place: &places[i], end: locs[len(locs)-1][1]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].end > out[j].end
	})
	return out
}

func cityAttribution(p *place) Attribution {
	city := p.name
	return Attribution{City: &city, Country: p.country}
}

// fold lowercases and strips diacritics so "Doha" matches "DÔHA".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
