// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package museum

import (
	"regexp"
	"strconv"
	"strings"
)

// movementKeywords are checked against object tags in priority order. The
// first tag containing a keyword wins, title-cased.
var movementKeywords = []string{
	"renaissance",
	"baroque",
	"rococo",
	"neoclassicism",
	"romanticism",
	"realism",
	"impressionism",
	"post-impressionism",
	"expressionism",
	"cubism",
	"surrealism",
	"abstract",
	"modernism",
	"contemporary",
}

// genericCultures are culture values too broad to name a movement.
var genericCultures = map[string]struct{}{
	"american": {},
	"european": {},
	"french":   {},
	"italian":  {},
}

// impressionists and postImpressionists disambiguate the late 19th
// century, where these movements overlap the Realism era and each other.
// The impressionists painted from the 1860s, so their override applies
// before the Realism bucket. Matched against artist last-name tokens.
var impressionists = []string{"monet", "renoir", "degas", "pissarro", "sisley", "morisot", "cassatt"}

var postImpressionists = []string{"van gogh", "cézanne", "gauguin", "seurat", "toulouse-lautrec"}

// yearRe extracts a plausible four-digit year from a free-form object date
// such as "ca. 1503-1519" or "dated 1889". Medieval dates from 1000 on
// are included so the pre-1400 bucket is reachable.
var yearRe = regexp.MustCompile(`\b(1\d{3}|20\d{2})\b`)

// inferMovement derives an art movement for a collection object that does
// not state one. It tries, in order: a specific culture value, movement
// keywords in the object tags, the era implied by the object date, and the
// object classification. Returns "Unknown" when nothing applies.
func inferMovement(obj *metObject) string {
	if culture := strings.TrimSpace(obj.Culture); culture != "" {
		if _, generic := genericCultures[strings.ToLower(culture)]; !generic {
			return culture
		}
	}

	for _, tag := range obj.Tags {
		term := strings.ToLower(tag.Term)
		for _, keyword := range movementKeywords {
			if strings.Contains(term, keyword) {
				return titleCase(keyword)
			}
		}
	}

	if m := yearRe.FindString(obj.ObjectDate); m != "" {
		year, _ := strconv.Atoi(m)
		return movementForYear(year, obj.ArtistDisplayName)
	}

	if classification := strings.TrimSpace(obj.Classification); classification != "" {
		return classification
	}
	return "Unknown"
}

// movementForYear buckets a year into the movement dominant at the time.
// The late 19th century is split by artist, since Realism, Impressionism
// and Post-Impressionism ran concurrently: a known impressionist painting
// in 1870 is Impressionism, not Realism.
func movementForYear(year int, artist string) string {
	switch {
	case year < 1400:
		return "Medieval"
	case year < 1600:
		return "Renaissance"
	case year < 1750:
		return "Baroque"
	case year < 1800:
		return "Neoclassicism"
	case year < 1850:
		return "Romanticism"
	case year < 1880:
		if matchesArtist(artist, impressionists) {
			return "Impressionism"
		}
		return "Realism"
	case year < 1905:
		if matchesArtist(artist, impressionists) {
			return "Impressionism"
		}
		if matchesArtist(artist, postImpressionists) {
			return "Post-Impressionism"
		}
		return "Late 19th Century"
	case year < 1920:
		return "Early Modernism"
	case year < 1945:
		return "Modernism"
	case year < 1970:
		return "Post-War Art"
	case year < 2000:
		return "Contemporary"
	default:
		return "21st Century"
	}
}

// matchesArtist reports whether the artist name contains any of the
// given last-name tokens.
func matchesArtist(artist string, names []string) bool {
	lower := strings.ToLower(artist)
	for _, name := range names {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

// titleCase uppercases the first letter of each hyphen- or space-separated
// word. Movement keywords are ASCII so a byte-level transform is safe.
func titleCase(s string) string {
	b := []byte(s)
	upper := true
	for i, c := range b {
		if upper && c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
		upper = c == ' ' || c == '-'
	}
	return string(b)
}
