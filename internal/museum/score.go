// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package museum

import "strings"

// matchThreshold is the minimum candidate score accepted as a verified
// match. A full title or artist match alone is not enough; the candidate
// must agree on both fields to clear it.
const matchThreshold = 8

// matchScore scores a collection object against the requested title and
// artist. Titles and artists compare case-insensitively. Partial title
// containment is weighted by how much of the object title the query covers,
// so "Water Lilies" scores higher against "Water Lilies" than against
// "Water Lilies and Japanese Bridge in the Rain".
func matchScore(objTitle, objArtist, wantTitle, wantArtist string) int {
	objTitle = strings.ToLower(strings.TrimSpace(objTitle))
	objArtist = strings.ToLower(strings.TrimSpace(objArtist))
	wantTitle = strings.ToLower(strings.TrimSpace(wantTitle))
	wantArtist = strings.ToLower(strings.TrimSpace(wantArtist))

	score := 0

	switch {
	case wantTitle != "" && objTitle == wantTitle:
		score += 10
	case wantTitle != "" && strings.Contains(objTitle, wantTitle):
		if float64(len(wantTitle))/float64(len(objTitle)) > 0.5 {
			score += 5
		} else {
			score++
		}
	case objTitle != "" && strings.Contains(wantTitle, objTitle):
		score += 3
	}

	switch {
	case wantArtist != "" && objArtist == wantArtist:
		score += 10
	case wantArtist != "" && objArtist != "" &&
		(strings.Contains(objArtist, wantArtist) || strings.Contains(wantArtist, objArtist)):
		score += 5
	case lastName(objArtist) != "" && lastName(objArtist) == lastName(wantArtist):
		score += 3
	}

	return score
}

// lastName returns the final space-separated token of a lowercased name.
func lastName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
