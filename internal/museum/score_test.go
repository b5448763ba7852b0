// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package museum

import "testing"

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name       string
		objTitle   string
		objArtist  string
		wantTitle  string
		wantArtist string
		want       int
	}{
		{
			name:       "exact title and artist",
			objTitle:   "The Starry Night",
			objArtist:  "Vincent van Gogh",
			wantTitle:  "the starry night",
			wantArtist: "vincent van gogh",
			want:       20,
		},
		{
			name:       "strong partial title exact artist",
			objTitle:   "Water Lilies, 1916",
			objArtist:  "Claude Monet",
			wantTitle:  "Water Lilies",
			wantArtist: "Claude Monet",
			want:       15,
		},
		{
			name:       "weak partial title",
			objTitle:   "Study for the central figure of Liberty Leading the People with annotations",
			objArtist:  "Eugène Delacroix",
			wantTitle:  "Liberty",
			wantArtist: "Eugène Delacroix",
			want:       11,
		},
		{
			name:       "object title inside query",
			objTitle:   "Sunflowers",
			objArtist:  "Vincent van Gogh",
			wantTitle:  "Sunflowers in a Vase",
			wantArtist: "Vincent van Gogh",
			want:       13,
		},
		{
			name:       "artist containment",
			objTitle:   "Self-Portrait",
			objArtist:  "Rembrandt (Rembrandt van Rijn)",
			wantTitle:  "Self-Portrait",
			wantArtist: "Rembrandt",
			want:       15,
		},
		{
			name:       "last name only",
			objTitle:   "Impression, Sunrise",
			objArtist:  "Oscar-Claude Monet",
			wantTitle:  "Impression, Sunrise",
			wantArtist: "C. Monet",
			want:       13,
		},
		{
			name:       "title match alone misses threshold",
			objTitle:   "The Kiss",
			objArtist:  "Auguste Rodin",
			wantTitle:  "The Kiss",
			wantArtist: "Gustav Klimt",
			want:       10,
		},
		{
			name:       "no overlap",
			objTitle:   "Bridge over a Pond",
			objArtist:  "Unknown Artist",
			wantTitle:  "Mona Lisa",
			wantArtist: "Leonardo da Vinci",
			want:       0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchScore(tt.objTitle, tt.objArtist, tt.wantTitle, tt.wantArtist)
			if got != tt.want {
				t.Errorf("matchScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMatchThreshold(t *testing.T) {
	// A candidate agreeing only on title scores 10 and passes; agreeing only
	// on a last name scores 3 and fails. Both fields must contribute for
	// partial matches to clear the threshold.
	score := matchScore("Water Lilies", "Claude Monet", "Water Lilies", "Claude Monet")
	if score < matchThreshold {
		t.Errorf("full match score %d below threshold %d", score, matchThreshold)
	}
	score = matchScore("Unrelated Work", "Claude Monet", "Water Lilies", "Édouard Monet")
	if score >= matchThreshold {
		t.Errorf("artist-only last-name score %d should not reach threshold %d", score, matchThreshold)
	}
}
