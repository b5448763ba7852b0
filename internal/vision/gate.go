// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/metrics"
	"github.com/atelierhq/atelier/internal/models"
)

// minConfidence is the acceptance threshold for a claimed recognition.
const minConfidence = 0.7

// recognitionPrompt instructs the model to answer with a single JSON object
// and to reject anything that is not a famous museum artwork.
const recognitionPrompt = `You are an expert art historian. Analyze this image VERY CAREFULLY.

CRITICAL RULES:
1. If this is a PHOTOGRAPH of a person (selfie, portrait, etc.) -> Return success: false
2. If this is NOT a painting/sculpture/famous artwork -> Return success: false
3. If this is a digital image/screenshot/random photo -> Return success: false
4. ONLY return success: true if you are 100% certain this is a FAMOUS artwork in a museum

SUCCESS RESPONSE (only for famous museum artworks you can identify):
{
    "success": true,
    "title": "The Starry Night",
    "artist": "Vincent van Gogh",
    "year": 1889,
    "movement": "Post-Impressionism",
    "description": "A swirling night sky over a French village",
    "museum": "Museum of Modern Art, New York",
    "confidence": 0.95
}

FAILURE RESPONSE (for selfies, photos of people, random images, non-artwork):
{
    "success": false,
    "message": "This appears to be a photograph or image, not a famous artwork.",
    "is_artwork": false,
    "suggestions": ["Try uploading a photo of a famous painting"]
}

FAILURE RESPONSE (for unclear artwork or artwork you cannot identify):
{
    "success": false,
    "message": "This may be artwork, but I cannot identify it as a famous piece with confidence.",
    "is_artwork": true,
    "suggestions": ["Try a clearer photo with better lighting"]
}

BE EXTREMELY STRICT. If there is ANY doubt, return success: false.

IMPORTANT: Respond with ONLY the JSON object. Do not include any explanatory text before or after the JSON. Start your response with { and end with }.`

var (
	// jsonObjectRe extracts the outermost {...} from a response that wraps
	// the JSON in prose. Dot matches newline.
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

	// whitespaceRe collapses whitespace runs after newline replacement.
	whitespaceRe = regexp.MustCompile(`\s+`)

	// yearRangeRe repairs unquoted year ranges: "year": 1908-1912 is not
	// valid JSON; a single 4-digit year stays numeric.
	yearRangeRe = regexp.MustCompile(`"year":\s*(\d{4})-(\d{4})`)
)

// Recognizer is the artwork recognition gate. It never returns an error:
// every failure mode degrades to a RecognitionResult with guidance.
type Recognizer struct {
	client Completer
}

// NewRecognizer creates a recognition gate over the given completer.
func NewRecognizer(client Completer) *Recognizer {
	return &Recognizer{client: client}
}

// Recognize sends the image to the vision model and gates the response.
func (r *Recognizer) Recognize(ctx context.Context, imageData []byte) *models.RecognitionResult {
	if !r.client.Enabled() {
		return &models.RecognitionResult{
			Success:   false,
			IsArtwork: false,
			Message:   "Artwork recognition is not configured on this server.",
			Suggestions: []string{
				"Ask the administrator to configure a vision API key",
			},
		}
	}

	encoded := base64.StdEncoding.EncodeToString(imageData)

	content, err := r.client.Complete(ctx, CompletionRequest{
		Operation: "recognize",
		Messages: []Message{
			{
				Role: "user",
				Content: []ContentPart{
					{Type: "text", Text: recognitionPrompt},
					{Type: "image_url", ImageURL: &ImageURL{
						URL: "data:image/jpeg;base64," + encoded,
					}},
				},
			},
		},
		MaxTokens:   500,
		Temperature: 0.1,
	})
	if err != nil {
		logging.Warn().Err(err).Msg("Vision recognition call failed")
		return &models.RecognitionResult{
			Success:   false,
			IsArtwork: false,
			Message:   fmt.Sprintf("Recognition error: %v", err),
			Suggestions: []string{
				"Try uploading the image again",
			},
		}
	}

	result := ParseRecognition(content)
	if result.Success {
		metrics.RecognitionConfidence.Observe(result.Confidence)
	}
	return result
}

// rawRecognition is the tolerant wire shape of a model response. Year is
// left untyped because models emit both 1889 and "1908-1912".
type rawRecognition struct {
	Success     bool        `json:"success"`
	IsArtwork   *bool       `json:"is_artwork"`
	Title       string      `json:"title"`
	Artist      string      `json:"artist"`
	Year        interface{} `json:"year"`
	Movement    string      `json:"movement"`
	Museum      string      `json:"museum"`
	Description string      `json:"description"`
	Confidence  float64     `json:"confidence"`
	Message     string      `json:"message"`
	Suggestions []string    `json:"suggestions"`
}

// ParseRecognition turns raw model output into a gated RecognitionResult:
// parse, repair if needed, then demote incomplete or low-confidence claims.
func ParseRecognition(text string) *models.RecognitionResult {
	text = strings.TrimSpace(text)

	var raw rawRecognition
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		repaired, ok := repairJSON(text)
		if !ok {
			return &models.RecognitionResult{
				Success:   false,
				IsArtwork: false,
				Message:   "Could not parse the recognition result. Please try again with a clearer image.",
				Suggestions: []string{
					"Try uploading the image again",
					"Make sure the image is clear and well-lit",
					"Try a different famous artwork",
				},
			}
		}
		if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
			return &models.RecognitionResult{
				Success:   false,
				IsArtwork: false,
				Message:   "Could not parse the recognition result. Please try again with a clearer image.",
				Suggestions: []string{
					"Try uploading the image again",
					"Make sure the image is clear and well-lit",
					"Try a different famous artwork",
				},
			}
		}
	}

	isArtwork := raw.Success // success implies artwork unless stated
	if raw.IsArtwork != nil {
		isArtwork = *raw.IsArtwork
	}

	if !raw.Success {
		result := &models.RecognitionResult{
			Success:     false,
			IsArtwork:   isArtwork,
			Message:     raw.Message,
			Suggestions: raw.Suggestions,
		}
		if result.Message == "" {
			result.Message = "Could not identify this as a famous artwork."
		}
		return result
	}

	// Demote claimed successes missing required fields.
	if raw.Title == "" || raw.Artist == "" {
		return &models.RecognitionResult{
			Success:   false,
			IsArtwork: false,
			Message:   "Could not identify this as a famous artwork.",
			Suggestions: []string{
				"Try uploading a photo of a famous painting",
				"Make sure the image shows a clear view of museum artwork",
			},
		}
	}

	// Demote low-confidence claims.
	if raw.Confidence < minConfidence {
		return &models.RecognitionResult{
			Success:   false,
			IsArtwork: true,
			Message:   "Low confidence in recognition. This may not be a famous artwork.",
			Suggestions: []string{
				"Try a clearer photo",
				"Make sure it's a famous artwork from a major museum",
				"Ensure good lighting without glare",
			},
		}
	}

	return &models.RecognitionResult{
		Success:     true,
		IsArtwork:   true,
		Title:       raw.Title,
		Artist:      raw.Artist,
		Year:        normalizeYear(raw.Year),
		Movement:    raw.Movement,
		Museum:      raw.Museum,
		Description: raw.Description,
		Confidence:  raw.Confidence,
	}
}

// repairJSON extracts and cleans the outermost JSON object from model
// output that wraps it in prose or mildly malformed syntax.
func repairJSON(text string) (string, bool) {
	match := jsonObjectRe.FindString(text)
	if match == "" {
		return "", false
	}

	repaired := strings.ReplaceAll(match, "\n", " ")
	repaired = whitespaceRe.ReplaceAllString(repaired, " ")
	repaired = yearRangeRe.ReplaceAllString(repaired, `"year": "$1-$2"`)

	return repaired, true
}

// normalizeYear renders the untyped year field as a string. JSON numbers
// decode as float64.
func normalizeYear(year interface{}) string {
	switch v := year.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.Itoa(int(v))
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
