// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package vision

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/models"
)

// jsonArrayRe extracts the outermost [...] from a response. Dot matches
// newline.
var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// Generator produces educational content about artworks. Every method has
// a deterministic static fallback used when no API key is configured or
// the AI call or parse fails.
type Generator struct {
	client Completer
}

// NewGenerator creates a content generator over the given completer.
func NewGenerator(client Completer) *Generator {
	return &Generator{client: client}
}

// GenerateDescription returns a 200-300 word educational description.
func (g *Generator) GenerateDescription(ctx context.Context, artwork *models.Artwork) string {
	if g.client.Enabled() {
		prompt := fmt.Sprintf(`Generate a 200-300 word educational description for the following artwork:

Title: %s
Artist: %s
Year: %s
Movement: %s

The description should:
- Explain the artwork's historical and cultural context
- Describe color symbolism and artistic techniques
- Discuss the artist's emotional intent
- Use friendly, inspiring language suitable for high school students
- Include fascinating details that make the artwork memorable
- Be engaging and encourage deeper appreciation of art`,
			artwork.Title, artwork.Artist, artwork.Year, artwork.Movement)

		content, err := g.client.Complete(ctx, CompletionRequest{
			Operation: "describe",
			Messages: []Message{
				{Role: "system", Content: "You are an engaging art history teacher who makes art accessible and exciting for students."},
				{Role: "user", Content: prompt},
			},
			MaxTokens:   500,
			Temperature: 0.7,
		})
		if err == nil && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
		if err != nil {
			logging.Warn().Err(err).Str("artwork", artwork.Title).Msg("Description generation failed, using fallback")
		}
	}

	return staticDescription(artwork)
}

// GenerateArtistInfo returns a structured artist biography.
func (g *Generator) GenerateArtistInfo(ctx context.Context, artwork *models.Artwork) *models.ArtistInfo {
	if g.client.Enabled() {
		prompt := fmt.Sprintf(`Generate comprehensive information about the artist who created this artwork:

Title: %s
Artist: %s
Year: %s
Movement: %s

Please provide a detailed JSON response with the following structure:
{
    "name": "Full artist name",
    "birth_year": "Birth year or null",
    "death_year": "Death year or null if still alive",
    "nationality": "Nationality",
    "biography": "Comprehensive 300-400 word biography covering their life, artistic journey, challenges, and impact on art history",
    "style": "Detailed description of their artistic style, techniques, and unique characteristics (150-200 words)",
    "notable_works": ["List of 4-6 most famous artworks"],
    "influences": "Description of what influenced the artist and their legacy (100-150 words)"
}

Make the content engaging, educational, and suitable for high school students.`,
			artwork.Title, artwork.Artist, artwork.Year, artwork.Movement)

		content, err := g.client.Complete(ctx, CompletionRequest{
			Operation: "artist_info",
			Messages: []Message{
				{Role: "system", Content: "You are a knowledgeable art historian who creates engaging, accurate artist biographies. Respond only with valid JSON."},
				{Role: "user", Content: prompt},
			},
			MaxTokens:   1500,
			Temperature: 0.7,
		})
		if err == nil {
			if info := parseArtistInfo(content); info != nil {
				return info
			}
		} else {
			logging.Warn().Err(err).Str("artist", artwork.Artist).Msg("Artist info generation failed, using fallback")
		}
	}

	return staticArtistInfo(artwork)
}

// parseArtistInfo decodes an artist info JSON object, repairing wrapped
// output. Returns nil when the payload is unusable.
func parseArtistInfo(content string) *models.ArtistInfo {
	text := strings.TrimSpace(content)

	var info models.ArtistInfo
	if err := json.Unmarshal([]byte(text), &info); err != nil {
		match := jsonObjectRe.FindString(text)
		if match == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(match), &info); err != nil {
			return nil
		}
	}

	if info.Name == "" || info.Biography == "" {
		return nil
	}
	return &info
}

// Chat generates a conversational reply in the artist's voice. The last
// six history entries are threaded into the prompt for context.
func (g *Generator) Chat(ctx context.Context, artwork *models.Artwork, userMessage string, history []models.ChatMessage) string {
	if g.client.Enabled() {
		systemPrompt := fmt.Sprintf(`You are %s, the creator of "%s".
You speak with passion, emotion, and curiosity about your work.
Respond to students in short, vivid language (60-100 words).
Share insights about your artistic process, inspiration, and the meaning behind your work.
Be engaging, educational, and stay in character.
Encourage students to think deeply about art.`, artwork.Artist, artwork.Title)

		messages := []Message{{Role: "system", Content: systemPrompt}}

		recent := history
		if len(recent) > 6 {
			recent = recent[len(recent)-6:]
		}
		for _, entry := range recent {
			messages = append(messages, Message{Role: entry.Role, Content: entry.Content})
		}
		messages = append(messages, Message{Role: "user", Content: userMessage})

		content, err := g.client.Complete(ctx, CompletionRequest{
			Operation:   "chat",
			Messages:    messages,
			MaxTokens:   150,
			Temperature: 0.8,
		})
		if err == nil && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
		if err != nil {
			logging.Warn().Err(err).Str("artwork", artwork.Title).Msg("Chat generation failed, using fallback")
		}
	}

	return staticChatReply(artwork, len(history))
}

// GenerateQuiz returns exactly five multiple-choice questions. Malformed
// model output degrades to the fixed template quiz.
func (g *Generator) GenerateQuiz(ctx context.Context, artwork *models.Artwork) []models.QuizQuestion {
	if g.client.Enabled() {
		prompt := fmt.Sprintf(`Generate 5 multiple-choice quiz questions about this artwork:

Title: %s
Artist: %s
Year: %s
Movement: %s

Include varied question types:
1. Factual (artist, year, movement)
2. Visual details and composition
3. Artistic techniques and style
4. Interpretation and meaning
5. Historical context

Return ONLY a valid JSON array (no markdown, no code blocks) with this exact format:
[
  {
    "question": "question text",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct_answer": 0,
    "explanation": "brief explanation of correct answer"
  }
]

Make questions engaging and educational for high school students.`,
			artwork.Title, artwork.Artist, artwork.Year, artwork.Movement)

		content, err := g.client.Complete(ctx, CompletionRequest{
			Operation: "quiz",
			Messages: []Message{
				{Role: "system", Content: "You are an art education expert. Return only valid JSON arrays."},
				{Role: "user", Content: prompt},
			},
			MaxTokens:   1000,
			Temperature: 0.7,
		})
		if err == nil {
			if questions := parseQuiz(content); questions != nil {
				return questions
			}
		} else {
			logging.Warn().Err(err).Str("artwork", artwork.Title).Msg("Quiz generation failed, using fallback")
		}
	}

	return FallbackQuiz(artwork)
}

// parseQuiz decodes quiz questions from model output: markdown fences are
// stripped, a {"questions": [...]} wrapper is unwrapped, and anything that
// does not yield five well-formed questions returns nil.
func parseQuiz(content string) []models.QuizQuestion {
	text := stripMarkdownFences(strings.TrimSpace(content))

	var questions []models.QuizQuestion
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		// Maybe wrapped in {"questions": [...]}
		var wrapper struct {
			Questions []models.QuizQuestion `json:"questions"`
		}
		if err := json.Unmarshal([]byte(text), &wrapper); err != nil || len(wrapper.Questions) == 0 {
			return nil
		}
		questions = wrapper.Questions
	}

	if len(questions) < 5 {
		return nil
	}
	questions = questions[:5]

	for _, q := range questions {
		if q.Question == "" || len(q.Options) != 4 {
			return nil
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil
		}
	}

	return questions
}

// stripMarkdownFences removes a leading ```/```json fence pair.
func stripMarkdownFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	parts := strings.SplitN(text, "```", 3)
	if len(parts) < 2 {
		return text
	}
	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}

// RelatedContext carries AI-suggested related artworks plus surrounding
// historical narrative.
type RelatedContext struct {
	SimilarArtworks     []models.RelatedArtwork
	ContemporaryArtists []string
	HistoricalContext   string
}

// rawRelatedContent mirrors the JSON structure the model is asked for.
type rawRelatedContent struct {
	SimilarArtworks []struct {
		Title      string      `json:"title"`
		Artist     string      `json:"artist"`
		Year       interface{} `json:"year"`
		Similarity string      `json:"similarity"`
	} `json:"similar_artworks"`
	ContemporaryArtists []struct {
		Name        string `json:"name"`
		Years       string `json:"years"`
		Movement    string `json:"movement"`
		NotableWork string `json:"notable_work"`
		Connection  string `json:"connection"`
	} `json:"contemporary_artists"`
	HistoricalContext struct {
		TimePeriod  string `json:"time_period"`
		ArtMovement string `json:"art_movement"`
		ArtistStory string `json:"artist_story"`
	} `json:"historical_context"`
}

// RelatedContent returns AI-suggested similar artworks, contemporary
// artists, and historical context for an artwork.
func (g *Generator) RelatedContent(ctx context.Context, artwork *models.Artwork) *RelatedContext {
	if g.client.Enabled() {
		prompt := fmt.Sprintf(`You are an art historian. Provide context about "%s" by %s (%s).

Return a JSON object with this EXACT structure:
{
    "similar_artworks": [
        {
            "title": "Artwork name",
            "artist": "Artist name",
            "year": "Year or range",
            "similarity": "Why it's similar (one sentence)"
        }
    ],
    "contemporary_artists": [
        {
            "name": "Artist name",
            "years": "Birth-death years",
            "movement": "Art movement",
            "notable_work": "Famous artwork",
            "connection": "How they relate to %s (one sentence)"
        }
    ],
    "historical_context": {
        "time_period": "Brief description of the era (40-60 words)",
        "art_movement": "Description of %s (40-60 words)",
        "artist_story": "Brief story about %s's life and influence (60-80 words)"
    }
}

Provide 3-4 similar artworks and 3-4 contemporary artists.
Return ONLY valid JSON, no extra text.`,
			artwork.Title, artwork.Artist, artwork.Year, artwork.Artist, artwork.Movement, artwork.Artist)

		content, err := g.client.Complete(ctx, CompletionRequest{
			Operation: "related",
			Messages: []Message{
				{Role: "system", Content: "You are an expert art historian. Always respond with valid JSON."},
				{Role: "user", Content: prompt},
			},
			MaxTokens:   1500,
			Temperature: 0.7,
		})
		if err == nil {
			if parsed := parseRelatedContent(content); parsed != nil {
				return parsed
			}
		} else {
			logging.Warn().Err(err).Str("artwork", artwork.Title).Msg("Related content generation failed, using fallback")
		}
	}

	return staticRelatedContext(artwork)
}

func parseRelatedContent(content string) *RelatedContext {
	match := jsonObjectRe.FindString(strings.TrimSpace(content))
	if match == "" {
		return nil
	}

	var raw rawRelatedContent
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil
	}
	if len(raw.SimilarArtworks) == 0 {
		return nil
	}

	result := &RelatedContext{}
	for _, entry := range raw.SimilarArtworks {
		result.SimilarArtworks = append(result.SimilarArtworks, models.RelatedArtwork{
			Title:       entry.Title,
			Artist:      entry.Artist,
			Year:        normalizeYear(entry.Year),
			Source:      "ai",
			Explanation: entry.Similarity,
		})
	}
	for _, artist := range raw.ContemporaryArtists {
		result.ContemporaryArtists = append(result.ContemporaryArtists, formatContemporaryArtist(
			artist.Name, artist.Years, artist.Movement, artist.NotableWork, artist.Connection))
	}
	result.HistoricalContext = joinContextSections(
		raw.HistoricalContext.TimePeriod,
		raw.HistoricalContext.ArtMovement,
		raw.HistoricalContext.ArtistStory,
	)

	return result
}

func formatContemporaryArtist(name, years, movement, notableWork, connection string) string {
	var b strings.Builder
	b.WriteString(name)
	if years != "" {
		fmt.Fprintf(&b, " (%s)", years)
	}
	if movement != "" {
		fmt.Fprintf(&b, ", %s", movement)
	}
	if notableWork != "" {
		fmt.Fprintf(&b, ". Notable work: %s", notableWork)
	}
	if connection != "" {
		fmt.Fprintf(&b, ". %s", connection)
	}
	return b.String()
}

func joinContextSections(sections ...string) string {
	var nonEmpty []string
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(s))
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

// SimilarityExplanations attaches a one-sentence explanation to each
// related artwork. Explanations from the model are matched to entries by
// case-insensitive title containment; unmatched entries get a default.
func (g *Generator) SimilarityExplanations(ctx context.Context, artwork *models.Artwork, related []models.RelatedArtwork) []models.RelatedArtwork {
	if !g.client.Enabled() || len(related) == 0 {
		return applyDefaultExplanations(related, defaultSimilarStyle)
	}

	var list strings.Builder
	for _, art := range related {
		fmt.Fprintf(&list, "- '%s' by %s (%s)\n", art.Title, art.Artist, art.Year)
	}

	prompt := fmt.Sprintf(`You are an art historian. Explain why these artworks are similar to "%s" by %s.

Current artwork: "%s" by %s (%s)
Movement: %s

Related artworks to explain:
%s
For each artwork, write ONE sentence (15-25 words) explaining its similarity or connection.
Return a JSON array with this structure:
[
    {"title": "Artwork 1", "similarity": "One sentence explanation"}
]

Return ONLY valid JSON, no extra text.`,
		artwork.Title, artwork.Artist, artwork.Title, artwork.Artist, artwork.Year,
		movementOrUnknown(artwork.Movement), list.String())

	content, err := g.client.Complete(ctx, CompletionRequest{
		Operation: "similarity",
		Messages: []Message{
			{Role: "system", Content: "You are an expert art historian. Always respond with valid JSON."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		logging.Warn().Err(err).Str("artwork", artwork.Title).Msg("Similarity explanation failed, using defaults")
		return applyDefaultExplanations(related, defaultSimilarStyle)
	}

	match := jsonArrayRe.FindString(strings.TrimSpace(content))
	if match == "" {
		return applyDefaultExplanations(related, defaultSimilarStyle)
	}

	var explanations []struct {
		Title      string `json:"title"`
		Similarity string `json:"similarity"`
	}
	if err := json.Unmarshal([]byte(match), &explanations); err != nil {
		return applyDefaultExplanations(related, defaultSimilarStyle)
	}

	for i := range related {
		for _, exp := range explanations {
			if exp.Title != "" && strings.Contains(
				strings.ToLower(related[i].Title), strings.ToLower(exp.Title)) {
				related[i].Explanation = exp.Similarity
				break
			}
		}
		if related[i].Explanation == "" {
			related[i].Explanation = defaultRelatedBy(related[i].Artist)
		}
	}

	return related
}

func movementOrUnknown(movement string) string {
	if movement == "" {
		return "Unknown"
	}
	return movement
}

func applyDefaultExplanations(related []models.RelatedArtwork, def func(artist string) string) []models.RelatedArtwork {
	for i := range related {
		if related[i].Explanation == "" {
			related[i].Explanation = def(related[i].Artist)
		}
	}
	return related
}

func defaultSimilarStyle(artist string) string {
	if artist == "" {
		artist = "a related artist"
	}
	return fmt.Sprintf("Created by %s in a similar style", artist)
}

func defaultRelatedBy(artist string) string {
	if artist == "" {
		artist = "a similar artist"
	}
	return fmt.Sprintf("Related artwork by %s", artist)
}
