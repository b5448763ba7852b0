// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package vision

import (
	"fmt"

	"github.com/atelierhq/atelier/internal/models"
)

// Static fallback content used when no AI client is configured or a call
// fails. Canonical artworks and artists have curated entries; everything
// else gets a deterministic template.

var staticDescriptions = map[string]string{
	"The Starry Night": `Vincent van Gogh painted "The Starry Night" in 1889 while staying at an asylum in Saint-Remy-de-Provence, France. This iconic masterpiece captures a swirling night sky ablaze with movement and emotion, reflecting van Gogh's turbulent inner world.

The painting features bold, expressive brushstrokes that create a sense of motion and energy. The cypress tree in the foreground reaches toward the sky like a dark flame, symbolizing the connection between earth and heaven. The village below remains peaceful and still, contrasting with the dynamic cosmos above.

Van Gogh used vivid blues and yellows to create dramatic contrast and emotional intensity. The swirling patterns in the sky suggest both beauty and chaos, reflecting the artist's struggle with mental illness while celebrating the wonder of nature.

This Post-Impressionist work broke traditional rules of perspective and color, paving the way for modern art. Van Gogh painted from memory and imagination rather than direct observation, infusing the scene with his unique vision and passion. Today, it remains one of the most recognized and beloved paintings in the world.`,

	"Mona Lisa": `Leonardo da Vinci's "Mona Lisa," painted between 1503-1519, is arguably the world's most famous painting. This Renaissance masterpiece portrays Lisa Gherardini, a Florentine merchant's wife, with an enigmatic expression that has captivated viewers for centuries.

Da Vinci employed sfumato, a technique of subtle gradations between colors without harsh outlines, creating an almost ethereal quality. The painting's mysterious smile seems to change depending on where you look, a result of Leonardo's understanding of optics and human perception.

The background landscape features winding paths and distant mountains, painted in atmospheric perspective that adds depth and mystery. Leonardo worked on this portrait for years, continuously refining it and considering it his favorite work.

The Mona Lisa revolutionized portraiture by depicting the subject in a three-quarter view with hands visible, creating a more intimate and lifelike representation. Her direct gaze engages viewers, making them feel personally connected to the painting across five centuries.`,
}

// staticDescription returns the curated description for canonical artworks
// or a deterministic template for everything else.
func staticDescription(artwork *models.Artwork) string {
	if desc, ok := staticDescriptions[artwork.Title]; ok {
		return desc
	}

	return fmt.Sprintf(`"%s" by %s is a remarkable example of %s art created in %s. This masterpiece showcases the artist's unique vision and technical mastery.

The composition demonstrates careful attention to form, color, and meaning. The artist employed techniques characteristic of the %s movement, which emphasized innovation and emotional expression in visual art.

This work invites viewers to contemplate its deeper meanings and appreciate the artistic decisions that make it memorable. The painting's cultural impact extends beyond its era, continuing to inspire and engage audiences today.

Understanding this artwork helps us appreciate how art reflects and shapes human experience across time and cultures.`,
		artwork.Title, artwork.Artist, movementOrUnknown(artwork.Movement), artwork.Year, movementOrUnknown(artwork.Movement))
}

var staticArtists = map[string]*models.ArtistInfo{
	"Vincent van Gogh": {
		Name:        "Vincent van Gogh",
		BirthYear:   "1853",
		DeathYear:   "1890",
		Nationality: "Dutch",
		Biography: `Vincent Willem van Gogh was born in 1853 in the Netherlands and became one of the most influential figures in Western art history, despite selling only one painting during his lifetime. His journey into art began relatively late at age 27, after unsuccessful careers as an art dealer and missionary.

Van Gogh struggled with mental illness throughout his adult life, experiencing severe depression and psychotic episodes. These challenges deeply influenced his work, infusing his paintings with raw emotion and intensity. He spent time in psychiatric hospitals, including the asylum in Saint-Remy where he created many masterpieces.

His artistic career lasted only a decade (1880-1890), but during this time he produced over 2,100 artworks, including around 860 oil paintings. Van Gogh developed a unique style characterized by bold colors, emotional honesty, and dramatic brushwork that laid the groundwork for Expressionism.

Tragically, Van Gogh died at 37 from a gunshot wound, likely self-inflicted. His brother Theo was his greatest supporter, both emotionally and financially. Today, Van Gogh's work sells for millions and his story of perseverance through adversity inspires artists worldwide.`,
		Style: `Van Gogh's style evolved from dark, earthy tones to the vibrant, expressive palette he's famous for today. He employed thick, visible brushstrokes (impasto technique) that created texture and movement, making his paintings come alive with energy.

His use of color was revolutionary: he used complementary colors (like blue and orange) to create vibrancy and emotional intensity. Swirling, dynamic compositions characterized his later work, expressing psychological turbulence and spiritual transcendence.

Van Gogh was influenced by Japanese woodblock prints, which inspired his bold outlines and flat color areas. He often painted outdoors (en plein air) to capture the changing light and atmosphere, working quickly to preserve spontaneity and emotion.`,
		NotableWorks: []string{
			"The Starry Night (1889)",
			"Sunflowers (1888)",
			"Cafe Terrace at Night (1888)",
			"The Bedroom (1888)",
			"Irises (1889)",
			"Wheatfield with Crows (1890)",
		},
		Influences: `Van Gogh was profoundly influenced by French Impressionists like Claude Monet, Japanese ukiyo-e prints, and the peasant paintings of Jean-Francois Millet. His emotional intensity and expressive use of color directly inspired the Fauvists and German Expressionists.

His legacy extends beyond painting: his letters to his brother Theo provide invaluable insights into the creative process. Van Gogh proved that art could express the deepest human emotions, making him a symbol of the transformative power of perseverance.`,
	},
	"Leonardo da Vinci": {
		Name:        "Leonardo da Vinci",
		BirthYear:   "1452",
		DeathYear:   "1519",
		Nationality: "Italian",
		Biography: `Leonardo da Vinci, born in 1452 in Vinci, Italy, epitomizes the Renaissance ideal of the "universal man", excelling as a painter, scientist, engineer, and inventor. Apprenticed to the artist Verrocchio in Florence, Leonardo's talent quickly surpassed his master's.

Throughout his life, Leonardo served various patrons including the Medici family, Ludovico Sforza of Milan, and King Francis I of France. His insatiable curiosity led him to study anatomy, engineering, geology, and botany, filling thousands of notebook pages with observations and inventions centuries ahead of their time.

Despite his genius, Leonardo was notoriously slow to complete paintings, often leaving works unfinished as new ideas captured his attention. He spent his final years in France as a guest of King Francis I, continuing his scientific studies until his death in 1519.

His influence on art and science remains unparalleled. Leonardo's systematic approach to studying nature and his integration of art and science established new standards that still inspire today.`,
		Style: `Leonardo pioneered sfumato, a technique of subtle, almost imperceptible transitions between colors and tones, creating soft, atmospheric effects. This gave his portraits an unprecedented lifelike quality and psychological depth.

His mastery of perspective, anatomy, and light was unmatched. Leonardo studied human corpses to understand muscle structure, bone placement, and movement, enabling him to depict the human form with scientific accuracy infused with grace and beauty.

He emphasized the importance of observing nature directly, sketching from life to capture authentic detail. His paintings demonstrate perfect balance between realism and idealization, making them eternally captivating.`,
		NotableWorks: []string{
			"Mona Lisa (1503-1519)",
			"The Last Supper (1495-1498)",
			"Vitruvian Man (1490)",
			"Lady with an Ermine (1489-1491)",
			"The Virgin of the Rocks (1483-1486)",
			"Salvator Mundi (c. 1500)",
		},
		Influences: `Leonardo was influenced by his teacher Verrocchio, ancient Roman art, and the mathematical principles of perspective developed by Brunelleschi. His scientific method and artistic innovations profoundly influenced High Renaissance masters like Raphael and Michelangelo.

His notebooks, containing revolutionary concepts for flying machines, hydraulics, and anatomy, demonstrated the power of observational science. Leonardo showed that art and science are inseparable, establishing a legacy that continues to inspire interdisciplinary thinking.`,
	},
}

// staticArtistInfo returns the curated biography for canonical artists or
// a generic template for everyone else.
func staticArtistInfo(artwork *models.Artwork) *models.ArtistInfo {
	if info, ok := staticArtists[artwork.Artist]; ok {
		return info
	}

	artist := artwork.Artist
	if artist == "" {
		artist = "Unknown Artist"
	}

	yearClause := ""
	if artwork.Year != "" {
		yearClause = fmt.Sprintf(" in %s", artwork.Year)
	}

	return &models.ArtistInfo{
		Name: artist,
		Biography: fmt.Sprintf(`Information about %s is currently being compiled. %s created "%s"%s, demonstrating mastery of %s.

The artist's work represents a significant contribution to art history, showcasing technical skill and creative vision that continues to inspire viewers today.

This artwork exemplifies the artistic principles and cultural context of its time, making it an important piece for study and appreciation.`,
			artist, artist, artwork.Title, yearClause, movementOrUnknown(artwork.Movement)),
		Style: fmt.Sprintf("The artistic style of %s is characterized by techniques typical of %s, demonstrating skillful use of composition, color, and form.",
			artist, movementOrUnknown(artwork.Movement)),
		NotableWorks: []string{artwork.Title},
		Influences: fmt.Sprintf("The work of %s reflects the artistic movements and cultural influences of their time, contributing to the evolution of %s.",
			artist, movementOrUnknown(artwork.Movement)),
	}
}

// staticChatReplies are the in-character fallback responses. The reply is
// selected by conversation length so a session cycles through them
// deterministically.
func staticChatReply(artwork *models.Artwork, historyLen int) string {
	replies := []string{
		fmt.Sprintf("Ah, you want to know about %s! I created this piece during a time of great emotion and discovery. Every brushstroke carries my passion and vision.", artwork.Title),
		fmt.Sprintf("When I painted this, I was exploring the depths of %s. The colors and forms you see represent my inner world and observations of life.", movementOrUnknown(artwork.Movement)),
		"What a wonderful question! Let me share with you the story behind this work...",
		fmt.Sprintf("As %s, I poured my soul into every detail. What you're seeing isn't just paint on canvas, it's a window into my experience and perspective.", artwork.Artist),
		fmt.Sprintf("The techniques I used here were revolutionary for %s. I wanted to capture something that went beyond mere representation.", artwork.Year),
	}

	return replies[historyLen%len(replies)]
}

// FallbackQuiz is the fixed template quiz used when generation fails. The
// correct answer is always the first option; handlers do not reorder.
func FallbackQuiz(artwork *models.Artwork) []models.QuizQuestion {
	movement := artwork.Movement
	if movement == "" {
		movement = "Renaissance"
	}
	year := artwork.Year
	if year == "" {
		year = "1800s"
	}

	return []models.QuizQuestion{
		{
			Question:      fmt.Sprintf("Who painted %q?", artwork.Title),
			Options:       []string{artwork.Artist, "Pablo Picasso", "Claude Monet", "Rembrandt"},
			CorrectAnswer: 0,
			Explanation:   fmt.Sprintf("%s created this masterpiece in %s.", artwork.Artist, year),
		},
		{
			Question:      fmt.Sprintf("What art movement does %q belong to?", artwork.Title),
			Options:       []string{movement, "Cubism", "Abstract Expressionism", "Baroque"},
			CorrectAnswer: 0,
			Explanation:   fmt.Sprintf("This work is a prime example of %s art.", movement),
		},
		{
			Question:      fmt.Sprintf("When was %q created?", artwork.Title),
			Options:       []string{year, "1920s", "1650s", "2000s"},
			CorrectAnswer: 0,
			Explanation:   fmt.Sprintf("The artwork was painted in %s.", year),
		},
		{
			Question:      "What emotion does this artwork primarily convey?",
			Options:       []string{"A sense of wonder and movement", "Anger and frustration", "Boredom", "Confusion"},
			CorrectAnswer: 0,
			Explanation:   "The composition and colors work together to create an emotional impact.",
		},
		{
			Question:      "Which technique is most prominent in this painting?",
			Options:       []string{"Expressive brushwork", "Photorealism", "Digital manipulation", "Collage"},
			CorrectAnswer: 0,
			Explanation:   "The artist used distinctive brushwork techniques characteristic of their style.",
		},
	}
}

// staticRelatedContext is the canned related-content bundle.
func staticRelatedContext(artwork *models.Artwork) *RelatedContext {
	return &RelatedContext{
		SimilarArtworks: []models.RelatedArtwork{
			{
				Title:       "Water Lilies",
				Artist:      "Claude Monet",
				Year:        "1916",
				Source:      "ai",
				Explanation: "Both use impressionistic techniques to capture light and atmosphere",
			},
			{
				Title:       "Impression, Sunrise",
				Artist:      "Claude Monet",
				Year:        "1872",
				Source:      "ai",
				Explanation: "Pioneering impressionist work that revolutionized painting techniques",
			},
			{
				Title:       "The Scream",
				Artist:      "Edvard Munch",
				Year:        "1893",
				Source:      "ai",
				Explanation: "Shares the expressive use of swirling patterns and emotional intensity",
			},
		},
		ContemporaryArtists: []string{
			formatContemporaryArtist("Paul Cezanne", "1839-1906", "Post-Impressionism",
				"Mont Sainte-Victoire", "Fellow post-impressionist who also broke from traditional techniques"),
		},
		HistoricalContext: joinContextSections(
			"Late 19th century art period",
			fmt.Sprintf("The %s movement and its surrounding artistic currents", movementOrUnknown(artwork.Movement)),
			fmt.Sprintf("%s's life and influence on the artists who followed", artwork.Artist),
		),
	}
}
