package brand

import "github.com/mkrtchyyan/AI-social-media-agent/internal/models"

// DefaultProfile returns the fixed fallback profile substituted whenever
// analysis fails. It is always returned whole; analysis never merges it with
// partial model output.
func DefaultProfile() models.BrandProfile {
	return models.BrandProfile{
		BrandVoice: models.BrandVoice{
			Tone:               "professional",
			PersonalityTraits:  []string{"innovative", "reliable", "forward-thinking"},
			EmojiUsage:         "moderate",
			SentenceStyle:      "medium",
			LanguageComplexity: "moderate",
		},
		VisualIdentity: models.VisualIdentity{
			PrimaryColors: []string{"#1a73e8", "#34a853"},
			DesignStyle:   "modern",
			ImageryStyle:  "photographic",
		},
		MessagingPatterns: models.MessagingPatterns{
			KeyThemes:         []string{"innovation", "technology", "growth"},
			ValuePropositions: []string{"cutting-edge solutions", "reliable service"},
			TargetAudience:    "tech-savvy professionals",
			CommonTopics:      []string{"AI", "technology", "business"},
		},
		CTAStyle: models.CTAStyle{
			TypicalCTAs:  []string{"Learn more", "Get started", "Join us"},
			CTAPlacement: "end",
			CTATone:      "professional",
		},
		ContentStructure: models.ContentStructure{
			TypicalPostLength: "medium",
			UsesHashtags:      true,
			HashtagCount:      "3-5",
			UsesQuestions:     true,
			UsesStatistics:    false,
		},
	}
}
