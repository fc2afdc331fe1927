package posts

import "github.com/mkrtchyyan/AI-social-media-agent/internal/models"

// platformSpecs is the static per-platform guidance table. Additional
// platforms are added here; unknown platforms fall back to the LinkedIn entry.
var platformSpecs = map[string]models.PlatformSpec{
	"linkedin": {
		IdealLength: "150-300 words",
		MaxLength:   "3000 characters",
		Tone:        "professional but conversational",
		Hashtags:    "3-5 relevant hashtags",
		LineBreaks:  "Use line breaks for readability",
		Emojis:      "Use sparingly, professionally",
		BestPractices: []string{
			"Start with a hook",
			"Use short paragraphs",
			"Include a clear CTA",
			"Tag relevant people/companies when appropriate",
		},
	},
	"instagram": {
		IdealLength: "100-200 words",
		MaxLength:   "2200 characters",
		Tone:        "casual and engaging",
		Hashtags:    "5-10 relevant hashtags",
		LineBreaks:  "Use line breaks and spacing",
		Emojis:      "Use freely to enhance message",
		BestPractices: []string{
			"Front-load the key message",
			"Use emojis as visual breaks",
			"Include relevant hashtags",
			"Encourage engagement (likes, shares, comments)",
		},
	},
}

// SpecFor returns the guidance for a platform, defaulting to LinkedIn
func SpecFor(platform string) models.PlatformSpec {
	if spec, ok := platformSpecs[platform]; ok {
		return spec
	}
	return platformSpecs["linkedin"]
}
