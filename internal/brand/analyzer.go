package brand

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mkrtchyyan/AI-social-media-agent/internal/ai"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/models"
)

const analyzerSystemPrompt = "You are a brand analysis expert. Always respond with valid JSON only."

// Analyzer builds a brand profile from whatever source material is available:
// website text, example posts, explicit guidelines. Any combination may be
// absent.
type Analyzer struct {
	client  ai.TextClient
	scraper *Scraper
}

// AnalyzeRequest carries the optional brand source material
type AnalyzeRequest struct {
	WebsiteURL      string            `json:"website_url,omitempty"`
	ExistingPosts   []string          `json:"existing_posts,omitempty"`
	BrandGuidelines map[string]string `json:"brand_guidelines,omitempty"`
}

// NewAnalyzer creates an analyzer backed by the given text client and scraper
func NewAnalyzer(client ai.TextClient, scraper *Scraper) *Analyzer {
	return &Analyzer{client: client, scraper: scraper}
}

// Analyze produces a brand profile. Every failure mode - fetch, completion,
// parse, schema - degrades to the full default profile; the caller always
// receives a complete profile and never an error.
func (a *Analyzer) Analyze(ctx context.Context, req AnalyzeRequest) models.BrandProfile {
	websiteContent := ""
	if req.WebsiteURL != "" {
		content, err := a.scraper.Fetch(ctx, req.WebsiteURL)
		if err != nil {
			// Scrape failure only loses this one source
			logrus.Warnf("Could not scrape website %s: %v", req.WebsiteURL, err)
		} else {
			websiteContent = content
		}
	}

	postsText := strings.Join(req.ExistingPosts, "\n\n")

	guidelinesText := ""
	if len(req.BrandGuidelines) > 0 {
		if data, err := json.MarshalIndent(req.BrandGuidelines, "", "  "); err == nil {
			guidelinesText = string(data)
		}
	}

	prompt := buildAnalysisPrompt(websiteContent, postsText, guidelinesText)

	logrus.Info("Analyzing brand materials")
	raw, err := a.client.Complete(ctx, analyzerSystemPrompt, prompt, 0.7, 2000)
	if err != nil {
		logrus.Warnf("Brand analysis degraded to default profile: %v", err)
		return DefaultProfile()
	}

	payload, err := ai.ExtractJSONPayload(raw)
	if err != nil {
		logrus.Warnf("Brand analysis degraded to default profile: %v", err)
		return DefaultProfile()
	}

	var profile models.BrandProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		logrus.Warnf("Brand analysis degraded to default profile: invalid JSON: %v", err)
		return DefaultProfile()
	}

	// A profile missing any nested group is replaced wholesale, never merged
	if !profileComplete(profile) {
		logrus.Warn("Brand analysis degraded to default profile: incomplete response")
		return DefaultProfile()
	}

	logrus.Info("Brand analysis complete")
	return profile
}

func profileComplete(p models.BrandProfile) bool {
	return p.BrandVoice.Tone != "" &&
		len(p.VisualIdentity.PrimaryColors) > 0 &&
		p.MessagingPatterns.TargetAudience != "" &&
		len(p.CTAStyle.TypicalCTAs) > 0 &&
		p.ContentStructure.TypicalPostLength != ""
}

func buildAnalysisPrompt(websiteContent, postsText, guidelinesText string) string {
	var sb strings.Builder

	sb.WriteString("You are a brand strategist analyzing company materials to extract brand characteristics.\n\n")
	sb.WriteString("Analyze the following materials and create a comprehensive brand profile:\n\n")

	sb.WriteString("WEBSITE CONTENT:\n")
	sb.WriteString(orNotProvided(websiteContent))
	sb.WriteString("\n\nEXISTING SOCIAL MEDIA POSTS:\n")
	sb.WriteString(orNotProvided(postsText))
	sb.WriteString("\n\nBRAND GUIDELINES:\n")
	sb.WriteString(orNotProvided(guidelinesText))

	sb.WriteString(`

Extract and return the following in JSON format:

{
    "brand_voice": {
        "tone": "formal/casual/playful/professional/inspirational",
        "personality_traits": ["trait1", "trait2", "trait3"],
        "emoji_usage": "none/minimal/moderate/frequent",
        "sentence_style": "short and punchy/medium/long and detailed",
        "language_complexity": "simple/moderate/sophisticated"
    },
    "visual_identity": {
        "primary_colors": ["#hexcolor1", "#hexcolor2"],
        "design_style": "minimal/bold/corporate/creative/tech-focused",
        "imagery_style": "abstract/photographic/illustrated/mixed"
    },
    "messaging_patterns": {
        "key_themes": ["theme1", "theme2", "theme3"],
        "value_propositions": ["value1", "value2"],
        "target_audience": "description of target audience",
        "common_topics": ["topic1", "topic2", "topic3"]
    },
    "cta_style": {
        "typical_ctas": ["CTA1", "CTA2", "CTA3"],
        "cta_placement": "beginning/middle/end",
        "cta_tone": "urgent/casual/professional/friendly"
    },
    "content_structure": {
        "typical_post_length": "short/medium/long",
        "uses_hashtags": true,
        "hashtag_count": "number or range",
        "uses_questions": true,
        "uses_statistics": false
    }
}

Be specific and evidence-based. If information is not available, make reasonable inferences based on industry standards.
Return ONLY the JSON, no other text.`)

	return sb.String()
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}
