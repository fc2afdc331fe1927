package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mkrtchyyan/AI-social-media-agent/internal/ai"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/models"
)

const generatorSystemPrompt = "You are a social media content expert. Always respond with valid JSON only."

// Generator produces candidate posts and refines selected ones against user
// feedback. Both operations are single completion calls with strict JSON
// contracts.
type Generator struct {
	client ai.TextClient
}

// NewGenerator creates a generator backed by the given text client
func NewGenerator(client ai.TextClient) *Generator {
	return &Generator{client: client}
}

type variationsPayload struct {
	Posts []models.Post `json:"posts"`
}

// GenerateVariations requests count distinct post variations in one call and
// attaches platform, intent and a 1-based variation number to each. Any
// request or parse failure yields an empty list; zero variations is a valid
// degenerate outcome for callers.
func (g *Generator) GenerateVariations(ctx context.Context, profile models.BrandProfile, intent, platform string, constraints, ragElements map[string]string, count int) []models.Post {
	prompt := buildGenerationPrompt(profile, intent, platform, SpecFor(platform), constraints, ragElements, count)

	logrus.Infof("Generating %d post variations for %s", count, platform)
	raw, err := g.client.Complete(ctx, generatorSystemPrompt, prompt, 0.8, 3000)
	if err != nil {
		logrus.Warnf("Post generation failed, returning no variations: %v", err)
		return nil
	}

	payload, err := ai.ExtractJSONPayload(raw)
	if err != nil {
		logrus.Warnf("Post generation failed, returning no variations: %v", err)
		return nil
	}

	var parsed variationsPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		logrus.Warnf("Post generation returned invalid JSON, returning no variations: %v", err)
		return nil
	}

	for i := range parsed.Posts {
		parsed.Posts[i].Platform = platform
		parsed.Posts[i].Intent = intent
		parsed.Posts[i].VariationNumber = i + 1
	}

	return parsed.Posts
}

// RefineWithFeedback rewrites a post against verbatim user feedback. Platform
// and intent are re-attached from the original; the model is never trusted to
// preserve them. On any failure the original post is returned unchanged.
func (g *Generator) RefineWithFeedback(ctx context.Context, post models.Post, userFeedback string, profile models.BrandProfile) models.Post {
	prompt := buildRefinementPrompt(post, userFeedback, profile)

	logrus.Info("Refining post from user feedback")
	raw, err := g.client.Complete(ctx, generatorSystemPrompt, prompt, 0.7, 2000)
	if err != nil {
		logrus.Warnf("Refinement failed, keeping original post: %v", err)
		return post
	}

	payload, err := ai.ExtractJSONPayload(raw)
	if err != nil {
		logrus.Warnf("Refinement failed, keeping original post: %v", err)
		return post
	}

	var refined models.Post
	if err := json.Unmarshal(payload, &refined); err != nil {
		logrus.Warnf("Refinement returned invalid JSON, keeping original post: %v", err)
		return post
	}

	refined.Platform = post.Platform
	refined.Intent = post.Intent

	return refined
}

func buildGenerationPrompt(profile models.BrandProfile, intent, platform string, spec models.PlatformSpec, constraints, ragElements map[string]string, count int) string {
	voiceJSON, _ := json.MarshalIndent(profile.BrandVoice, "", "  ")
	messagingJSON, _ := json.MarshalIndent(profile.MessagingPatterns, "", "  ")
	specJSON, _ := json.MarshalIndent(spec, "", "  ")

	ctas := profile.CTAStyle.TypicalCTAs
	if len(ctas) > 3 {
		ctas = ctas[:3]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a social media content creator. Generate %d variations of a %s post.\n\n", count, platform)
	fmt.Fprintf(&sb, "INTENT: %s\n\n", intent)
	sb.WriteString("BRAND PROFILE:\n")
	fmt.Fprintf(&sb, "- Tone: %s\n", profile.BrandVoice.Tone)
	fmt.Fprintf(&sb, "- Emoji usage: %s\n", profile.BrandVoice.EmojiUsage)
	fmt.Fprintf(&sb, "- Typical CTAs: %s\n", strings.Join(ctas, ", "))
	fmt.Fprintf(&sb, "- Brand voice: %s\n", voiceJSON)
	fmt.Fprintf(&sb, "- Messaging patterns: %s\n\n", messagingJSON)
	fmt.Fprintf(&sb, "PLATFORM SPECS (%s):\n%s\n", strings.ToUpper(platform), specJSON)

	// Optional sections are omitted entirely when absent, not rendered empty
	if len(constraints) > 0 {
		data, _ := json.MarshalIndent(constraints, "", "  ")
		fmt.Fprintf(&sb, "\nADDITIONAL CONSTRAINTS:\n%s\n", data)
	}
	if len(ragElements) > 0 {
		data, _ := json.MarshalIndent(ragElements, "", "  ")
		fmt.Fprintf(&sb, "\nELEMENTS TO INCLUDE:\n%s\n", data)
	}

	fmt.Fprintf(&sb, `
Generate %d creative, on-brand variations. Each should be distinct in approach but aligned with brand voice.

Return in this JSON format:
{
    "posts": [
        {
            "caption": "Full post text here...",
            "overlay_text": "Short punchy text for image overlay (5-10 words max)",
            "hashtags": ["hashtag1", "hashtag2"],
            "cta": "Call to action",
            "hook": "Opening sentence or hook",
            "image_description": "Description of ideal background image",
            "reasoning": "Brief explanation of this variation's approach"
        }
    ]
}

Make the posts engaging, authentic, and truly aligned with the brand voice. Vary the approaches:
- Variation 1: More direct and action-oriented
- Variation 2: More storytelling or emotional
- Variation 3: More data-driven or informative

Return ONLY the JSON, no other text.`, count)

	return sb.String()
}

func buildRefinementPrompt(post models.Post, userFeedback string, profile models.BrandProfile) string {
	postJSON, _ := json.MarshalIndent(post, "", "  ")
	profileJSON, _ := json.MarshalIndent(profile, "", "  ")

	var sb strings.Builder
	sb.WriteString("You are refining a social media post based on user feedback.\n\n")
	fmt.Fprintf(&sb, "ORIGINAL POST:\n%s\n\n", postJSON)
	fmt.Fprintf(&sb, "BRAND PROFILE:\n%s\n\n", profileJSON)
	fmt.Fprintf(&sb, "USER FEEDBACK:\n%s\n", userFeedback)
	sb.WriteString(`
Generate an improved version that addresses the feedback while maintaining brand alignment.

Return in this JSON format:
{
    "caption": "Updated post text...",
    "overlay_text": "Updated overlay text",
    "hashtags": ["hashtag1", "hashtag2"],
    "cta": "Updated CTA",
    "hook": "Updated hook",
    "image_description": "Updated image description",
    "changes_made": "Summary of what was changed and why"
}

Return ONLY the JSON, no other text.`)

	return sb.String()
}
