package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mkrtchyyan/AI-social-media-agent/internal/ai"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/models"
)

const (
	critiqueSystemPrompt = "You are a brand review expert. Always respond with valid JSON only."
	improveSystemPrompt  = "You are a social media improvement expert. Always respond with valid JSON only."
)

// Loop runs bounded self-improvement rounds on a post: each round critiques
// the current content and rewrites it against the critique. The loop never
// aborts; failed rounds degrade to no-ops.
type Loop struct {
	client ai.TextClient
}

// NewLoop creates a feedback loop backed by the given text client
func NewLoop(client ai.TextClient) *Loop {
	return &Loop{client: client}
}

// Iterate runs the configured number of critique/improve rounds and returns
// the improved post. The input post is never mutated; work happens on a copy.
// The returned critique_score reflects only the last round's critique.
func (l *Loop) Iterate(ctx context.Context, post models.Post, profile models.BrandProfile, platform string, rounds int) models.Post {
	current := post

	for i := 0; i < rounds; i++ {
		logrus.Infof("Feedback round %d/%d for variation %d", i+1, rounds, current.VariationNumber)

		critique := l.critique(ctx, current, profile, platform)
		current = l.improve(ctx, current, critique, profile)
	}

	return current
}

// critique scores the post on six dimensions. A failed call substitutes the
// fixed neutral critique so the round can still run its improve step.
func (l *Loop) critique(ctx context.Context, post models.Post, profile models.BrandProfile, platform string) models.Critique {
	prompt := buildCritiquePrompt(post, profile, platform)

	raw, err := l.client.Complete(ctx, critiqueSystemPrompt, prompt, 0.7, 2000)
	if err != nil {
		logrus.Warnf("Critique degraded to neutral default: %v", err)
		return DefaultCritique()
	}

	payload, err := ai.ExtractJSONPayload(raw)
	if err != nil {
		logrus.Warnf("Critique degraded to neutral default: %v", err)
		return DefaultCritique()
	}

	var critique models.Critique
	if err := json.Unmarshal(payload, &critique); err != nil {
		logrus.Warnf("Critique returned invalid JSON, using neutral default: %v", err)
		return DefaultCritique()
	}

	return critique
}

// improve rewrites the post against the critique. Metadata is re-attached
// from the pre-improvement post; a failed call returns that post unchanged so
// later rounds continue from known-good content.
func (l *Loop) improve(ctx context.Context, post models.Post, critique models.Critique, profile models.BrandProfile) models.Post {
	prompt := buildImprovementPrompt(post, critique, profile)

	raw, err := l.client.Complete(ctx, improveSystemPrompt, prompt, 0.7, 2000)
	if err != nil {
		logrus.Warnf("Improvement failed, keeping current post: %v", err)
		return post
	}

	payload, err := ai.ExtractJSONPayload(raw)
	if err != nil {
		logrus.Warnf("Improvement failed, keeping current post: %v", err)
		return post
	}

	var improved models.Post
	if err := json.Unmarshal(payload, &improved); err != nil {
		logrus.Warnf("Improvement returned invalid JSON, keeping current post: %v", err)
		return post
	}

	improved.Platform = post.Platform
	improved.Intent = post.Intent
	improved.VariationNumber = post.VariationNumber
	improved.CritiqueScore = critique.OverallScore

	return improved
}

// DefaultCritique is the fixed neutral critique substituted on any critique
// failure: all dimensions at 7, one generic weakness, one generic fix.
func DefaultCritique() models.Critique {
	return models.Critique{
		Scores: models.CritiqueScores{
			BrandConsistency:        7,
			MessageClarity:          7,
			CTAEffectiveness:        7,
			TextReadability:         7,
			PlatformAppropriateness: 7,
			EngagementPotential:     7,
		},
		OverallScore:         7.0,
		Strengths:            []string{"Clear message"},
		Weaknesses:           []string{"Could be more engaging"},
		SpecificImprovements: []string{"Enhance the hook", "Strengthen the CTA"},
		PriorityFix:          "Make the opening more attention-grabbing",
	}
}

func buildCritiquePrompt(post models.Post, profile models.BrandProfile, platform string) string {
	profileJSON, _ := json.MarshalIndent(profile, "", "  ")

	var sb strings.Builder
	sb.WriteString("You are a critical brand manager reviewing a social media post. Be constructive but thorough.\n\n")
	sb.WriteString("POST TO REVIEW:\n")
	fmt.Fprintf(&sb, "Caption: %s\n", post.Caption)
	fmt.Fprintf(&sb, "Overlay Text: %s\n", post.OverlayText)
	fmt.Fprintf(&sb, "Image Description: %s\n", post.ImageDescription)
	fmt.Fprintf(&sb, "Platform: %s\n\n", platform)
	fmt.Fprintf(&sb, "BRAND GUIDELINES:\n%s\n\n", profileJSON)
	fmt.Fprintf(&sb, `Evaluate the post on these criteria (rate 1-10 for each):

1. BRAND CONSISTENCY
   - Does it match the brand voice and tone?
   - Is the language style consistent?
   - Does it reflect brand values?

2. MESSAGE CLARITY
   - Is the main message clear and focused?
   - Is it easy to understand quickly?
   - Does it avoid jargon or confusion?

3. CTA EFFECTIVENESS
   - Is there a clear call-to-action?
   - Is the CTA compelling and specific?
   - Is it positioned well?

4. TEXT READABILITY ON IMAGE
   - Is the overlay text short enough?
   - Will it be readable on mobile?
   - Does it complement the caption?

5. PLATFORM APPROPRIATENESS
   - Does it fit %s best practices?
   - Is the length appropriate?
   - Does it use platform features well (hashtags, etc.)?

6. ENGAGEMENT POTENTIAL
   - Will this capture attention?
   - Does it encourage interaction?
   - Is it shareable?

Return in JSON format:
{
    "scores": {
        "brand_consistency": 8,
        "message_clarity": 7,
        "cta_effectiveness": 6,
        "text_readability": 9,
        "platform_appropriateness": 8,
        "engagement_potential": 7
    },
    "overall_score": 7.5,
    "strengths": ["strength1", "strength2"],
    "weaknesses": ["weakness1", "weakness2"],
    "specific_improvements": [
        "Specific suggestion 1",
        "Specific suggestion 2",
        "Specific suggestion 3"
    ],
    "priority_fix": "The single most important thing to improve"
}

Be specific and actionable in your feedback.
Return ONLY the JSON, no other text.`, platform)

	return sb.String()
}

func buildImprovementPrompt(post models.Post, critique models.Critique, profile models.BrandProfile) string {
	postJSON, _ := json.MarshalIndent(post, "", "  ")
	profileJSON, _ := json.MarshalIndent(profile, "", "  ")

	var improvements strings.Builder
	for _, imp := range critique.SpecificImprovements {
		fmt.Fprintf(&improvements, "- %s\n", imp)
	}

	var sb strings.Builder
	sb.WriteString("You are improving a social media post based on expert feedback.\n\n")
	fmt.Fprintf(&sb, "CURRENT POST:\n%s\n\n", postJSON)
	sb.WriteString("CRITIQUE RECEIVED:\n")
	fmt.Fprintf(&sb, "Overall Score: %g/10\n", critique.OverallScore)
	fmt.Fprintf(&sb, "Weaknesses: %s\n", strings.Join(critique.Weaknesses, ", "))
	fmt.Fprintf(&sb, "Priority Fix: %s\n", critique.PriorityFix)
	fmt.Fprintf(&sb, "Specific Improvements Needed:\n%s\n", improvements.String())
	fmt.Fprintf(&sb, "BRAND PROFILE:\n%s\n", profileJSON)
	sb.WriteString(`
Create an improved version that addresses the critique while maintaining what worked well.
Focus especially on the priority fix and specific improvements.

Return in JSON format:
{
    "caption": "Improved caption...",
    "overlay_text": "Improved overlay text",
    "hashtags": ["hashtag1", "hashtag2"],
    "cta": "Improved CTA",
    "hook": "Improved hook",
    "image_description": "Improved image description",
    "improvements_made": "Brief summary of what was improved"
}

Return ONLY the JSON, no other text.`)

	return sb.String()
}
