package models

import "time"

// BrandVoice describes how the brand sounds in writing
type BrandVoice struct {
	Tone               string   `json:"tone"` // "formal", "casual", "playful", "professional", "inspirational"
	PersonalityTraits  []string `json:"personality_traits"`
	EmojiUsage         string   `json:"emoji_usage"` // "none", "minimal", "moderate", "frequent"
	SentenceStyle      string   `json:"sentence_style"`
	LanguageComplexity string   `json:"language_complexity"` // "simple", "moderate", "sophisticated"
}

// VisualIdentity describes the brand's visual direction used for image prompts
type VisualIdentity struct {
	PrimaryColors []string `json:"primary_colors"` // hex color values, ordered by priority
	DesignStyle   string   `json:"design_style"`
	ImageryStyle  string   `json:"imagery_style"`
}

// MessagingPatterns captures recurring themes and audience targeting
type MessagingPatterns struct {
	KeyThemes         []string `json:"key_themes"`
	ValuePropositions []string `json:"value_propositions"`
	TargetAudience    string   `json:"target_audience"`
	CommonTopics      []string `json:"common_topics"`
}

// CTAStyle captures how the brand phrases and places calls to action
type CTAStyle struct {
	TypicalCTAs  []string `json:"typical_ctas"`
	CTAPlacement string   `json:"cta_placement"` // "beginning", "middle", "end"
	CTATone      string   `json:"cta_tone"`
}

// ContentStructure captures formatting habits of the brand's posts
type ContentStructure struct {
	TypicalPostLength string `json:"typical_post_length"`
	UsesHashtags      bool   `json:"uses_hashtags"`
	HashtagCount      string `json:"hashtag_count"`
	UsesQuestions     bool   `json:"uses_questions"`
	UsesStatistics    bool   `json:"uses_statistics"`
}

// BrandProfile is the complete brand analysis result. It is produced once per
// session and read by every later pipeline stage. All nested groups are always
// present: a failed analysis substitutes the full default profile, never a
// partially populated one.
type BrandProfile struct {
	BrandVoice        BrandVoice        `json:"brand_voice"`
	VisualIdentity    VisualIdentity    `json:"visual_identity"`
	MessagingPatterns MessagingPatterns `json:"messaging_patterns"`
	CTAStyle          CTAStyle          `json:"cta_style"`
	ContentStructure  ContentStructure  `json:"content_structure"`
}

// Post is a single candidate post. It accumulates fields as it moves through
// the pipeline: content fields at generation, critique_score after the
// feedback loop, image_path after composition. Platform and Intent are set at
// creation and re-attached explicitly by every stage that replaces content.
type Post struct {
	Caption          string   `json:"caption"`
	OverlayText      string   `json:"overlay_text"`
	Hashtags         []string `json:"hashtags"`
	CTA              string   `json:"cta"`
	Hook             string   `json:"hook"`
	ImageDescription string   `json:"image_description"`
	Reasoning        string   `json:"reasoning,omitempty"`
	ChangesMade      string   `json:"changes_made,omitempty"`
	ImprovementsMade string   `json:"improvements_made,omitempty"`

	Platform        string  `json:"platform"`
	Intent          string  `json:"intent"`
	VariationNumber int     `json:"variation_number"`
	CritiqueScore   float64 `json:"critique_score,omitempty"`
	ImagePath       string  `json:"image_path,omitempty"`
}

// CritiqueScores holds the six review dimensions, each rated 1-10
type CritiqueScores struct {
	BrandConsistency        int `json:"brand_consistency"`
	MessageClarity          int `json:"message_clarity"`
	CTAEffectiveness        int `json:"cta_effectiveness"`
	TextReadability         int `json:"text_readability"`
	PlatformAppropriateness int `json:"platform_appropriateness"`
	EngagementPotential     int `json:"engagement_potential"`
}

// Critique is the result of one review round. It lives only for the round
// that produced it; only OverallScore survives into the Post.
type Critique struct {
	Scores               CritiqueScores `json:"scores"`
	OverallScore         float64        `json:"overall_score"`
	Strengths            []string       `json:"strengths"`
	Weaknesses           []string       `json:"weaknesses"`
	SpecificImprovements []string       `json:"specific_improvements"`
	PriorityFix          string         `json:"priority_fix"`
}

// PlatformSpec describes per-platform content guidance embedded in prompts
type PlatformSpec struct {
	IdealLength   string   `json:"ideal_length"`
	MaxLength     string   `json:"max_length"`
	Tone          string   `json:"tone"`
	Hashtags      string   `json:"hashtags"`
	LineBreaks    string   `json:"line_breaks"`
	Emojis        string   `json:"emojis"`
	BestPractices []string `json:"best_practices"`
}

// SavedPost is the metadata snapshot written alongside a saved caption
type SavedPost struct {
	Platform    string `json:"platform"`
	Intent      string `json:"intent"`
	Timestamp   string `json:"timestamp"`
	Caption     string `json:"caption"`
	OverlayText string `json:"overlay_text"`
}

// Session holds per-session pipeline state. The brand profile is produced
// once and shared read-only across generation requests for that session.
type Session struct {
	ID           string        `json:"id"`
	CreatedAt    time.Time     `json:"created_at"`
	BrandProfile *BrandProfile `json:"brand_profile,omitempty"`
	Posts        []Post        `json:"posts,omitempty"`
}
