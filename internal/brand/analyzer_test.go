package brand

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTextClient returns a scripted response and records the prompts it saw
type stubTextClient struct {
	response string
	err      error
	calls    int
	lastUser string
}

func (s *stubTextClient) Complete(_ context.Context, _, user string, _ float64, _ int) (string, error) {
	s.calls++
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newTestScraper() *Scraper {
	return NewScraper(2*time.Second, 5000)
}

const validProfileResponse = "```json\n" + `{
    "brand_voice": {
        "tone": "playful",
        "personality_traits": ["bold", "friendly"],
        "emoji_usage": "frequent",
        "sentence_style": "short and punchy",
        "language_complexity": "simple"
    },
    "visual_identity": {
        "primary_colors": ["#ff0000", "#00ff00"],
        "design_style": "bold",
        "imagery_style": "illustrated"
    },
    "messaging_patterns": {
        "key_themes": ["fun", "community"],
        "value_propositions": ["easy to use"],
        "target_audience": "young creators",
        "common_topics": ["design"]
    },
    "cta_style": {
        "typical_ctas": ["Try it now"],
        "cta_placement": "end",
        "cta_tone": "casual"
    },
    "content_structure": {
        "typical_post_length": "short",
        "uses_hashtags": true,
        "hashtag_count": "5-10",
        "uses_questions": true,
        "uses_statistics": false
    }
}` + "\n```"

func TestAnalyze_ParsesFencedProfile(t *testing.T) {
	client := &stubTextClient{response: validProfileResponse}
	analyzer := NewAnalyzer(client, newTestScraper())

	profile := analyzer.Analyze(context.Background(), AnalyzeRequest{
		ExistingPosts: []string{"We love shipping!", "New drop this Friday."},
	})

	assert.Equal(t, "playful", profile.BrandVoice.Tone)
	assert.Equal(t, []string{"#ff0000", "#00ff00"}, profile.VisualIdentity.PrimaryColors)
	assert.Equal(t, "young creators", profile.MessagingPatterns.TargetAudience)
	assert.Equal(t, 1, client.calls)
}

func TestAnalyze_FallbackTotality(t *testing.T) {
	tests := []struct {
		name   string
		client *stubTextClient
	}{
		{"Service error", &stubTextClient{err: errors.New("rate limited")}},
		{"Malformed JSON", &stubTextClient{response: "```json\n{not json}\n```"}},
		{"No JSON payload", &stubTextClient{response: "Sorry, I can't do that."}},
		{"Incomplete profile", &stubTextClient{response: `{"brand_voice": {"tone": "casual"}}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewAnalyzer(tt.client, newTestScraper())

			profile := analyzer.Analyze(context.Background(), AnalyzeRequest{})

			// Always the complete fixed default, never a partial merge
			assert.Equal(t, DefaultProfile(), profile)
		})
	}
}

func TestAnalyze_NoSourcesMarkedNotProvided(t *testing.T) {
	client := &stubTextClient{response: validProfileResponse}
	analyzer := NewAnalyzer(client, newTestScraper())

	analyzer.Analyze(context.Background(), AnalyzeRequest{})

	assert.Contains(t, client.lastUser, "WEBSITE CONTENT:\nNot provided")
	assert.Contains(t, client.lastUser, "EXISTING SOCIAL MEDIA POSTS:\nNot provided")
	assert.Contains(t, client.lastUser, "BRAND GUIDELINES:\nNot provided")
}

func TestAnalyze_WebsiteFetchFailureDegradesOneSource(t *testing.T) {
	client := &stubTextClient{response: validProfileResponse}
	analyzer := NewAnalyzer(client, NewScraper(500*time.Millisecond, 5000))

	profile := analyzer.Analyze(context.Background(), AnalyzeRequest{
		WebsiteURL:    "http://127.0.0.1:1/unreachable",
		ExistingPosts: []string{"Still here."},
	})

	// Analysis continues with the remaining sources
	assert.Equal(t, "playful", profile.BrandVoice.Tone)
	assert.Contains(t, client.lastUser, "WEBSITE CONTENT:\nNot provided")
	assert.Contains(t, client.lastUser, "Still here.")
}

func TestScraper_StripsStructuralElements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><style>body { color: red }</style></head>
<body>
<nav>Home About</nav>
<script>alert("hi")</script>
<p>We   build
delightful    products.</p>
<footer>Copyright</footer>
</body></html>`))
	}))
	defer server.Close()

	scraper := newTestScraper()
	text, err := scraper.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Contains(t, text, "We build delightful products.")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "Home About")
	assert.NotContains(t, text, "Copyright")
}

func TestScraper_TruncatesToBudget(t *testing.T) {
	long := make([]byte, 0, 12000)
	for i := 0; i < 3000; i++ {
		long = append(long, []byte("word ")...)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>" + string(long) + "</p></body></html>"))
	}))
	defer server.Close()

	scraper := NewScraper(2*time.Second, 5000)
	text, err := scraper.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(text), 5000)
}

func TestScraper_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	scraper := newTestScraper()
	_, err := scraper.Fetch(context.Background(), server.URL)

	assert.Error(t, err)
}
