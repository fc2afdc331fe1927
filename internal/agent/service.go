package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mkrtchyyan/AI-social-media-agent/internal/brand"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/config"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/feedback"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/images"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/models"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/notifications"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/posts"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/storage"
)

// Precondition failures are the one error class surfaced to callers; every
// downstream service failure is absorbed by stage-level fallbacks.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoBrandProfile  = errors.New("brand profile not set; run brand analysis first")
)

// Service sequences the full pipeline for each session: brand analysis,
// variation generation, feedback rounds, image composition and refinement.
// Sessions are independent; each holds its own brand profile and post list.
type Service struct {
	config    *config.Config
	analyzer  *brand.Analyzer
	generator *posts.Generator
	loop      *feedback.Loop
	composer  *images.Composer
	store     storage.Interface
	archive   storage.Interface // optional, nil disables archiving
	notifier  notifications.NotificationInterface

	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// GenerateRequest carries one generation call's parameters
type GenerateRequest struct {
	Intent      string            `json:"intent"`
	Platform    string            `json:"platform"`
	Constraints map[string]string `json:"constraints,omitempty"`
	RAGElements map[string]string `json:"rag_elements,omitempty"`
	Count       int               `json:"count,omitempty"`
}

// NewService creates the orchestrating service
func NewService(cfg *config.Config, analyzer *brand.Analyzer, generator *posts.Generator, loop *feedback.Loop, composer *images.Composer, store storage.Interface, archive storage.Interface, notifier notifications.NotificationInterface) *Service {
	return &Service{
		config:    cfg,
		analyzer:  analyzer,
		generator: generator,
		loop:      loop,
		composer:  composer,
		store:     store,
		archive:   archive,
		notifier:  notifier,
		sessions:  make(map[string]*models.Session),
	}
}

// CreateSession starts a new independent pipeline session
func (s *Service) CreateSession() *models.Session {
	session := &models.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	logrus.Infof("Created session %s", session.ID)
	return session
}

// GetSession returns a session by ID
func (s *Service) GetSession(id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// AnalyzeBrand runs brand analysis and stores the resulting profile on the
// session. Analysis itself cannot fail; it degrades to the default profile.
func (s *Service) AnalyzeBrand(ctx context.Context, sessionID string, req brand.AnalyzeRequest) (models.BrandProfile, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return models.BrandProfile{}, err
	}

	profile := s.analyzer.Analyze(ctx, req)

	s.mu.Lock()
	session.BrandProfile = &profile
	s.mu.Unlock()

	return profile, nil
}

// GeneratePosts runs the full variation pipeline: generate, feedback rounds,
// background synthesis and text overlay, sequentially per variation with
// output order preserved. Requires a brand profile on the session.
func (s *Service) GeneratePosts(ctx context.Context, sessionID string, req GenerateRequest) ([]models.Post, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	profile, err := s.sessionProfile(session)
	if err != nil {
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = s.config.DefaultVariations
	}

	logrus.Infof("Generating %s post for session %s: %s", req.Platform, sessionID, req.Intent)

	variations := s.generator.GenerateVariations(ctx, profile, req.Intent, req.Platform, req.Constraints, req.RAGElements, count)
	if len(variations) == 0 {
		// Zero variations is a valid degenerate outcome, not an error
		logrus.Warn("Generation produced no variations")
		return []models.Post{}, nil
	}

	final := make([]models.Post, 0, len(variations))
	for _, post := range variations {
		improved := s.loop.Iterate(ctx, post, profile, req.Platform, s.config.FeedbackRounds)

		background := s.composer.GenerateBackground(ctx, improved, profile, req.Platform)
		improved.ImagePath = s.composer.AddTextOverlay(background, improved.OverlayText, profile)

		final = append(final, improved)
	}

	s.mu.Lock()
	session.Posts = final
	s.mu.Unlock()

	logrus.Infof("Generated %d finished variations", len(final))
	return final, nil
}

// RefinePost rewrites a post against user feedback, regenerating its image
// only when the caption actually changed.
func (s *Service) RefinePost(ctx context.Context, sessionID string, post models.Post, userFeedback string) (models.Post, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return models.Post{}, err
	}

	profile, err := s.sessionProfile(session)
	if err != nil {
		return models.Post{}, err
	}

	refined := s.generator.RefineWithFeedback(ctx, post, userFeedback, profile)

	if refined.Caption != post.Caption {
		logrus.Info("Caption changed, regenerating image")
		background := s.composer.GenerateBackground(ctx, refined, profile, post.Platform)
		refined.ImagePath = s.composer.AddTextOverlay(background, refined.OverlayText, profile)
	} else {
		refined.ImagePath = post.ImagePath
	}

	return refined, nil
}

// SavePost writes the caption and a metadata snapshot under a shared
// timestamped base name, archives them if an archive backend is configured,
// and notifies the reviewer. Returns the base filename.
func (s *Service) SavePost(sessionID string, post models.Post) (string, error) {
	if _, err := s.GetSession(sessionID); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	base := fmt.Sprintf("post_%s", timestamp)

	captionFile := base + "_caption.txt"
	if err := s.store.Store(captionFile, []byte(post.Caption)); err != nil {
		return "", err
	}

	metadata, err := json.MarshalIndent(models.SavedPost{
		Platform:    post.Platform,
		Intent:      post.Intent,
		Timestamp:   timestamp,
		Caption:     post.Caption,
		OverlayText: post.OverlayText,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal post metadata: %w", err)
	}

	metadataFile := base + "_metadata.json"
	if err := s.store.Store(metadataFile, metadata); err != nil {
		return "", err
	}

	if s.archive != nil {
		if err := s.archive.Store(metadataFile, metadata); err != nil {
			logrus.Warnf("Post archive failed: %v", err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendPostReady(post); err != nil {
			logrus.Warnf("Review notification failed: %v", err)
		}
	}

	logrus.Infof("Saved post as %s", base)
	return base, nil
}

func (s *Service) sessionProfile(session *models.Session) (models.BrandProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if session.BrandProfile == nil {
		return models.BrandProfile{}, ErrNoBrandProfile
	}
	return *session.BrandProfile, nil
}
