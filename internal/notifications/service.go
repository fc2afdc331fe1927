package notifications

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/mkrtchyyan/AI-social-media-agent/internal/config"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/models"
)

// Service emails saved posts to a configured reviewer. Sending is optional:
// with no REVIEW_EMAIL configured every call is a logged no-op.
type Service struct {
	config *config.Config
}

var _ NotificationInterface = (*Service)(nil)

// NewService creates a notification service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// SendPostReady notifies the reviewer that a post was saved and is ready for
// publishing
func (s *Service) SendPostReady(post models.Post) error {
	if s.config.ReviewEmail == "" {
		logrus.Debug("No review email configured, skipping notification")
		return nil
	}

	subject := fmt.Sprintf("Post ready for review - %s (%s)", post.Intent, post.Platform)

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.ReviewEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.buildBody(post))

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send review email: %w", err)
	}

	logrus.Infof("Review notification sent to %s", s.config.ReviewEmail)
	return nil
}

func (s *Service) buildBody(post models.Post) string {
	var text strings.Builder

	text.WriteString("A generated post has been saved and is ready for review.\n\n")
	fmt.Fprintf(&text, "Platform: %s\n", post.Platform)
	fmt.Fprintf(&text, "Intent: %s\n", post.Intent)
	if post.CritiqueScore > 0 {
		fmt.Fprintf(&text, "Final critique score: %.1f/10\n", post.CritiqueScore)
	}
	text.WriteString("\nCAPTION\n=======\n")
	text.WriteString(post.Caption)
	text.WriteString("\n\n")
	if post.OverlayText != "" {
		fmt.Fprintf(&text, "Overlay text: %s\n", post.OverlayText)
	}
	if len(post.Hashtags) > 0 {
		fmt.Fprintf(&text, "Hashtags: %s\n", strings.Join(post.Hashtags, " "))
	}
	if post.ImagePath != "" {
		fmt.Fprintf(&text, "Image: %s\n", post.ImagePath)
	}

	return text.String()
}
