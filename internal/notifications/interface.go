package notifications

import "github.com/mkrtchyyan/AI-social-media-agent/internal/models"

// NotificationInterface defines the contract for review notifications
type NotificationInterface interface {
	SendPostReady(post models.Post) error
}
