package models

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationNewRecipe    NotificationType = "new_recipe"
	NotificationComment      NotificationType = "comment"
	NotificationFamilyInvite NotificationType = "family_invite"
)

// Notification is one message for one recipient.
type Notification struct {
	ID     string
	UserID string // recipient
	Type   NotificationType

	Message string

	// RecipeID links recipe and comment notifications to their recipe.
	RecipeID *string

	// FromUserName is the display name of the user who caused the event.
	FromUserName string

	IsRead    bool
	CreatedAt string
}
