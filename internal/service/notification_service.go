package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/familytable/internal/api"
	"github.com/mmynk/familytable/internal/storage"
)

// DefaultNotificationLimit caps the inbox listing when no limit is configured.
const DefaultNotificationLimit = 50

// NotificationService implements the Connect NotificationService.
type NotificationService struct {
	store storage.NotificationStore
	limit int
}

var _ api.NotificationServiceHandler = (*NotificationService)(nil)

// NewNotificationService creates a NotificationService listing at most
// limit notifications.
func NewNotificationService(store storage.NotificationStore, limit int) *NotificationService {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	return &NotificationService{store: store, limit: limit}
}

// ListNotifications returns the caller's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := s.store.ListNotifications(ctx, userID, s.limit)
	if err != nil {
		return nil, fail("ListNotifications", err, "user_id", userID)
	}

	out := make([]*api.Notification, len(notes))
	for i, n := range notes {
		out[i] = toNotification(n)
	}
	return connect.NewResponse(&api.ListNotificationsResponse{Notifications: out}), nil
}

// UnreadCount returns how many of the caller's notifications are unread.
func (s *NotificationService) UnreadCount(ctx context.Context, req *connect.Request[api.UnreadCountRequest]) (*connect.Response[api.UnreadCountResponse], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return nil, fail("UnreadCount", err, "user_id", userID)
	}
	return connect.NewResponse(&api.UnreadCountResponse{Count: n}), nil
}

// MarkRead flags one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, req *connect.Request[api.MarkReadRequest]) (*connect.Response[api.Empty], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.MarkRead(ctx, req.Msg.NotificationID, userID); err != nil {
		return nil, fail("MarkRead", err, "user_id", userID, "notification_id", req.Msg.NotificationID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// MarkAllRead flags all of the caller's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, req *connect.Request[api.MarkAllReadRequest]) (*connect.Response[api.Empty], error) {
	userID, err := requester(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.MarkAllRead(ctx, userID); err != nil {
		return nil, fail("MarkAllRead", err, "user_id", userID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}
