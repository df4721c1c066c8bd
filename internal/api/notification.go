package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// NotificationServiceName is the fully-qualified name of the NotificationService.
const NotificationServiceName = "familytable.v1.NotificationService"

// Procedure paths of the NotificationService.
const (
	NotificationServiceListNotificationsProcedure = "/" + NotificationServiceName + "/ListNotifications"
	NotificationServiceUnreadCountProcedure       = "/" + NotificationServiceName + "/UnreadCount"
	NotificationServiceMarkReadProcedure          = "/" + NotificationServiceName + "/MarkRead"
	NotificationServiceMarkAllReadProcedure       = "/" + NotificationServiceName + "/MarkAllRead"
)

// NotificationServiceHandler is the server side of the NotificationService, which serves a user's inbox.
type NotificationServiceHandler interface {
	ListNotifications(context.Context, *connect.Request[ListNotificationsRequest]) (*connect.Response[ListNotificationsResponse], error)
	UnreadCount(context.Context, *connect.Request[UnreadCountRequest]) (*connect.Response[UnreadCountResponse], error)
	MarkRead(context.Context, *connect.Request[MarkReadRequest]) (*connect.Response[Empty], error)
	MarkAllRead(context.Context, *connect.Request[MarkAllReadRequest]) (*connect.Response[Empty], error)
}

// NewNotificationServiceHandler builds an HTTP handler for every procedure of svc.
// It returns the path prefix to mount the handler on.
func NewNotificationServiceHandler(svc NotificationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(NotificationServiceListNotificationsProcedure, connect.NewUnaryHandler(NotificationServiceListNotificationsProcedure, svc.ListNotifications, opts...))
	mux.Handle(NotificationServiceUnreadCountProcedure, connect.NewUnaryHandler(NotificationServiceUnreadCountProcedure, svc.UnreadCount, opts...))
	mux.Handle(NotificationServiceMarkReadProcedure, connect.NewUnaryHandler(NotificationServiceMarkReadProcedure, svc.MarkRead, opts...))
	mux.Handle(NotificationServiceMarkAllReadProcedure, connect.NewUnaryHandler(NotificationServiceMarkAllReadProcedure, svc.MarkAllRead, opts...))
	return "/" + NotificationServiceName + "/", mux
}

// NotificationServiceClient is a client for the NotificationService.
type NotificationServiceClient interface {
	ListNotifications(context.Context, *connect.Request[ListNotificationsRequest]) (*connect.Response[ListNotificationsResponse], error)
	UnreadCount(context.Context, *connect.Request[UnreadCountRequest]) (*connect.Response[UnreadCountResponse], error)
	MarkRead(context.Context, *connect.Request[MarkReadRequest]) (*connect.Response[Empty], error)
	MarkAllRead(context.Context, *connect.Request[MarkAllReadRequest]) (*connect.Response[Empty], error)
}

// NewNotificationServiceClient constructs a client for the NotificationService. baseURL is the
// server address, e.g. http://localhost:8080.
func NewNotificationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) NotificationServiceClient {
	opts = clientOptions(opts)
	return &notificationServiceClient{
		listNotifications: connect.NewClient[ListNotificationsRequest, ListNotificationsResponse](httpClient, baseURL+NotificationServiceListNotificationsProcedure, opts...),
		unreadCount:       connect.NewClient[UnreadCountRequest, UnreadCountResponse](httpClient, baseURL+NotificationServiceUnreadCountProcedure, opts...),
		markRead:          connect.NewClient[MarkReadRequest, Empty](httpClient, baseURL+NotificationServiceMarkReadProcedure, opts...),
		markAllRead:       connect.NewClient[MarkAllReadRequest, Empty](httpClient, baseURL+NotificationServiceMarkAllReadProcedure, opts...),
	}
}

type notificationServiceClient struct {
	listNotifications *connect.Client[ListNotificationsRequest, ListNotificationsResponse]
	unreadCount       *connect.Client[UnreadCountRequest, UnreadCountResponse]
	markRead          *connect.Client[MarkReadRequest, Empty]
	markAllRead       *connect.Client[MarkAllReadRequest, Empty]
}

func (c *notificationServiceClient) ListNotifications(ctx context.Context, req *connect.Request[ListNotificationsRequest]) (*connect.Response[ListNotificationsResponse], error) {
	return c.listNotifications.CallUnary(ctx, req)
}

func (c *notificationServiceClient) UnreadCount(ctx context.Context, req *connect.Request[UnreadCountRequest]) (*connect.Response[UnreadCountResponse], error) {
	return c.unreadCount.CallUnary(ctx, req)
}

func (c *notificationServiceClient) MarkRead(ctx context.Context, req *connect.Request[MarkReadRequest]) (*connect.Response[Empty], error) {
	return c.markRead.CallUnary(ctx, req)
}

func (c *notificationServiceClient) MarkAllRead(ctx context.Context, req *connect.Request[MarkAllReadRequest]) (*connect.Response[Empty], error) {
	return c.markAllRead.CallUnary(ctx, req)
}
