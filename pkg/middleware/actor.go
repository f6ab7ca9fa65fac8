package middleware

import (
	"context"
	"net/http"

	"banquetdesk/pkg/logger"
	"banquetdesk/pkg/model"
	"banquetdesk/pkg/session"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	ActorKey contextKey = "actor"
)

// Actor resolves the acting user from the gateway-supplied identity headers
// and stores it in the request context. Authentication itself happens
// upstream; this layer only carries the identity. A role header without a
// user id is an inconsistent session and is reported to the notifier.
func Actor(notifier *session.Notifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(HeaderUserID)
			userRole := r.Header.Get(HeaderUserRole)

			if userID == "" && userRole != "" {
				log.Warn("Role header without user id, treating session as invalid",
					"request_id", requestIDFrom(r.Context()),
					"role", userRole,
					"path", r.URL.Path,
				)
				if notifier != nil {
					notifier.Publish(session.Event{
						Kind:   session.SessionInvalid,
						Detail: "role header without user id",
					})
				}
				next.ServeHTTP(w, r)
				return
			}

			if userID != "" {
				actor := &model.User{
					ID:   model.Identifier(userID),
					Role: model.RoleRef(userRole),
				}
				ctx := context.WithValue(r.Context(), ActorKey, actor)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ActorFromContext returns the acting user, or nil when the request carried
// no identity. Callers treat nil as unauthenticated and fail closed.
func ActorFromContext(ctx context.Context) *model.User {
	if v := ctx.Value(ActorKey); v != nil {
		if actor, ok := v.(*model.User); ok {
			return actor
		}
	}
	return nil
}
