// Package requestctx carries the authenticated viewer through a request
// context.
package requestctx

import "context"

type viewerContextKey struct{}

type viewer struct {
	userID string
	name   string
	token  string
}

// WithViewer stores the authenticated viewer and their bearer token.
func WithViewer(ctx context.Context, userID, name, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, viewerContextKey{}, viewer{userID: userID, name: name, token: token})
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) string {
	return viewerFrom(ctx).userID
}

// DisplayNameFromContext returns the viewer's display name claim, if any.
func DisplayNameFromContext(ctx context.Context) string {
	return viewerFrom(ctx).name
}

// TokenFromContext returns the viewer's bearer token, if any.
func TokenFromContext(ctx context.Context) string {
	return viewerFrom(ctx).token
}

func viewerFrom(ctx context.Context) viewer {
	if ctx == nil {
		return viewer{}
	}
	value, _ := ctx.Value(viewerContextKey{}).(viewer)
	return value
}
