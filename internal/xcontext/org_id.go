package xcontext

import "context"

type orgIDKey struct{}

// SetOrgID records the organisation a request acts for.
func SetOrgID(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, orgIDKey{}, orgID)
}

func GetOrgID(ctx context.Context) (string, bool) {
	orgID, ok := ctx.Value(orgIDKey{}).(string)
	return orgID, ok && orgID != ""
}
