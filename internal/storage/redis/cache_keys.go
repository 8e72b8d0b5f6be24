package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	UserStateCacheTTL  = 30 * time.Minute
	FormDraftTTL       = 30 * time.Minute
	FilterTTL          = 12 * time.Hour
	RateLimitWindowTTL = 1 * time.Minute
)

func UserStateKey(userID int64) string {
	return fmt.Sprintf("state:user:%d", userID)
}

func FormDraftKey(userID int64, form string) string {
	return fmt.Sprintf("draft:user:%d:%s", userID, form)
}

func FilterKey(userID int64) string {
	return fmt.Sprintf("filter:user:%d", userID)
}

func RateLimitKey(userID int64) string {
	return fmt.Sprintf("ratelimit:user:%d", userID)
}

func BackendRateLimitKey() string {
	return "ratelimit:backend"
}

func (c *Cache) SetUserState(ctx context.Context, userID int64, state string) error {
	return c.SetString(ctx, UserStateKey(userID), state, UserStateCacheTTL)
}

func (c *Cache) GetUserState(ctx context.Context, userID int64) (string, error) {
	return c.GetString(ctx, UserStateKey(userID))
}

func (c *Cache) DeleteUserState(ctx context.Context, userID int64) error {
	return c.Delete(ctx, UserStateKey(userID))
}

// Form drafts hold the partially filled application or interview form while
// the conversation walks through its fields.
func (c *Cache) SetFormDraft(ctx context.Context, userID int64, form string, draft interface{}) error {
	return c.Set(ctx, FormDraftKey(userID, form), draft, FormDraftTTL)
}

func (c *Cache) GetFormDraft(ctx context.Context, userID int64, form string, dest interface{}) error {
	return c.Get(ctx, FormDraftKey(userID, form), dest)
}

func (c *Cache) DeleteFormDraft(ctx context.Context, userID int64, form string) error {
	return c.Delete(ctx, FormDraftKey(userID, form))
}

// Filter selections survive between /jobs renders so the list keeps the
// user's search, status and location choices.
func (c *Cache) SetFilter(ctx context.Context, userID int64, filter interface{}) error {
	return c.Set(ctx, FilterKey(userID), filter, FilterTTL)
}

func (c *Cache) GetFilter(ctx context.Context, userID int64, dest interface{}) error {
	return c.Get(ctx, FilterKey(userID), dest)
}

func (c *Cache) DeleteFilter(ctx context.Context, userID int64) error {
	return c.Delete(ctx, FilterKey(userID))
}

func (c *Cache) IncrementUserRateLimit(ctx context.Context, userID int64) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(userID), RateLimitWindowTTL)
}

func (c *Cache) IncrementBackendRateLimit(ctx context.Context) (int64, error) {
	return c.IncrementWithExpiry(ctx, BackendRateLimitKey(), RateLimitWindowTTL)
}
