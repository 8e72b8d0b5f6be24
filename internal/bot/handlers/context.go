package handlers

import (
	"context"
	"time"

	"jobtracker-bot/internal/api/jobtracker"
	"jobtracker-bot/internal/bot/middleware"
	"jobtracker-bot/internal/config"
	"jobtracker-bot/internal/jobs"
	"jobtracker-bot/internal/models"
	"jobtracker-bot/internal/storage/postgres"
	"jobtracker-bot/internal/storage/redis"

	"go.uber.org/zap"
)

// Context contains deps for all handlers
type Context struct {
	Store  *postgres.Store
	Cache  *redis.Cache
	API    *jobtracker.Client
	Config *config.Config
	Logger *zap.Logger
}

// fetchJobs pulls the full record set from the backend and normalizes it.
// Every view renders from a fresh snapshot, never from a cached copy.
func fetchJobs(ctx *Context) ([]models.Job, error) {
	if err := middleware.CheckBackendRateLimit(ctx.Cache, ctx.Logger); err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), ctx.Config.BackendTimeout)
	defer cancel()

	records, err := ctx.API.ListJobs(reqCtx)
	if err != nil {
		return nil, err
	}

	return jobs.Normalize(records), nil
}

func setUserState(ctx *Context, userID int64, state string) error {
	return ctx.Cache.SetUserState(context.Background(), userID, state)
}

func getUserState(ctx *Context, userID int64) (string, error) {
	return ctx.Cache.GetUserState(context.Background(), userID)
}

func clearUserState(ctx *Context, userID int64) error {
	return ctx.Cache.DeleteUserState(context.Background(), userID)
}

func dbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
