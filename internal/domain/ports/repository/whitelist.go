package repository

import "context"

// WhitelistRepository persists each tenant's dynamic allow-list of chat ids.
// The static base list lives in config and is layered on top by the access
// use case; this repository only knows the dynamic part.
type WhitelistRepository interface {
	Contains(ctx context.Context, botKey string, chatID int64) (bool, error)
	Add(ctx context.Context, botKey string, chatID int64) error
	// Remove reports whether the id was actually present.
	Remove(ctx context.Context, botKey string, chatID int64) (bool, error)
	List(ctx context.Context, botKey string) ([]int64, error)
}
