package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultViewTTL = time.Hour

// ViewDedup records listing views in Redis so each viewer is counted once per window.
// Key format: views:<listing_id>:<viewer_key>
type ViewDedup struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewViewDedup wraps client. A non-positive ttl falls back to one hour.
func NewViewDedup(client redis.Cmdable, ttl time.Duration) *ViewDedup {
	if ttl <= 0 {
		ttl = defaultViewTTL
	}
	return &ViewDedup{client: client, ttl: ttl}
}

// FirstView atomically marks the view and reports whether it is the first one
// inside the window.
func (d *ViewDedup) FirstView(ctx context.Context, listingID, viewerKey string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(listingID, viewerKey), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup: %w", err)
	}
	return ok, nil
}

func (d *ViewDedup) key(listingID, viewerKey string) string {
	return fmt.Sprintf("views:%s:%s", listingID, viewerKey)
}
