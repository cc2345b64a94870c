package db

import (
	"context"
	"fmt"
	"time"
)

// toKey converts an int64 ID into a string format suitable for use as a cache key.
func toKey(id int64) string {
	return fmt.Sprintf("%d", id)
}

// Ctx creates a new context with a default timeout of 5 seconds.
// It returns the context and a cancel function to release resources.
func Ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
