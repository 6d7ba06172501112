package session

import (
	"context"
	"log"
	"sync"
	"time"
)

// Purger removes expired sessions from a backing store.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// StartPurging calls p.PurgeExpired every interval until the returned stop
// function is called. stop cancels an in-flight purge, waits for the loop to
// exit, and may be called more than once.
func StartPurging(p Purger, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				removed, err := p.PurgeExpired(ctx)
				if err != nil {
					log.Printf("[session] purge failed: %v", err)
					continue
				}
				if removed > 0 {
					log.Printf("[session] purged %d expired sessions", removed)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
