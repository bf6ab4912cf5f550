package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gourav132/Show-IT/internal/domain/project"
	"github.com/gourav132/Show-IT/pkg/logger"
)

func projectChannel(ownerID uuid.UUID) string {
	return fmt.Sprintf("projects:%s", ownerID.String())
}

// ProjectFeed implements project.Watcher and project.ChangeNotifier over a
// redis pub/sub channel per owner. Watchers never receive deltas: each
// notification triggers a fresh ListByOwner and the full result set is
// re-delivered, so a consumer holding only the latest slice is always
// consistent.
type ProjectFeed struct {
	rdb    *redis.Client
	repo   project.Repository
	logger logger.Logger
}

func NewProjectFeed(rdb *redis.Client, repo project.Repository, log logger.Logger) *ProjectFeed {
	return &ProjectFeed{rdb: rdb, repo: repo, logger: log}
}

// Notify marks the owner's project collection dirty. The payload carries no
// data, it only wakes subscribers up.
func (f *ProjectFeed) Notify(ctx context.Context, ownerID uuid.UUID) error {
	return f.rdb.Publish(ctx, projectChannel(ownerID), "changed").Err()
}

// Watch subscribes to the owner's channel and delivers the current result set
// immediately, then again after every notification. Updates are dropped, not
// queued, when the consumer lags: only the latest full set matters.
func (f *ProjectFeed) Watch(ctx context.Context, ownerID uuid.UUID) (<-chan []*project.Project, func(), error) {
	initial, err := f.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}

	sub := f.rdb.Subscribe(ctx, projectChannel(ownerID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, nil, err
	}

	updates := make(chan []*project.Project, 1)
	updates <- initial

	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			sub.Close()
		})
	}

	go func() {
		defer close(updates)
		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				stop()
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				list, err := f.repo.ListByOwner(context.Background(), ownerID)
				if err != nil {
					f.logger.Warn("project feed refetch failed", zap.String("owner_id", ownerID.String()), zap.Error(err))
					continue
				}
				select {
				case updates <- list:
				default:
					select {
					case <-updates:
					default:
					}
					updates <- list
				}
			}
		}
	}()

	return updates, stop, nil
}
