package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/gourav132/Show-IT/adapters/event"
	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/pkg/logger"
)

const (
	publicCachePrefix = "public_profile:"
	publicCacheTTL    = 5 * time.Minute
)

var tracer = otel.Tracer("profile_usecase")

// ProfileUseCase fronts the profile repository: reads pass through, the
// public lookup goes through a redis read-through cache, and every save
// publishes a profile event so the worker can drop stale cached snapshots.
// It satisfies profile.Repository so the builder store saves through it.
type ProfileUseCase struct {
	profileRepo profile.Repository
	cache       *redis.Client
	producer    *event.Producer
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, cache *redis.Client, producer *event.Producer, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		cache:       cache,
		producer:    producer,
		logger:      log,
	}
}

func (uc *ProfileUseCase) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	return uc.profileRepo.GetByOwner(ctx, ownerID)
}

func (uc *ProfileUseCase) Create(ctx context.Context, p *profile.Profile) error {
	return uc.profileRepo.Create(ctx, p)
}

// Save overwrites the stored document with the full snapshot, then fans the
// change out. A failed event publish or cache drop never fails the save;
// the cache entry expires on its own TTL.
func (uc *ProfileUseCase) Save(ctx context.Context, p *profile.Profile) error {
	ctx, span := tracer.Start(ctx, "SaveProfile")
	defer span.End()

	if err := uc.profileRepo.Save(ctx, p); err != nil {
		span.RecordError(err)
		return err
	}

	if uc.cache != nil && p.Username != "" {
		if err := uc.cache.Del(ctx, publicCachePrefix+p.Username).Err(); err != nil {
			uc.logger.Warn("failed to drop cached public profile", zap.String("username", p.Username), zap.Error(err))
		}
	}

	if uc.producer != nil {
		go func() {
			payload := event.ProfileEventPayload{
				EventType: event.ProfileEventSaved,
				OwnerID:   p.OwnerID,
				Username:  p.Username,
			}
			if err := uc.producer.PublishProfileEvent(context.Background(), payload); err != nil {
				uc.logger.Error("failed to publish profile.saved event", err, zap.String("owner_id", p.OwnerID.String()))
			}
		}()
	}
	return nil
}

// GetByUsername serves the public viewer: cache first, repository on miss,
// fill on the way out. Cache failures degrade to the repository silently.
func (uc *ProfileUseCase) GetByUsername(ctx context.Context, username string) (*profile.Profile, error) {
	if uc.cache != nil {
		raw, err := uc.cache.Get(ctx, publicCachePrefix+username).Bytes()
		if err == nil {
			p := &profile.Profile{}
			if err := json.Unmarshal(raw, p); err == nil {
				return p, nil
			}
			uc.logger.Warn("corrupt cached public profile, refetching", zap.String("username", username))
		} else if err != redis.Nil {
			uc.logger.Warn("public profile cache read failed", zap.String("username", username), zap.Error(err))
		}
	}

	p, err := uc.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(p); err == nil {
			if err := uc.cache.Set(ctx, publicCachePrefix+username, raw, publicCacheTTL).Err(); err != nil {
				uc.logger.Warn("public profile cache fill failed", zap.String("username", username), zap.Error(err))
			}
		}
	}
	return p, nil
}
