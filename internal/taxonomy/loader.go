// Package taxonomy loads the reference data snapshot a dashboard session
// works against.
package taxonomy

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
	"github.com/hanifnrh/helpdesk-bumi/internal/repository"
)

const cacheKeyPrefix = "taxonomy:"

// Loader assembles Taxonomy snapshots. The eight reference lists are
// independent reads, so they load concurrently and join before the
// snapshot is built. A Redis read-through cache sits in front of the
// store; cache failures degrade to direct reads.
type Loader struct {
	repo   repository.TaxonomyRepository
	cache  *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewLoader constructs a loader. cache may be nil to disable caching.
func NewLoader(repo repository.TaxonomyRepository, cache *redis.Client, logger *zap.Logger, ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Loader{repo: repo, cache: cache, logger: logger, ttl: ttl}
}

// Snapshot fans out over every taxonomy kind and joins the results into a
// read-only snapshot. Any single failed list fails the whole load.
func (l *Loader) Snapshot(ctx context.Context) (*domain.Taxonomy, error) {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	options := make(map[domain.TaxonomyKind][]domain.TaxonomyOption, len(domain.TaxonomyKinds))

	for _, kind := range domain.TaxonomyKinds {
		wg.Add(1)
		go func(kind domain.TaxonomyKind) {
			defer wg.Done()
			opts, err := l.loadKind(ctx, kind)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			options[kind] = opts
		}(kind)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return domain.NewTaxonomy(options), nil
}

func (l *Loader) loadKind(ctx context.Context, kind domain.TaxonomyKind) ([]domain.TaxonomyOption, error) {
	if opts, ok := l.fromCache(ctx, kind); ok {
		return opts, nil
	}

	opts, err := l.repo.ListOptions(ctx, kind)
	if err != nil {
		return nil, err
	}
	l.toCache(ctx, kind, opts)
	return opts, nil
}

func (l *Loader) fromCache(ctx context.Context, kind domain.TaxonomyKind) ([]domain.TaxonomyOption, bool) {
	if l.cache == nil {
		return nil, false
	}
	payload, err := l.cache.Get(ctx, cacheKeyPrefix+string(kind)).Bytes()
	if err != nil {
		if err != redis.Nil {
			l.logger.Warn("taxonomy cache read failed", zap.String("kind", string(kind)), zap.Error(err))
		}
		return nil, false
	}
	var opts []domain.TaxonomyOption
	if err := json.Unmarshal(payload, &opts); err != nil {
		l.logger.Warn("taxonomy cache payload invalid", zap.String("kind", string(kind)), zap.Error(err))
		return nil, false
	}
	return opts, true
}

func (l *Loader) toCache(ctx context.Context, kind domain.TaxonomyKind, opts []domain.TaxonomyOption) {
	if l.cache == nil {
		return
	}
	payload, err := json.Marshal(opts)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, cacheKeyPrefix+string(kind), payload, l.ttl).Err(); err != nil {
		l.logger.Warn("taxonomy cache write failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}
