package taxonomy

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
)

type fakeTaxonomyRepo struct {
	mu    sync.Mutex
	calls map[domain.TaxonomyKind]int
	fail  domain.TaxonomyKind
}

func newFakeTaxonomyRepo() *fakeTaxonomyRepo {
	return &fakeTaxonomyRepo{calls: map[domain.TaxonomyKind]int{}}
}

func (f *fakeTaxonomyRepo) ListOptions(_ context.Context, kind domain.TaxonomyKind) ([]domain.TaxonomyOption, error) {
	f.mu.Lock()
	f.calls[kind]++
	f.mu.Unlock()
	if kind == f.fail {
		return nil, errors.New("relation missing")
	}
	return []domain.TaxonomyOption{{ID: 1, Name: string(kind) + "-1"}}, nil
}

func TestSnapshotLoadsEveryKind(t *testing.T) {
	repo := newFakeTaxonomyRepo()
	loader := NewLoader(repo, nil, zap.NewNop(), time.Minute)

	snapshot, err := loader.Snapshot(context.Background())
	require.NoError(t, err)

	for _, kind := range domain.TaxonomyKinds {
		assert.Equal(t, 1, repo.calls[kind], string(kind))
		opts := snapshot.Options(kind)
		require.Len(t, opts, 1)
		assert.Equal(t, string(kind)+"-1", opts[0].Name)
	}
}

func TestSnapshotFailsWhenAnyKindFails(t *testing.T) {
	repo := newFakeTaxonomyRepo()
	repo.fail = domain.KindPriority
	loader := NewLoader(repo, nil, zap.NewNop(), time.Minute)

	_, err := loader.Snapshot(context.Background())
	assert.Error(t, err)
}

func TestSnapshotNameLookup(t *testing.T) {
	loader := NewLoader(newFakeTaxonomyRepo(), nil, zap.NewNop(), time.Minute)

	snapshot, err := loader.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "categories-1", snapshot.Name(domain.KindCategory, 1))
	assert.Equal(t, "N/A", snapshot.Name(domain.KindCategory, 99))
}
