package matriz

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
)

type mockMatrizRepo struct {
	matrizes     map[string]*MatrizFiscal
	resolveCalls int
}

func (m *mockMatrizRepo) Get(ctx context.Context, id int64) (*MatrizFiscal, error) {
	return nil, httpx.ErrNotFound
}

func (m *mockMatrizRepo) List(ctx context.Context, req ListMatrizesRequest) ([]MatrizFiscal, int, error) {
	return nil, 0, nil
}

func (m *mockMatrizRepo) Create(ctx context.Context, mf MatrizFiscal) (int64, error) {
	return 0, nil
}

func (m *mockMatrizRepo) Update(ctx context.Context, id int64, mf MatrizFiscal) error {
	return nil
}

func (m *mockMatrizRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (m *mockMatrizRepo) Resolve(ctx context.Context, natureza, uf string) (*MatrizFiscal, error) {
	m.resolveCalls++
	mf, ok := m.matrizes[natureza+":"+uf]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return mf, nil
}

func newCacheFixture(t *testing.T) (*ResolverCache, *mockMatrizRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &mockMatrizRepo{matrizes: map[string]*MatrizFiscal{
		"VENDA:SP": {ID: 1, NaturezaOperacao: "VENDA", CFOP: "5102", CstIcms: "00", AliquotaIcms: 18},
	}}
	return NewResolverCache(client, repo, time.Minute), repo
}

func TestResolveCacheMissThenHit(t *testing.T) {
	cache, repo := newCacheFixture(t)
	ctx := context.Background()

	m1, err := cache.Resolve(ctx, "VENDA", "SP")
	require.NoError(t, err)
	assert.Equal(t, "5102", m1.CFOP)
	assert.Equal(t, 1, repo.resolveCalls)

	m2, err := cache.Resolve(ctx, "VENDA", "SP")
	require.NoError(t, err)
	assert.Equal(t, m1.ID, m2.ID)
	assert.Equal(t, 1, repo.resolveCalls, "second lookup must be served from cache")
}

func TestResolveCacheNotFoundNotCached(t *testing.T) {
	cache, repo := newCacheFixture(t)
	ctx := context.Background()

	_, err := cache.Resolve(ctx, "DEVOLUCAO", "RJ")
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	_, err = cache.Resolve(ctx, "DEVOLUCAO", "RJ")
	require.Error(t, err)
	assert.Equal(t, 2, repo.resolveCalls, "misses are not negative-cached")
}

func TestInvalidateDropsCachedEntries(t *testing.T) {
	cache, repo := newCacheFixture(t)
	ctx := context.Background()

	_, err := cache.Resolve(ctx, "VENDA", "SP")
	require.NoError(t, err)

	require.NoError(t, cache.Invalidate(ctx))

	_, err = cache.Resolve(ctx, "VENDA", "SP")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.resolveCalls, "invalidation must force a fresh lookup")
}

func TestResolveWithoutRedisFallsThrough(t *testing.T) {
	repo := &mockMatrizRepo{matrizes: map[string]*MatrizFiscal{
		"VENDA:MG": {ID: 2, NaturezaOperacao: "VENDA", CFOP: "6102"},
	}}
	cache := NewResolverCache(nil, repo, time.Minute)

	m, err := cache.Resolve(context.Background(), "VENDA", "MG")
	require.NoError(t, err)
	assert.Equal(t, "6102", m.CFOP)
}
