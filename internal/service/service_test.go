package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/repo/repotest"
	"github.com/Skotchmaster/storefront/internal/service"
)

type recordedEvent struct {
	Topic string
	Key   string
	Type  string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	typ := ""
	if m, ok := event.(map[string]any); ok {
		typ, _ = m["type"].(string)
	}
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Type: typ})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memoryCache struct {
	mu      sync.Mutex
	items   []models.Product
	set     bool
	version int64
	hits    int
	skipped int

	// beforeSet runs once, outside the lock, right before SetProducts checks the version.
	beforeSet func()
}

func (c *memoryCache) GetProducts(context.Context) ([]models.Product, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set {
		return nil, false, nil
	}
	c.hits++
	return append([]models.Product(nil), c.items...), true, nil
}

func (c *memoryCache) ProductsVersion(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, nil
}

func (c *memoryCache) SetProducts(_ context.Context, version int64, items []models.Product) (bool, error) {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if version != c.version {
		c.skipped++
		return false, nil
	}
	c.items = append([]models.Product(nil), items...)
	c.set = true
	return true, nil
}

func (c *memoryCache) InvalidateProducts(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.items, c.set = nil, false
	return nil
}

type fixture struct {
	repo     *repo.GormRepo
	accounts *service.AccountService
	auth     *service.AuthService
	catalog  *service.CatalogService
	events   *recordingPublisher
	cache    *memoryCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := &repo.GormRepo{DB: repotest.InitTestDB(t)}
	events := &recordingPublisher{}
	cache := &memoryCache{}

	accounts := &service.AccountService{Repo: r, Passwords: hash.Bcrypt{Cost: 4}, Events: events}
	return &fixture{
		repo:     r,
		accounts: accounts,
		auth:     &service.AuthService{Accounts: accounts, Events: events},
		catalog:  &service.CatalogService{Repo: r, Cache: cache, Events: events},
		events:   events,
		cache:    cache,
	}
}

func strptr(s string) *string { return &s }

func f64ptr(f float64) *float64 { return &f }

func countRole(t *testing.T, f *fixture, role string) int {
	t.Helper()
	users, err := f.accounts.ListUsers(context.Background())
	require.NoError(t, err)
	n := 0
	for _, u := range users {
		if u.Role == role {
			n++
		}
	}
	return n
}
