package pim

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/llehouerou/go-pim-client/internal/logging"
	"github.com/llehouerou/go-pim-client/querybuilder"
)

// BrandSource returns the brands available in a set of categories.
type BrandSource interface {
	Brands(ctx context.Context, categoryIDs []string) ([]Brand, error)
}

// BrandService fetches brands over GraphQL.
type BrandService struct {
	client *Client
}

// NewBrandService returns a BrandService sending through client.
func NewBrandService(client *Client) *BrandService {
	return &BrandService{client: client}
}

// Brands returns the brands of the given categories.
func (s *BrandService) Brands(ctx context.Context, categoryIDs []string) ([]Brand, error) {
	query := querybuilder.BuildGetBrandsQuery(nil)

	var out struct {
		GetBrands []Brand `json:"getBrands"`
	}
	variables := map[string]any{"categoryIds": categoryIDs}
	if err := s.client.Exec(ctx, query, &out, variables); err != nil {
		return nil, fmt.Errorf("get brands: %w", err)
	}
	return out.GetBrands, nil
}

const (
	defaultBrandCacheSize = 128
	brandFetchTimeout     = 30 * time.Second
)

// BrandCache is a BrandSource caching another one per category set.
//
// Entries are bounded both in number (least recently used are evicted) and
// in age (ttl). Concurrent misses on the same category set share one fetch.
// The category order does not matter.
type BrandCache struct {
	source BrandSource
	cache  *expirable.LRU[string, []Brand]
	group  singleflight.Group
	log    *logrus.Entry
}

// NewBrandCache returns a cache over source holding at most size category
// sets for ttl each. A non-positive size uses a default of 128; a zero ttl
// never expires entries.
func NewBrandCache(source BrandSource, size int, ttl time.Duration) *BrandCache {
	if size <= 0 {
		size = defaultBrandCacheSize
	}
	c := &BrandCache{
		source: source,
		log:    logging.WithPrefix("brands"),
	}
	c.cache = expirable.NewLRU[string, []Brand](size, c.onEvict, ttl)
	return c
}

func (c *BrandCache) onEvict(key string, _ []Brand) {
	c.log.WithField("categories", key).Debug("brand cache entry evicted")
}

// Brands returns the brands of categoryIDs, from the cache when possible.
// The returned slice is owned by the caller.
//
// A shared fetch runs detached from any one caller and is bounded by
// brandFetchTimeout. Each caller stops waiting when its own ctx is done.
func (c *BrandCache) Brands(ctx context.Context, categoryIDs []string) ([]Brand, error) {
	ids := slices.Clone(categoryIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	key := strings.Join(ids, ",")

	if brands, ok := c.cache.Get(key); ok {
		return slices.Clone(brands), nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(fetchCtx, brandFetchTimeout)
		defer cancel()
		brands, err := c.source.Brands(ctx, ids)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, brands)
		return brands, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		c.log.WithFields(logrus.Fields{"categories": key, "shared": res.Shared}).Debug("brand cache miss")
		return slices.Clone(res.Val.([]Brand)), nil
	}
}

// Len returns the number of cached category sets.
func (c *BrandCache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached entry.
func (c *BrandCache) Purge() {
	c.cache.Purge()
}
