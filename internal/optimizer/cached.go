package optimizer

import (
	"context"
	"encoding/binary"
	"log"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// CachedOptimizer serves repeated location lists from a RouteCache.
// Cache read and write failures are logged and never fail an optimization.
type CachedOptimizer struct {
	next  ports.RouteOptimizer
	cache ports.RouteCache
}

func NewCachedOptimizer(next ports.RouteOptimizer, cache ports.RouteCache) *CachedOptimizer {
	return &CachedOptimizer{next: next, cache: cache}
}

func (c *CachedOptimizer) Optimize(ctx context.Context, locations []domain.Coordinates) (domain.RouteResult, error) {
	if c.cache == nil || len(locations) < 2 {
		return c.next.Optimize(ctx, locations)
	}

	key := LocationsKey(locations)

	hit, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Printf("route cache read failed: key=%s err=%v", key, err)
	}
	// Stale or foreign entries are ignored.
	if err == nil && ok && hit.Route.Validate(len(locations)) == nil {
		return hit, nil
	}

	res, err := c.next.Optimize(ctx, locations)
	if err != nil {
		return domain.RouteResult{}, err
	}

	if err := c.cache.Put(ctx, key, res); err != nil {
		log.Printf("route cache write failed: key=%s err=%v", key, err)
	}

	return res, nil
}

// LocationsKey hashes an ordered location list. Order matters: the same
// coordinates with a different depot produce a different key.
func LocationsKey(locations []domain.Coordinates) string {
	h := xxhash.New()

	var buf [16]byte
	for _, c := range locations {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(c.Lat))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(c.Lon))
		_, _ = h.Write(buf[:])
	}

	return "route:" + strconv.Itoa(len(locations)) + ":" + strconv.FormatUint(h.Sum64(), 16)
}
