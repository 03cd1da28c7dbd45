// Package catalog builds the navigation catalog: deduplicated, sorted
// county and highway lists scanned out of every registered (type, district)
// feed, plus the llms.txt document rendered from them.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/californiaroad/cwwp-catalog/internal/domain"
	"github.com/californiaroad/cwwp-catalog/internal/feed"
	"github.com/californiaroad/cwwp-catalog/internal/observability"
)

// Fetcher pulls one (type, district) feed document.
type Fetcher interface {
	Pull(ctx context.Context, id domain.DataType, district int) (feed.Envelope, error)
}

// Publisher sinks the normalized items scanned during a build.
type Publisher interface {
	PublishBatch(ctx context.Context, items []domain.NormalizedItem) error
}

// Catalog is one completed scan across every registered feed.
type Catalog struct {
	Counties []string  `json:"counties"`
	Highways []string  `json:"highways"`
	BuiltAt  time.Time `json:"built_at"`
	Pulls    int       `json:"pulls"`
	Skipped  int       `json:"skipped"`
}

// Builder runs full catalog scans. Pulls are issued sequentially and
// rate-limited so a build never hammers the upstream, and any single pull
// failing skips that feed rather than failing the build.
type Builder struct {
	fetcher   Fetcher
	publisher Publisher // nil when the sink is disabled
	store     *Store
	limiter   *rate.Limiter
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewBuilder creates a catalog builder. pullDelay spaces consecutive feed
// pulls; publisher may be nil.
func NewBuilder(fetcher Fetcher, publisher Publisher, store *Store, pullDelay time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Builder {
	every := rate.Inf
	if pullDelay > 0 {
		every = rate.Every(pullDelay)
	}
	return &Builder{
		fetcher:   fetcher,
		publisher: publisher,
		store:     store,
		limiter:   rate.NewLimiter(every, 1),
		clock:     clockwork.NewRealClock(),
		logger:    logger,
		metrics:   metrics,
	}
}

// SetClock swaps the builder's time source for tests.
func (b *Builder) SetClock(c clockwork.Clock) {
	b.clock = c
}

// Build scans every registered (type, district) feed once and stores the
// resulting catalog. Failed pulls are logged and counted but never abort the
// scan; Build only errors when the context is cancelled.
func (b *Builder) Build(ctx context.Context) (Catalog, error) {
	start := b.clock.Now()

	counties := map[string]struct{}{}
	highways := map[string]struct{}{}
	var batch []domain.NormalizedItem
	cat := Catalog{}

	for _, ft := range domain.FeedTypes() {
		for _, district := range ft.Districts {
			if err := b.limiter.Wait(ctx); err != nil {
				return Catalog{}, err
			}

			env, err := b.fetcher.Pull(ctx, ft.ID, district)
			if err != nil {
				if ctx.Err() != nil {
					return Catalog{}, ctx.Err()
				}
				cat.Skipped++
				b.metrics.FeedPulls.WithLabelValues(string(ft.ID), pullOutcome(err)).Inc()
				b.logger.Warn("feed pull skipped",
					"type", string(ft.ID),
					"district", district,
					"error", err,
				)
				continue
			}

			cat.Pulls++
			b.metrics.FeedPulls.WithLabelValues(string(ft.ID), "success").Inc()
			b.metrics.ItemsScanned.WithLabelValues(string(ft.ID)).Add(float64(len(env.Data)))

			for _, it := range env.Data {
				for _, c := range it.Counties() {
					counties[c] = struct{}{}
				}
				if hw, ok := it.Highway(); ok {
					highways[hw] = struct{}{}
				}
				if b.publisher != nil {
					if norm, ok := domain.Normalize(it, district); ok {
						batch = append(batch, norm)
					}
				}
			}
		}
	}

	cat.Counties = sortedKeys(counties)
	cat.Highways = sortedKeys(highways)
	cat.BuiltAt = b.clock.Now()

	b.metrics.BuildDuration.Observe(cat.BuiltAt.Sub(start).Seconds())
	b.metrics.CatalogSize.WithLabelValues("counties").Set(float64(len(cat.Counties)))
	b.metrics.CatalogSize.WithLabelValues("highways").Set(float64(len(cat.Highways)))

	b.store.Set(cat)
	b.logger.Info("catalog built",
		"counties", len(cat.Counties),
		"highways", len(cat.Highways),
		"pulls", cat.Pulls,
		"skipped", cat.Skipped,
	)

	if b.publisher != nil && len(batch) > 0 {
		if err := b.publisher.PublishBatch(ctx, batch); err != nil {
			b.metrics.PublishErrors.Inc()
			b.logger.Error("publish batch failed", "items", len(batch), "error", err)
		} else {
			b.metrics.ItemsPublished.Add(float64(len(batch)))
		}
	}

	return cat, nil
}

// Run builds immediately, then rebuilds on the given interval until the
// context is cancelled.
func (b *Builder) Run(ctx context.Context, interval time.Duration) error {
	for {
		if _, err := b.Build(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-b.clock.After(interval):
		}
	}
}

func pullOutcome(err error) string {
	if errors.Is(err, feed.ErrParse) {
		return "parse_error"
	}
	return "upstream_error"
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
