package articles

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/2beens/healthcalc/internal/telemetry/metrics"
	"github.com/2beens/healthcalc/internal/telemetry/tracing"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

const (
	articleFileExt = ".md"
	sourceDisk     = "disk"
)

var _ articleRepo = (*DiskRepo)(nil)

// DiskRepo serves articles from markdown files in a single directory.
// Files are parsed once, Reload picks up changes.
type DiskRepo struct {
	dir            string
	metricsManager *metrics.Manager

	mutex    sync.RWMutex
	articles []*Article
	bySlug   map[string]*Article
}

func NewDiskRepo(dir string, metricsManager *metrics.Manager) (*DiskRepo, error) {
	r := &DiskRepo{
		dir:            dir,
		metricsManager: metricsManager,
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads the directory. Broken files are logged and skipped, only
// an unreadable directory fails the reload.
func (r *DiskRepo) Reload() error {
	loaded, err := loadArticlesDir(r.dir)
	if loaded == nil && err != nil {
		return err
	}
	if err != nil {
		for _, e := range multierr.Errors(err) {
			log.Errorf("articles: skipping %s", e)
		}
	}

	sortNewestFirst(loaded)
	bySlug := make(map[string]*Article, len(loaded))
	for _, a := range loaded {
		bySlug[a.Slug] = a
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.articles = loaded
	r.bySlug = bySlug

	log.Debugf("articles: loaded %d articles from %s", len(loaded), r.dir)

	return nil
}

// loadArticlesDir parses every markdown file in dir. It returns whatever
// parsed fine together with all per-file errors combined. The returned
// slice is nil only when the directory itself could not be read.
func loadArticlesDir(dir string) ([]*Article, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read articles dir: %w", err)
	}

	loaded := make([]*Article, 0, len(entries))
	seen := make(map[string]string)
	var errs error
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != articleFileExt {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read %s: %w", entry.Name(), err))
			continue
		}

		article, err := ParseArticle(strings.TrimSuffix(entry.Name(), articleFileExt), raw)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("parse %s: %w", entry.Name(), err))
			continue
		}

		if other, dup := seen[article.Slug]; dup {
			errs = multierr.Append(errs, fmt.Errorf("parse %s: slug %q already used by %s", entry.Name(), article.Slug, other))
			continue
		}
		seen[article.Slug] = entry.Name()

		loaded = append(loaded, article)
	}

	return loaded, errs
}

func (r *DiskRepo) All(ctx context.Context) ([]*Article, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskRepo.All")
	defer span.End()

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	listed := make([]*Article, 0, len(r.articles))
	for _, a := range r.articles {
		listed = append(listed, a.withoutContent())
	}
	return listed, nil
}

func (r *DiskRepo) Count(_ context.Context) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.articles), nil
}

func (r *DiskRepo) GetPage(ctx context.Context, pageNum, size int) ([]*Article, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "diskRepo.GetPage")
	span.SetAttributes(attribute.Int("page", pageNum))
	span.SetAttributes(attribute.Int("size", size))
	defer span.End()

	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	return page(all, pageNum, size), nil
}

func (r *DiskRepo) Get(ctx context.Context, slug string) (*Article, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskRepo.Get")
	span.SetAttributes(attribute.String("slug", slug))
	defer span.End()

	r.mutex.RLock()
	article, ok := r.bySlug[slug]
	r.mutex.RUnlock()

	if !ok {
		r.countFetch(outcomeNotFound)
		return nil, ErrArticleNotFound
	}

	r.countFetch(outcomeHit)
	found := *article
	return &found, nil
}

func (r *DiskRepo) countFetch(outcome string) {
	if r.metricsManager == nil {
		return
	}
	r.metricsManager.CounterArticleFetches.WithLabelValues(sourceDisk, outcome).Inc()
}
