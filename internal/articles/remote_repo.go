package articles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/2beens/healthcalc/internal/telemetry/metrics"
	"github.com/2beens/healthcalc/internal/telemetry/tracing"

	"github.com/BurntSushi/toml"
	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// the remote content server layout:
//	<base>/index.toml     article metadata, [[articles]] tables
//	<base>/<slug>.md      article with front matter, same format as on disk

const (
	oneHour             = 60 * 60
	articlesCacheExpire = oneHour
	indexCacheKey       = "index"
	remoteIndexFile     = "index.toml"
	sourceRemote        = "remote"

	remoteCacheSize    = 64 << 20
	// freecache refuses entries (key and header included) over 1/1024 of its size
	maxCacheEntryBytes = remoteCacheSize / 1024
	maxRemoteBodyBytes = maxCacheEntryBytes - 1024
	maxSlugLength      = 200
)

var ErrRemoteBodyTooLarge = errors.New("content server response too large")

var _ articleRepo = (*RemoteRepo)(nil)

type remoteIndex struct {
	Articles []Article `toml:"articles"`
}

type RemoteRepo struct {
	// serializes fetch-and-cache, so concurrent misses hit the
	// content server once
	mu             sync.Mutex
	baseURL        string
	httpClient     *http.Client
	cache          *freecache.Cache
	metricsManager *metrics.Manager
}

func NewRemoteRepo(baseURL string, httpClient *http.Client, metricsManager *metrics.Manager) *RemoteRepo {
	return &RemoteRepo{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		httpClient:     httpClient,
		cache:          freecache.NewCache(remoteCacheSize),
		metricsManager: metricsManager,
	}
}

func (r *RemoteRepo) All(ctx context.Context) ([]*Article, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remoteRepo.All")
	var err error
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := r.fetchCached(ctx, indexCacheKey, remoteIndexFile)
	if err != nil {
		return nil, err
	}

	index := &remoteIndex{}
	if _, err = toml.Decode(string(raw), index); err != nil {
		// don't keep serving a broken index from cache
		r.cache.Del([]byte(indexCacheKey))
		return nil, fmt.Errorf("decode articles index: %w", err)
	}

	listed := make([]*Article, 0, len(index.Articles))
	for i := range index.Articles {
		if index.Articles[i].Slug == "" {
			continue
		}
		listed = append(listed, index.Articles[i].withoutContent())
	}
	sortNewestFirst(listed)

	return listed, nil
}

func (r *RemoteRepo) Count(ctx context.Context) (int, error) {
	all, err := r.All(ctx)
	if err != nil {
		return -1, err
	}
	return len(all), nil
}

func (r *RemoteRepo) GetPage(ctx context.Context, pageNum, size int) ([]*Article, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remoteRepo.GetPage")
	span.SetAttributes(attribute.Int("page", pageNum))
	span.SetAttributes(attribute.Int("size", size))
	defer span.End()

	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	return page(all, pageNum, size), nil
}

func (r *RemoteRepo) Get(ctx context.Context, slug string) (*Article, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remoteRepo.Get")
	span.SetAttributes(attribute.String("slug", slug))
	var err error
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !validSlug(slug) {
		err = ErrArticleNotFound
		return nil, err
	}

	raw, err := r.fetchCached(ctx, "article::"+slug, url.PathEscape(slug)+articleFileExt)
	if err != nil {
		return nil, err
	}

	article, err := ParseArticle(slug, raw)
	if err != nil {
		r.cache.Del([]byte("article::" + slug))
		return nil, fmt.Errorf("parse remote article %s: %w", slug, err)
	}

	return article, nil
}

// fetchCached returns the cached bytes for key or downloads path from the
// content server and caches them for an hour.
func (r *RemoteRepo) fetchCached(ctx context.Context, key, path string) ([]byte, error) {
	if cached, err := r.cache.Get([]byte(key)); err == nil {
		log.Tracef("remote articles: %s found in cache", key)
		r.countFetch(outcomeHit)
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// might have been cached while waiting for the lock
	if cached, err := r.cache.Get([]byte(key)); err == nil {
		r.countFetch(outcomeHit)
		return cached, nil
	}

	raw, err := r.fetch(ctx, path)
	if err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			r.countFetch(outcomeNotFound)
		} else {
			r.countFetch(outcomeError)
		}
		return nil, err
	}
	r.countFetch(outcomeMiss)

	if err := r.cache.Set([]byte(key), raw, articlesCacheExpire); err != nil {
		log.Errorf("remote articles: failed to cache %s: %s", key, err)
	}

	return raw, nil
}

func (r *RemoteRepo) fetch(ctx context.Context, path string) ([]byte, error) {
	reqURL := r.baseURL + "/" + path
	log.Debugf("remote articles: fetching %s", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrArticleNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("content server responded with %d for %s", resp.StatusCode, path)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read content server response: %w", err)
	}
	if len(raw) > maxRemoteBodyBytes {
		return nil, fmt.Errorf("%s over %d bytes: %w", path, maxRemoteBodyBytes, ErrRemoteBodyTooLarge)
	}

	return raw, nil
}

func (r *RemoteRepo) countFetch(outcome string) {
	if r.metricsManager == nil {
		return
	}
	r.metricsManager.CounterArticleFetches.WithLabelValues(sourceRemote, outcome).Inc()
}

// validSlug keeps slugs to lowercase letters, digits and dashes.
func validSlug(slug string) bool {
	if slug == "" || len(slug) > maxSlugLength {
		return false
	}
	for _, c := range slug {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}
