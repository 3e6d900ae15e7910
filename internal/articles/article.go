package articles

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrNoFrontMatter   = errors.New("article front matter missing")
)

const (
	frontMatterDelimiter = "+++"
	wordsPerMinute       = 200
)

type Article struct {
	Slug           string    `json:"slug" toml:"slug"`
	Title          string    `json:"title" toml:"title"`
	Category       string    `json:"category" toml:"category"`
	Tags           []string  `json:"tags" toml:"tags"`
	Summary        string    `json:"summary" toml:"summary"`
	PublishedAt    time.Time `json:"published_at" toml:"published_at"`
	ReadingMinutes int       `json:"reading_minutes" toml:"reading_minutes"`
	// Content is the markdown body, left empty in listings.
	Content string `json:"content,omitempty" toml:"-"`
}

// ParseArticle reads a markdown document starting with a TOML front matter
// block fenced by +++ lines. The slug from the front matter wins over the
// one derived from the file name.
func ParseArticle(slug string, raw []byte) (*Article, error) {
	raw = bytes.TrimLeft(raw, "\ufeff \t\r\n")
	if !bytes.HasPrefix(raw, []byte(frontMatterDelimiter)) {
		return nil, ErrNoFrontMatter
	}

	rest := raw[len(frontMatterDelimiter):]
	end := bytes.Index(rest, []byte("\n"+frontMatterDelimiter))
	if end < 0 {
		return nil, fmt.Errorf("unterminated front matter: %w", ErrNoFrontMatter)
	}
	frontMatter := rest[:end]
	body := rest[end+1+len(frontMatterDelimiter):]

	article := &Article{}
	if _, err := toml.Decode(string(frontMatter), article); err != nil {
		return nil, fmt.Errorf("decode front matter: %w", err)
	}

	if article.Slug == "" {
		article.Slug = slug
	}
	if article.Slug == "" {
		return nil, errors.New("article slug empty")
	}
	if article.Title == "" {
		return nil, fmt.Errorf("article %s: title empty", article.Slug)
	}

	article.Content = strings.TrimSpace(string(body))
	if article.ReadingMinutes <= 0 {
		article.ReadingMinutes = ReadingMinutes(article.Content)
	}

	return article, nil
}

// ReadingMinutes estimates reading time, never less than a minute.
func ReadingMinutes(content string) int {
	words := len(strings.Fields(content))
	return max(1, int(math.Ceil(float64(words)/wordsPerMinute)))
}

// withoutContent returns a listing copy of the article.
func (a *Article) withoutContent() *Article {
	listed := *a
	listed.Content = ""
	return &listed
}

// sortNewestFirst orders by publish date desc, slug asc on ties.
func sortNewestFirst(articles []*Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].PublishedAt.Equal(articles[j].PublishedAt) {
			return articles[i].Slug < articles[j].Slug
		}
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}

// page cuts a page out of already sorted articles. A last page that would
// be short is shifted back so it is always full, and if everything fits in
// one page, everything is returned.
func page(articles []*Article, pageNum, size int) []*Article {
	count := len(articles)
	if count <= size {
		return articles
	}

	lastOffset := count - size
	offset := lastOffset
	// compared before multiplying so huge page numbers can't overflow
	if pageNum >= 1 && pageNum-1 <= lastOffset/size {
		offset = (pageNum - 1) * size
	}

	return articles[offset : offset+size]
}
