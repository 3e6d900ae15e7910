package articles

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// WriteIndex builds the index.toml served next to the article files for
// the remote source. Unlike the disk repo, any broken file fails the build.
func WriteIndex(w io.Writer, dir string) (int, error) {
	loaded, err := loadArticlesDir(dir)
	if err != nil {
		return 0, err
	}
	sortNewestFirst(loaded)

	index := remoteIndex{Articles: make([]Article, 0, len(loaded))}
	for _, a := range loaded {
		index.Articles = append(index.Articles, *a.withoutContent())
	}

	if err := toml.NewEncoder(w).Encode(index); err != nil {
		return 0, fmt.Errorf("encode articles index: %w", err)
	}

	return len(index.Articles), nil
}
