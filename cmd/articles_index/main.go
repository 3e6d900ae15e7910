package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"

	"github.com/2beens/healthcalc/internal/articles"
	"github.com/2beens/healthcalc/internal/logging"
	"github.com/2beens/healthcalc/pkg"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Builds index.toml for an articles directory, to be uploaded together with
// the .md files to the content server used by the remote articles source.
func main() {
	dir := flag.String("dir", "./content/articles", "articles directory")
	out := flag.String("out", "", "index file path (default: <dir>/index.toml)")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogLevel: *logLevel,
	})

	if isDir, err := pkg.PathExists(*dir, true); err != nil || !isDir {
		log.Fatalf("articles dir [%s] not usable: %v", *dir, err)
	}

	if *out == "" {
		*out = filepath.Join(*dir, "index.toml")
	}

	buf := &bytes.Buffer{}
	count, err := articles.WriteIndex(buf, *dir)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			log.Errorf("articles index: %s", e)
		}
		log.Fatalln("index not written")
	}

	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		log.Fatalf("write index file: %s", err)
	}

	log.Infof("indexed %d articles into [%s]", count, *out)
}
