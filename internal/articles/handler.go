package articles

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/healthcalc/pkg"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	outcomeHit      = "hit"
	outcomeMiss     = "miss"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

type ArticlesResponse struct {
	Articles []*Article `json:"articles"`
	Total    int        `json:"total"`
}

//go:generate mockgen -source=$GOFILE -destination=repo_mocks_test.go -package=articles

type articleRepo interface {
	All(ctx context.Context) ([]*Article, error)
	Count(ctx context.Context) (int, error)
	GetPage(ctx context.Context, page, size int) ([]*Article, error)
	Get(ctx context.Context, slug string) (*Article, error)
}

type Handler struct {
	repo articleRepo
}

func NewHandler(repo articleRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/all", handler.handleAll).Methods("GET").Name("all-articles")
	router.HandleFunc("/page/{page}/size/{size}", handler.handleGetPage).Methods("GET").Name("articles-page")
	router.HandleFunc("/{slug}", handler.handleGet).Methods("GET").Name("article")
}

func (handler *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	allArticles, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get all articles error: %s", err)
		http.Error(w, "get all articles error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ArticlesResponse{
		Articles: allArticles,
		Total:    len(allArticles),
	}, http.StatusOK)
}

func (handler *Handler) handleGetPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	pageStr := vars["page"]
	pageNum, err := strconv.Atoi(pageStr)
	if err != nil {
		log.Debugf("handle get articles page, from <page> param: %s", err)
		http.Error(w, "parse error, parameter <page>", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Debugf("handle get articles page, from <size> param: %s", err)
		http.Error(w, "parse error, parameter <size>", http.StatusBadRequest)
		return
	}

	log.Tracef("get articles - page %s size %s", pageStr, sizeStr)

	if pageNum < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	articles, err := handler.repo.GetPage(r.Context(), pageNum, size)
	if err != nil {
		log.Errorf("get articles page error: %s", err)
		http.Error(w, "failed to get articles", http.StatusInternalServerError)
		return
	}

	total, err := handler.repo.Count(r.Context())
	if err != nil {
		log.Errorf("get articles count error: %s", err)
		http.Error(w, "failed to get articles", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ArticlesResponse{
		Articles: articles,
		Total:    total,
	}, http.StatusOK)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	article, err := handler.repo.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			http.Error(w, "article not found", http.StatusNotFound)
			return
		}
		log.Errorf("get article %s: %s", slug, err)
		http.Error(w, "failed to get article", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, article, http.StatusOK)
}
