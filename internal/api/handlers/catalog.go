package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/service"
)

const defaultHistoryLimit = 20

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type ChampionsResponse struct {
	Champions []service.ChampionView `json:"champions"`
	DataDate  string                 `json:"dataDate,omitempty"`
}

type SkinsetsResponse struct {
	Skinsets []service.SkinsetView `json:"skinsets"`
}

type HistoryResponse struct {
	Snapshots []*domain.SnapshotRecord `json:"snapshots"`
}

func (h *CatalogHandler) Champions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ChampionsResponse{
		Champions: h.catalogService.Champions(),
		DataDate:  h.catalogService.Catalog().DataDate(),
	})
}

func (h *CatalogHandler) Skinsets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SkinsetsResponse{Skinsets: h.catalogService.Skinsets()})
}

func (h *CatalogHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalogService.Info())
}

func (h *CatalogHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	snapshots, err := h.catalogService.History(r.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrNoDatabase) {
			http.Error(w, "Catalog history is not available", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [catalog.History]: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if snapshots == nil {
		snapshots = []*domain.SnapshotRecord{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Snapshots: snapshots})
}
