package service

import (
	"time"

	"github.com/dom/league-skinset-finder/internal/cache"
	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/config"
	"github.com/dom/league-skinset-finder/internal/repository"
)

type Services struct {
	Catalog *CatalogService
	Resolve *ResolveService
	Share   *ShareService
	Export  *ExportService
}

// NewServices wires every service against one catalog. repos and resultCache
// may be nil.
func NewServices(cat *catalog.Catalog, repos *repository.Repositories, resultCache cache.ResultCache, cfg *config.Config) *Services {
	resolve := NewResolveService(cat, resultCache, cfg.ResolverWorkers, cfg.MaxResultRows)
	return &Services{
		Catalog: NewCatalogService(cat, repos),
		Resolve: resolve,
		Share:   NewShareService(cat, resolve, cfg.ShareSecret, time.Duration(cfg.ShareExpirationHours)*time.Hour, cfg.PublicBaseURL),
		Export:  NewExportService(),
	}
}
