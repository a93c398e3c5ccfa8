package providers

import (
	"github.com/samber/do/v2"

	"github.com/tapevault/tapevault-server/internal/catalog"
	"github.com/tapevault/tapevault-server/internal/config"
	"github.com/tapevault/tapevault-server/internal/logger"
	"github.com/tapevault/tapevault-server/internal/processor"
	"github.com/tapevault/tapevault-server/internal/service"
)

// ProvideCatalogService provides the catalog service.
func ProvideCatalogService(i do.Injector) (*service.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	songHandle := do.MustInvoke[*SongRepositoryHandle](i)
	indexer := do.MustInvoke[*catalog.Indexer](i)

	roots := catalog.Roots{
		Library:  cfg.Library.Path,
		Official: cfg.Library.OfficialPath,
	}

	return service.NewCatalog(log.Logger, storeHandle.Store, indexer, songHandle.Repository, roots, cfg.Scan.Workers), nil
}

// ProvideSongService provides the song database service.
func ProvideSongService(i do.Injector) (*service.Songs, error) {
	log := do.MustInvoke[*logger.Logger](i)
	songHandle := do.MustInvoke[*SongRepositoryHandle](i)

	return service.NewSongs(log.Logger, songHandle.Repository), nil
}

// ProvideImporterService provides the library import planner.
func ProvideImporterService(i do.Injector) (*service.Importer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	indexer := do.MustInvoke[*catalog.Indexer](i)
	classifier := do.MustInvoke[*processor.Classifier](i)
	songHandle := do.MustInvoke[*SongRepositoryHandle](i)

	return service.NewImporter(log.Logger, indexer, classifier, songHandle.Repository, cfg.Library.Path, service.NewFileCopier()), nil
}

// ProvideNormalizerService provides the normalization preview service.
func ProvideNormalizerService(i do.Injector) (*service.Normalizer, error) {
	log := do.MustInvoke[*logger.Logger](i)
	indexer := do.MustInvoke[*catalog.Indexer](i)
	classifier := do.MustInvoke[*processor.Classifier](i)
	songHandle := do.MustInvoke[*SongRepositoryHandle](i)

	return service.NewNormalizer(log.Logger, indexer, classifier, songHandle.Repository), nil
}
