// Package di provides dependency injection configuration for the TapeVault server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/tapevault/tapevault-server/internal/catalog"
	"github.com/tapevault/tapevault-server/internal/config"
	"github.com/tapevault/tapevault-server/internal/di/providers"
	"github.com/tapevault/tapevault-server/internal/logger"
	"github.com/tapevault/tapevault-server/internal/processor"
	"github.com/tapevault/tapevault-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSongRepository)

	// Archive layer
	do.Provide(injector, providers.ProvideTagReader)
	do.Provide(injector, providers.ProvideFolderParser)
	do.Provide(injector, providers.ProvideClassifier)
	do.Provide(injector, providers.ProvideIndexer)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideSongService)
	do.Provide(injector, providers.ProvideNormalizerService)
	do.Provide(injector, providers.ProvideImporterService)

	// Workers
	do.Provide(injector, providers.ProvideLibraryWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SongRepositoryHandle](injector)
	_ = do.MustInvoke[*processor.FolderParser](injector)
	_ = do.MustInvoke[*processor.Classifier](injector)
	_ = do.MustInvoke[*catalog.Indexer](injector)

	// Business services
	_ = do.MustInvoke[*service.Catalog](injector)
	_ = do.MustInvoke[*service.Songs](injector)
	_ = do.MustInvoke[*service.Normalizer](injector)
	_ = do.MustInvoke[*service.Importer](injector)

	// Workers
	_ = do.MustInvoke[*providers.LibraryWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
