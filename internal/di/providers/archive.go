package providers

import (
	"github.com/samber/do/v2"

	"github.com/tapevault/tapevault-server/internal/catalog"
	"github.com/tapevault/tapevault-server/internal/config"
	"github.com/tapevault/tapevault-server/internal/logger"
	"github.com/tapevault/tapevault-server/internal/processor"
	"github.com/tapevault/tapevault-server/internal/tags"
)

// ProvideTagReader provides the audio tag reader.
func ProvideTagReader(i do.Injector) (tags.Reader, error) {
	return tags.NewFileReader(), nil
}

// ProvideFolderParser provides the folder-name parser.
func ProvideFolderParser(i do.Injector) (*processor.FolderParser, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return processor.NewFolderParser(cfg.Library.Artists...), nil
}

// ProvideClassifier provides the album classifier.
func ProvideClassifier(i do.Injector) (*processor.Classifier, error) {
	cfg := do.MustInvoke[*config.Config](i)
	parser := do.MustInvoke[*processor.FolderParser](i)
	return processor.NewClassifier(cfg.Library.OfficialPath, cfg.Library.StudioDirName, parser), nil
}

// ProvideIndexer provides the library indexer.
func ProvideIndexer(i do.Injector) (*catalog.Indexer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	reader := do.MustInvoke[tags.Reader](i)
	classifier := do.MustInvoke[*processor.Classifier](i)

	return catalog.NewIndexer(log.Logger, reader, classifier, cfg.Scan.Workers), nil
}
