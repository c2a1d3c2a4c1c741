package cli

import (
	"context"

	"go.uber.org/zap"

	"github.com/hugovk/clufter/internal/config"
	"github.com/hugovk/clufter/internal/discovery"
	"github.com/hugovk/clufter/internal/metadata"
	"github.com/hugovk/clufter/internal/rules"
)

// loadCatalog runs one discovery pass with the resolved settings.
func loadCatalog(ctx context.Context, s config.Settings, log *zap.Logger) (*rules.Catalog, *discovery.Result, error) {
	extractor := metadata.NewExtractor(s.ExtractTimeout, s.MaxMetadataBytes, log)
	d := discovery.New(discovery.Options{
		Dir:         s.RuleDir,
		RawMetadata: s.RawMetadata,
		MetadataExt: s.MetadataExt,
	}, extractor, log)

	catalog := rules.NewCatalog()
	res, err := d.Discover(ctx, catalog)
	if err != nil {
		catalog.Destroy()
		return nil, res, err
	}
	return catalog, res, nil
}

// currentCatalog loads the catalog for a command.
func currentCatalog(ctx context.Context) (*rules.Catalog, *discovery.Result, error) {
	s, err := config.Current()
	if err != nil {
		return nil, nil, err
	}
	return loadCatalog(ctx, s, logger)
}
