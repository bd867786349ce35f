package console

import (
	"github.com/brizzai/mcp-sync-console/internal/api"
	"github.com/brizzai/mcp-sync-console/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("console",
	fx.Provide(
		func(c *api.Client) Backend { return c },
		func(cfg *config.Config) Catalog { return NewCatalog(cfg.Console.Locale) },
		NewController,
	),
)
