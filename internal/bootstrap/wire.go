//go:build wireinject

package bootstrap

import (
	"context"

	"github.com/google/wire"
)

var appSet = wire.NewSet(
	ProvideLogger,
	ProvideConfig,
	ProvideHTTPClient,
	ProvidePriceFetcher,
	ProvideMessenger,
	ProvideStateBackend,
	ProvideMetrics,
	ProvideService,
	ProvideWorker,
	ProvideHTTPServer,
	ProvideApp,
)

// InitApp builds the bot and its status server. The cleanup closes the
// state backend.
func InitApp(ctx context.Context) (*App, func(), error) {
	wire.Build(appSet)
	return nil, nil, nil
}
