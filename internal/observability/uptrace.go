package observability

import (
	"context"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/ruangliga/competition-engine/internal/config"
	"github.com/ruangliga/competition-engine/internal/platform/logging"
)

func noopShutdown(context.Context) error { return nil }

// InitUptrace installs the global OpenTelemetry providers with an OTLP
// exporter pointed at Uptrace. The returned function flushes and shuts the
// providers down; when exporting is disabled it is a no-op.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	switch {
	case !cfg.UptraceEnabled:
		logger.Info("trace export disabled", "reason", "UPTRACE_ENABLED=false")
		return noopShutdown, nil
	case cfg.UptraceDSN == "":
		logger.Info("trace export disabled", "reason", "UPTRACE_DSN empty")
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)

	logger.Info("trace export enabled",
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)

	return uptrace.Shutdown, nil
}
