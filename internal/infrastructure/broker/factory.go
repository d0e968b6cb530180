package broker

import (
	"context"
	"fmt"
	"strings"

	"github.com/loja/backend/internal/infrastructure/config"
	"github.com/loja/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// NewClient creates the Client selected by cfg.Broker.Driver.
// Connection failures do not fail construction; only an unknown driver does.
func NewClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (Client, error) {
	switch strings.ToLower(cfg.Broker.Driver) {
	case DriverMQTT, "":
		logger.InstallMQTTLogger(log, cfg.Broker.Debug)
		return NewMQTTClient(cfg.Broker, log), nil
	case DriverRedis:
		return NewRedisClient(ctx, cfg.Redis, cfg.Broker, log), nil
	case DriverNone:
		log.Warn("Broker disabled, orders will not reach the actuator")
		return NewDisabledClient(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Broker.Driver)
	}
}
