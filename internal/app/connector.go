package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bft-labs/xhspost/internal/domain"
	"github.com/bft-labs/xhspost/internal/ports"
)

// EndpointResolver reads the browser-level control endpoint from the
// DevTools handshake.
type EndpointResolver interface {
	ControlEndpoint(ctx context.Context, endpoint domain.DebugEndpoint) (string, error)
}

// ConnectStrategy produces the address to dial for a port.
type ConnectStrategy struct {
	Name     string
	Endpoint func(ctx context.Context, port int) (string, error)
}

// DefaultStrategies returns localhost, then 127.0.0.1, then the
// handshake-derived WebSocket endpoint.
func DefaultStrategies(resolver EndpointResolver) []ConnectStrategy {
	strategies := make([]ConnectStrategy, 0, len(domain.LoopbackHosts)+1)
	for _, host := range domain.LoopbackHosts {
		host := host
		strategies = append(strategies, ConnectStrategy{
			Name: host,
			Endpoint: func(ctx context.Context, port int) (string, error) {
				return domain.DebugEndpoint{Host: host, Port: port}.HTTPURL(), nil
			},
		})
	}
	strategies = append(strategies, ConnectStrategy{
		Name: "handshake",
		Endpoint: func(ctx context.Context, port int) (string, error) {
			return resolver.ControlEndpoint(ctx, domain.DebugEndpoint{Host: domain.HostLocalhost, Port: port})
		},
	})
	return strategies
}

// Connector tries each strategy once, in order, and stops at the first
// session it gets.
type Connector struct {
	dialer     ports.BrowserDialer
	strategies []ConnectStrategy
	logger     ports.Logger
}

// NewConnector creates a connector.
func NewConnector(dialer ports.BrowserDialer, strategies []ConnectStrategy, logger ports.Logger) *Connector {
	return &Connector{
		dialer:     dialer,
		strategies: strategies,
		logger:     logger,
	}
}

// Connect returns a session or an error wrapping ErrConnectExhausted that
// joins every strategy's failure.
func (c *Connector) Connect(ctx context.Context, port int) (ports.BrowserSession, string, error) {
	var errs []error
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		endpoint, err := s.Endpoint(ctx, port)
		if err != nil {
			c.logger.Warn("connect strategy unavailable", ports.String("strategy", s.Name), ports.Err(err))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
			continue
		}

		session, err := c.dialer.Dial(ctx, endpoint)
		if err != nil {
			c.logger.Warn("connect failed", ports.String("strategy", s.Name), ports.String("endpoint", endpoint), ports.Err(err))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
			continue
		}

		c.logger.Info("connected to browser", ports.String("strategy", s.Name), ports.String("endpoint", endpoint))
		return session, s.Name, nil
	}
	return nil, "", fmt.Errorf("%w: %w", domain.ErrConnectExhausted, errors.Join(errs...))
}
