package compat

import (
	"fmt"

	"github.com/lixenwraith/rotlog"
)

// Builder hands out server adapters that share one rotlog.Logger
type Builder struct {
	logger *rotlog.Logger
	logCfg *rotlog.Config
	err    error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger shares an already started logger. It takes precedence over WithConfig.
func (b *Builder) WithLogger(l *rotlog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("log/compat: logger is nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig is applied to a logger created on the first build
func (b *Builder) WithConfig(cfg *rotlog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger returns the shared logger, creating and starting it once
func (b *Builder) getLogger() (*rotlog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.logger != nil {
		return b.logger, nil
	}

	cfg := b.logCfg
	if cfg == nil {
		cfg = rotlog.DefaultConfig()
	}

	l := rotlog.NewLogger()
	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	if err := l.Start(); err != nil {
		return nil, err
	}

	b.logger = l
	return l, nil
}

// BuildGnet returns a gnet logger writing through the shared logger
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP returns a fasthttp logger writing through the shared logger
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetLogger exposes the shared logger so the caller can shut it down
func (b *Builder) GetLogger() (*rotlog.Logger, error) {
	return b.getLogger()
}
