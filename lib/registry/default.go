package registry

import (
	"sync"
	"sync/atomic"
)

var (
	defaultInstance atomic.Pointer[Registry]
	defaultOnce     sync.Once
	defaultErr      error
)

// InitDefault builds the process-wide registry from cfg. Only the first call
// has any effect; later calls return the first call's error.
func InitDefault(cfg Config) error {
	defaultOnce.Do(func() {
		r, err := New(cfg)
		if err != nil {
			defaultErr = err
			log.WithError(err).Error("failed to initialize default registry")
			return
		}
		defaultInstance.Store(r)
	})
	return defaultErr
}

// Default returns the process-wide registry, initializing it with
// DefaultConfig if InitDefault was never called.
func Default() *Registry {
	if r := defaultInstance.Load(); r != nil {
		return r
	}
	if err := InitDefault(DefaultConfig()); err != nil {
		panic("registry: default instance not initialized: " + err.Error())
	}
	return defaultInstance.Load()
}
