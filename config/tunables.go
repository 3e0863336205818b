package config

import (
	"sync"

	"github.com/swdee/go-schlemmer/spring"
)

// Tunables is the configuration shared between the render loop and the
// goroutines that adjust it, such as a file watcher or operator controls.
// The render loop takes one Snapshot per frame.
type Tunables struct {
	mu      sync.RWMutex
	cfg     Config
	version uint64
}

// NewTunables returns tunables holding a copy of cfg
func NewTunables(cfg Config) *Tunables {
	t := &Tunables{}
	t.Replace(cfg)
	return t
}

// Snapshot returns a copy of the current configuration
func (t *Tunables) Snapshot() Config {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.cfg.Clone()
}

// SnapshotVersion returns a copy of the current configuration together with
// the version it was stored under
func (t *Tunables) SnapshotVersion() (Config, uint64) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.cfg.Clone(), t.version
}

// Version returns a counter incremented on every change
func (t *Tunables) Version() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.version
}

// Update applies fn to the configuration atomically.  Elasticity is clamped
// to its accepted range after fn returns.
func (t *Tunables) Update(fn func(cfg *Config)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cfg := t.cfg.Clone()
	fn(&cfg)
	t.store(cfg)
}

// Replace swaps in a whole new configuration
func (t *Tunables) Replace(cfg Config) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.store(cfg.Clone())
}

// store saves cfg, caller must hold the write lock
func (t *Tunables) store(cfg Config) {
	cfg.Spring.Elasticity = spring.ClampElasticity(cfg.Spring.Elasticity,
		spring.ElasticityMin, spring.ElasticityMax)

	t.cfg = cfg
	t.version++
}
