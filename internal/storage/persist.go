package storage

import (
	"encoding/json"
	"log/slog"

	"github.com/donaldgifford/card-market/internal/metrics"
	"github.com/donaldgifford/card-market/pkg/logger"
)

// Persister wraps a Storage with a try-read/try-write contract: reads that fail
// look like misses and writes that fail are dropped. Failures are logged at
// debug level and counted, never returned.
type Persister struct {
	backend Storage
	log     *slog.Logger
}

// NewPersister wraps backend. A nil backend behaves as an always-empty store.
func NewPersister(backend Storage, log *slog.Logger) *Persister {
	return &Persister{backend: backend, log: logger.Component(log, "storage")}
}

// TryGet returns the value under key, or false on a miss or a read failure.
func (p *Persister) TryGet(key string) ([]byte, bool) {
	if p == nil || p.backend == nil {
		return nil, false
	}
	v, ok, err := p.backend.Get(key)
	if err != nil {
		p.fail("get", key, err)
		return nil, false
	}
	return v, ok
}

// TrySet stores value under key and reports whether the write succeeded.
func (p *Persister) TrySet(key string, value []byte) bool {
	if p == nil || p.backend == nil {
		return false
	}
	if err := p.backend.Set(key, value); err != nil {
		p.fail("set", key, err)
		return false
	}
	return true
}

// TryRemove deletes key and reports whether the removal succeeded.
func (p *Persister) TryRemove(key string) bool {
	if p == nil || p.backend == nil {
		return false
	}
	if err := p.backend.Remove(key); err != nil {
		p.fail("remove", key, err)
		return false
	}
	return true
}

// TryGetJSON decodes the value under key into dst. It returns false on a
// miss, a read failure, or a payload that does not decode into dst.
func (p *Persister) TryGetJSON(key string, dst any) bool {
	raw, ok := p.TryGet(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		p.fail("decode", key, err)
		return false
	}
	return true
}

// TrySetJSON encodes v and stores it under key.
func (p *Persister) TrySetJSON(key string, v any) bool {
	if p == nil {
		return false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		p.fail("encode", key, err)
		return false
	}
	return p.TrySet(key, raw)
}

func (p *Persister) fail(op, key string, err error) {
	metrics.StorageFailuresTotal.WithLabelValues(op).Inc()
	p.log.Debug("storage operation failed", "op", op, "key", key, "error", err)
}
