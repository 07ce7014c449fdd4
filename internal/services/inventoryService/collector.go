package inventoryservice

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Backend answers the three hardware queries for one platform.
type Backend interface {
	Name() string
	QueryCPU(ctx context.Context) ([]CPU, error)
	QueryMemory(ctx context.Context) ([]Memory, error)
	QueryDisk(ctx context.Context) ([]Disk, error)
}

// Collector runs one concurrent collection pass against a Backend.
type Collector struct {
	backend  Backend
	partial  bool
	logger   *slog.Logger
	now      func() time.Time
	hostname func() (string, error)
}

type Option func(*Collector)

// WithPartial keeps the kinds that succeeded when another kind fails.
// Failed kinds are recorded in Inventory.Failures instead of aborting.
func WithPartial(partial bool) Option {
	return func(c *Collector) { c.partial = partial }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewCollector(backend Backend, opts ...Option) *Collector {
	c := &Collector{
		backend:  backend,
		logger:   slog.Default(),
		now:      time.Now,
		hostname: os.Hostname,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// kindResult is what a worker hands back. The kind tag, not arrival order,
// decides where the records go.
type kindResult struct {
	kind   Kind
	cpus   []CPU
	memory []Memory
	disks  []Disk
	err    error
}

// Collect queries CPU, memory and disk concurrently and waits for all three.
// Unless partial mode is on, any failure fails the whole pass and no
// inventory is returned.
func (c *Collector) Collect(ctx context.Context) (*Inventory, error) {
	results := make(chan kindResult, len(Kinds))

	var g errgroup.Group
	for _, k := range Kinds {
		g.Go(func() error {
			start := time.Now()
			r := c.query(ctx, k)
			c.logger.Debug("query finished",
				"kind", k.String(),
				"backend", c.backend.Name(),
				"duration", time.Since(start),
				"ok", r.err == nil,
			)
			results <- r
			return r.err
		})
	}

	waitErr := g.Wait()
	close(results)

	hostname, err := c.hostname()
	if err != nil {
		c.logger.Debug("hostname unavailable", "error", err)
	}
	inv := &Inventory{
		ID:          uuid.NewString(),
		Hostname:    hostname,
		Platform:    c.backend.Name(),
		CollectedAt: c.now().UTC(),
		CPUs:        []CPU{},
		Memory:      []Memory{},
		Disks:       []Disk{},
	}

	for r := range results {
		if r.err != nil {
			if inv.Failures == nil {
				inv.Failures = make(map[Kind]error)
			}
			inv.Failures[r.kind] = r.err
			continue
		}
		// Nil results keep the empty slices so JSON shows [] not null.
		switch {
		case r.kind == KindCPU && r.cpus != nil:
			inv.CPUs = r.cpus
		case r.kind == KindMemory && r.memory != nil:
			inv.Memory = r.memory
		case r.kind == KindDisk && r.disks != nil:
			inv.Disks = r.disks
		}
	}

	if waitErr != nil && !c.partial {
		return nil, waitErr
	}

	for k, err := range inv.Failures {
		c.logger.Warn("component collection failed", "kind", k.String(), "error", err)
	}

	return inv, nil
}

func (c *Collector) query(ctx context.Context, k Kind) kindResult {
	r := kindResult{kind: k}

	switch k {
	case KindCPU:
		r.cpus, r.err = c.backend.QueryCPU(ctx)
	case KindMemory:
		r.memory, r.err = c.backend.QueryMemory(ctx)
	case KindDisk:
		r.disks, r.err = c.backend.QueryDisk(ctx)
	}

	if r.err != nil {
		r.err = &ComponentError{Kind: k, Err: r.err}
	}
	return r
}
