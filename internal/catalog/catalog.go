// Package catalog owns the network currently being served.
//
// Every load cycle reads the tables through a loader.Loader, builds a fresh
// network.Network and swaps it in atomically. Readers always see one complete
// cycle: a failed reload leaves the previous network in place. Costar lists
// are memoised per cycle in an LRU that is discarded together with the
// network it was computed from.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/costarnet/core/internal/loader"
	"github.com/costarnet/core/internal/models"
	"github.com/costarnet/core/internal/network"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNotLoaded is returned by every accessor before the first successful load.
var ErrNotLoaded = errors.New("no network loaded")

const DefaultCacheSize = 1024

// Status describes the cycle currently being served.
type Status struct {
	Version  string        `json:"version"`
	LoadedAt time.Time     `json:"loadedAt"`
	Stats    *models.Stats `json:"stats"`
}

type snapshot struct {
	network *network.Network
	costars *lru.Cache[string, []models.CostarSummary]
	status  Status
}

type Catalog struct {
	loader    loader.Loader
	logger    *slog.Logger
	cacheSize int

	current atomic.Pointer[snapshot]
	reload  sync.Mutex
}

// New creates an empty catalog. Call Reload before serving.
func New(l loader.Loader, cacheSize int, logger *slog.Logger) *Catalog {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{loader: l, logger: logger, cacheSize: cacheSize}
}

// Reload runs one load cycle. Concurrent calls are serialised.
func (c *Catalog) Reload(ctx context.Context) (Status, error) {
	c.reload.Lock()
	defer c.reload.Unlock()

	start := time.Now()

	tables, err := c.loader.Load(ctx)
	if err != nil {
		reloadsTotal.WithLabelValues("load_error").Inc()
		c.logger.Error("Failed to load tables", "error", err)
		return Status{}, fmt.Errorf("load tables: %w", err)
	}

	net, err := network.Build(tables)
	if err != nil {
		reloadsTotal.WithLabelValues("build_error").Inc()
		c.logger.Error("Failed to build network", "error", err)
		return Status{}, fmt.Errorf("build network: %w", err)
	}

	cache, err := lru.New[string, []models.CostarSummary](c.cacheSize)
	if err != nil {
		return Status{}, fmt.Errorf("create costar cache: %w", err)
	}

	snap := &snapshot{
		network: net,
		costars: cache,
		status: Status{
			Version:  uuid.NewString(),
			LoadedAt: time.Now().UTC(),
			Stats:    net.Graph.Stats,
		},
	}
	c.current.Store(snap)

	elapsed := time.Since(start)
	buildDuration.Observe(elapsed.Seconds())
	graphNodes.Set(float64(net.Graph.Stats.TotalNodes))
	graphEdges.Set(float64(net.Graph.Stats.TotalEdges))
	reloadsTotal.WithLabelValues("ok").Inc()

	c.logger.Info("Network loaded",
		"version", snap.status.Version,
		"characters", len(tables.Characters),
		"appearances", len(tables.Appearances),
		"issues", len(tables.Issues),
		"nodes", net.Graph.Stats.TotalNodes,
		"edges", net.Graph.Stats.TotalEdges,
		"duration", elapsed,
	)

	return snap.status, nil
}

func (c *Catalog) snapshot() (*snapshot, error) {
	snap := c.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

func (c *Catalog) Status() (Status, error) {
	snap, err := c.snapshot()
	if err != nil {
		return Status{}, err
	}
	return snap.status, nil
}

// Network returns the network of the current cycle.
func (c *Catalog) Network() (*network.Network, error) {
	snap, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.network, nil
}

func (c *Catalog) Graph() (*models.Graph, error) {
	snap, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.network.Graph, nil
}

// AppearedWith returns the ranked costars of name, served from the cycle's
// cache when possible.
func (c *Catalog) AppearedWith(name string) ([]models.CostarSummary, error) {
	snap, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.appearedWith(name)
}

// Detail returns the detail view for node id.
func (c *Catalog) Detail(id int) (*models.CharacterDetail, error) {
	snap, err := c.snapshot()
	if err != nil {
		return nil, err
	}

	record, err := snap.network.Character(id)
	if err != nil {
		return nil, err
	}

	costars, err := snap.appearedWith(record.Name)
	if err != nil {
		return nil, err
	}
	return snap.network.Detail(id, costars)
}

func (c *Catalog) ResolveLink(comic models.IssueID) (string, error) {
	snap, err := c.snapshot()
	if err != nil {
		return "", err
	}
	return snap.network.ResolveLink(comic)
}

func (c *Catalog) Search(query string, limit int) ([]models.SearchHit, error) {
	snap, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.network.Search(query, limit), nil
}

func (s *snapshot) appearedWith(name string) ([]models.CostarSummary, error) {
	if costars, ok := s.costars.Get(name); ok {
		costarCacheTotal.WithLabelValues("hit").Inc()
		return costars, nil
	}
	costarCacheTotal.WithLabelValues("miss").Inc()

	costars, err := s.network.AppearedWith(name)
	if err != nil {
		return nil, err
	}
	s.costars.Add(name, costars)
	return costars, nil
}
