package classify

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"scrapper/core/pipeline"
	"scrapper/feature/scrapping/models"

	"go.uber.org/zap"
)

// Candidates are the classifiable kinds in priority order.
var Candidates = []models.EntityKind{models.KindResource, models.KindConsumable}

// Decision is the outcome of classifying one source type id.
type Decision struct {
	// Kind is the resolved kind, models.KindItem when nothing matched.
	Kind models.EntityKind
	// Matches lists every candidate that allowed the id.
	Matches []models.EntityKind
}

// Ambiguous reports whether more than one candidate allowed the id.
func (d Decision) Ambiguous() bool {
	return len(d.Matches) > 1
}

type idSet map[int]struct{}

type snapshot struct {
	allow map[models.EntityKind]idSet
	deny  map[models.EntityKind]idSet
}

func newSnapshot() *snapshot {
	s := &snapshot{
		allow: make(map[models.EntityKind]idSet),
		deny:  make(map[models.EntityKind]idSet),
	}
	for _, k := range Candidates {
		s.allow[k] = idSet{}
		s.deny[k] = idSet{}
	}
	return s
}

func (s *snapshot) addLists(l Lists) {
	for k, ids := range l.Allow {
		if set, ok := s.allow[k]; ok {
			for _, id := range ids {
				set[id] = struct{}{}
			}
		}
	}
	for k, ids := range l.Deny {
		if set, ok := s.deny[k]; ok {
			for _, id := range ids {
				set[id] = struct{}{}
			}
		}
	}
}

func (s *snapshot) addRegistry(rows []models.SourceType) {
	for _, row := range rows {
		switch row.Decision {
		case models.DecisionAllowed:
			if set, ok := s.allow[row.Kind]; ok {
				set[row.SourceTypeID] = struct{}{}
			}
		case models.DecisionBlocked:
			// A block without a kind blocks every candidate.
			for _, k := range Candidates {
				if row.Kind == "" || row.Kind == k {
					s.deny[k][row.SourceTypeID] = struct{}{}
				}
			}
		}
	}
}

// Classifier resolves source type ids to kinds.
type Classifier struct {
	mode     string
	lists    Lists
	registry Registry
	logger   *zap.Logger
	snap     atomic.Pointer[snapshot]
	now      func() time.Time
}

// New creates a classifier. Registry backed modes start from an empty
// registry snapshot until Refresh is called.
func New(mode string, lists Lists, registry Registry, logger *zap.Logger) (*Classifier, error) {
	switch mode {
	case pipeline.ClassifierLists:
	case pipeline.ClassifierRegistry, pipeline.ClassifierCombined:
		if registry == nil {
			return nil, fmt.Errorf("classifier mode %s requires a registry", mode)
		}
	default:
		return nil, fmt.Errorf("unknown classifier mode: %q", mode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Classifier{
		mode:     mode,
		lists:    lists,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
	c.snap.Store(c.build(nil))
	return c, nil
}

func (c *Classifier) usesLists() bool {
	return c.mode == pipeline.ClassifierLists || c.mode == pipeline.ClassifierCombined
}

func (c *Classifier) usesRegistry() bool {
	return c.mode == pipeline.ClassifierRegistry || c.mode == pipeline.ClassifierCombined
}

func (c *Classifier) build(rows []models.SourceType) *snapshot {
	s := newSnapshot()
	if c.usesLists() {
		s.addLists(c.lists)
	}
	if c.usesRegistry() {
		s.addRegistry(rows)
	}
	return s
}

// Classify resolves typeID against the current snapshot.
func (c *Classifier) Classify(typeID int) Decision {
	s := c.snap.Load()
	d := Decision{Kind: models.KindItem}

	for _, k := range Candidates {
		if _, denied := s.deny[k][typeID]; denied {
			continue
		}
		if _, allowed := s.allow[k][typeID]; allowed {
			d.Matches = append(d.Matches, k)
		}
	}
	if len(d.Matches) > 0 {
		d.Kind = d.Matches[0]
	}
	return d
}

// Refresh reloads the registry into a new snapshot.
func (c *Classifier) Refresh(ctx context.Context) error {
	if !c.usesRegistry() {
		return nil
	}
	rows, err := c.registry.Load(ctx)
	if err != nil {
		return err
	}
	c.snap.Store(c.build(rows))
	c.logger.Debug("Classifier snapshot refreshed", zap.Int("registry_rows", len(rows)))
	return nil
}

// Observe records a sighting of typeID in the registry, when one is configured.
func (c *Classifier) Observe(ctx context.Context, typeID int) error {
	if c.registry == nil {
		return nil
	}
	return c.registry.Observe(ctx, typeID, c.now().UTC())
}

// SetDecision stores a decision for typeID and refreshes the snapshot.
func (c *Classifier) SetDecision(ctx context.Context, typeID int, kind models.EntityKind, decision string) error {
	if c.registry == nil {
		return fmt.Errorf("classifier has no registry")
	}
	switch decision {
	case models.DecisionAllowed, models.DecisionBlocked, models.DecisionPending:
	default:
		return fmt.Errorf("invalid decision: %q", decision)
	}
	if kind != "" && !isCandidate(kind) {
		return fmt.Errorf("%q is not a classifiable kind", kind)
	}
	if decision == models.DecisionAllowed && kind == "" {
		return fmt.Errorf("an allowed source type needs a kind")
	}
	if err := c.registry.SetDecision(ctx, typeID, kind, decision, c.now().UTC()); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Types lists registry rows, filtered by decision when not empty.
func (c *Classifier) Types(ctx context.Context, decision string) ([]models.SourceType, error) {
	if c.registry == nil {
		return nil, fmt.Errorf("classifier has no registry")
	}
	rows, err := c.registry.Load(ctx)
	if err != nil {
		return nil, err
	}
	if decision == "" {
		return rows, nil
	}
	out := rows[:0]
	for _, r := range rows {
		if r.Decision == decision {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceTypeID < out[j].SourceTypeID })
	return out, nil
}

// HasRegistry reports whether a registry backs the classifier.
func (c *Classifier) HasRegistry() bool {
	return c.registry != nil
}

// Mode returns the configured authority.
func (c *Classifier) Mode() string {
	return c.mode
}

func isCandidate(k models.EntityKind) bool {
	for _, c := range Candidates {
		if c == k {
			return true
		}
	}
	return false
}
