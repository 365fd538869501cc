// Package catalog owns the ordered field list shown by the panel and
// reconciles the compile-time defaults with the user's persisted order and
// visibility.
package catalog

import (
	"iter"
	"slices"

	"github.com/rs/zerolog"

	"github.com/sisuhud/sisu-hud/internal/model"
)

// FieldStore persists field order and visibility
type FieldStore interface {
	SaveFieldState(states []model.FieldState)
}

// Catalog is the single ordered, deduplicated list of fields
type Catalog struct {
	fields []model.FieldDescriptor
	store  FieldStore
	log    zerolog.Logger
}

// New builds a catalog from defaults merged with persisted state
func New(defaults []model.FieldDescriptor, persisted []model.FieldState, store FieldStore, log zerolog.Logger) *Catalog {
	c := &Catalog{
		fields: Merge(defaults, persisted),
		store:  store,
		log:    log.With().Str("component", "catalog").Logger(),
	}
	c.log.Debug().Int("fields", len(c.fields)).Int("persisted", len(persisted)).Msg("Catalog loaded")
	return c
}

// Merge applies persisted visibility and order to defaults. Ids missing
// from persisted keep their default relative order after all persisted ids;
// persisted entries naming unknown ids are dropped.
func Merge(defaults []model.FieldDescriptor, persisted []model.FieldState) []model.FieldDescriptor {
	merged := slices.Clone(defaults)
	if len(persisted) == 0 {
		return merged
	}

	index := make(map[model.FieldID]int, len(merged))
	for i, f := range merged {
		index[f.ID] = i
	}

	rank := make(map[model.FieldID]int, len(persisted))
	for _, saved := range persisted {
		i, ok := index[saved.ID]
		if !ok {
			continue
		}
		merged[i].Visible = saved.IsVisible
		if _, seen := rank[saved.ID]; !seen {
			rank[saved.ID] = len(rank)
		}
	}

	sortByRank(merged, rank)
	return merged
}

// sortByRank stable-sorts fields by rank; unranked fields sort last.
func sortByRank(fields []model.FieldDescriptor, rank map[model.FieldID]int) {
	key := func(id model.FieldID) int {
		if r, ok := rank[id]; ok {
			return r
		}
		return len(rank)
	}
	slices.SortStableFunc(fields, func(a, b model.FieldDescriptor) int {
		return key(a.ID) - key(b.ID)
	})
}

// Hide marks a field invisible. Unknown ids are ignored.
func (c *Catalog) Hide(id model.FieldID) {
	i := c.indexOf(id)
	if i < 0 {
		c.log.Debug().Str("field", id.String()).Msg("Hide ignored for unknown field")
		return
	}
	c.fields[i].Visible = false
	c.persist()
}

// Reorder arranges fields to match ids. Unknown and repeated ids are
// ignored; fields not mentioned keep their relative order at the end.
func (c *Catalog) Reorder(ids []model.FieldID) {
	rank := make(map[model.FieldID]int, len(ids))
	for _, id := range ids {
		if c.indexOf(id) < 0 {
			continue
		}
		if _, seen := rank[id]; !seen {
			rank[id] = len(rank)
		}
	}
	sortByRank(c.fields, rank)
	c.persist()
}

// ResetAll makes every field visible again without touching the order
func (c *Catalog) ResetAll() {
	for i := range c.fields {
		c.fields[i].Visible = true
	}
	c.persist()
}

// VisibleOrdered yields the visible fields in display order
func (c *Catalog) VisibleOrdered() iter.Seq[model.FieldDescriptor] {
	return func(yield func(model.FieldDescriptor) bool) {
		for _, f := range c.fields {
			if !f.Visible {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// All returns a copy of every field in display order
func (c *Catalog) All() []model.FieldDescriptor {
	return slices.Clone(c.fields)
}

// Lookup returns the descriptor for id
func (c *Catalog) Lookup(id model.FieldID) (model.FieldDescriptor, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return model.FieldDescriptor{}, false
	}
	return c.fields[i], true
}

// States returns the persisted form of the catalog
func (c *Catalog) States() []model.FieldState {
	return StatesOf(c.fields)
}

// StatesOf converts descriptors to their persisted form
func StatesOf(fields []model.FieldDescriptor) []model.FieldState {
	states := make([]model.FieldState, 0, len(fields))
	for _, f := range fields {
		states = append(states, model.FieldState{ID: f.ID, IsVisible: f.Visible})
	}
	return states
}

func (c *Catalog) indexOf(id model.FieldID) int {
	return slices.IndexFunc(c.fields, func(f model.FieldDescriptor) bool {
		return f.ID == id
	})
}

func (c *Catalog) persist() {
	if c.store == nil {
		return
	}
	c.store.SaveFieldState(c.States())
}
