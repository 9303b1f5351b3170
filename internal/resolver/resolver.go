// Package resolver translates foreign-key identifiers embedded in
// backend rows into human-readable labels. Lookups go through the
// upstream tier chain and land in a TTL memo so a page render costs at
// most one bulk fetch per reference column. Resolution never fails
// loudly: an id that cannot be resolved is passed through unchanged so
// the console renders the identifier instead of blocking the page.
package resolver

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/clearflowhq/adminconsole/internal/lookupcache"
	"github.com/clearflowhq/adminconsole/internal/schema"
	"github.com/clearflowhq/adminconsole/internal/upstream"

	log "github.com/sirupsen/logrus"
)

// ResolvedSuffix is appended to a foreign-key column name to form the
// sibling column that carries the resolved label.
const ResolvedSuffix = "_resolved"

// Option is one selectable value for a foreign-key form control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Resolver resolves foreign-key ids against the upstream backend.
type Resolver struct {
	client *upstream.Client
	cache  *lookupcache.Cache
}

// New constructs a Resolver. A nil cache gets a default-TTL cache.
func New(client *upstream.Client, cache *lookupcache.Cache) *Resolver {
	if cache == nil {
		cache = lookupcache.New(0)
	}
	return &Resolver{client: client, cache: cache}
}

// ClearCache drops every memoized label. Callers use it to force a
// re-fetch after mutating reference data out of band.
func (r *Resolver) ClearCache() {
	if r == nil {
		return
	}
	r.cache.Clear()
}

// ResolveIDToName resolves a single foreign-key value to its display
// label. Unrecognized fields and empty ids pass through unchanged with
// no network call; so does an id no tier can resolve.
func (r *Resolver) ResolveIDToName(ctx context.Context, field, id string) string {
	id = strings.TrimSpace(id)
	if r == nil || id == "" {
		return id
	}
	if !schema.IsForeignKeyField(field) {
		return id
	}
	return r.ResolveIDs(ctx, field, []string{id})[id]
}

// ResolveIDs resolves a batch of ids for one foreign-key field with a
// single bulk fetch per tier attempt. The result has an entry for every
// distinct non-empty input id; ids that cannot be resolved map to
// themselves. Nil and empty entries are dropped, duplicates collapsed.
func (r *Resolver) ResolveIDs(ctx context.Context, field string, ids []string) map[string]string {
	out := make(map[string]string)
	if r == nil {
		return out
	}

	distinct := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	if len(distinct) == 0 {
		return out
	}

	fk, ok := schema.Config(field)
	if !ok {
		for _, id := range distinct {
			out[id] = id
		}
		return out
	}

	missing := make(map[string]struct{}, len(distinct))
	for _, id := range distinct {
		if label, hit := r.cache.Get(fk.Entity, id); hit {
			out[id] = label
			continue
		}
		missing[id] = struct{}{}
	}

	if len(missing) > 0 {
		labels := r.fetchLabels(ctx, fk, missing)
		for id := range missing {
			label, resolved := labels[id]
			if !resolved {
				log.WithFields(log.Fields{"field": field, "entity": fk.Entity, "id": id}).
					Warn("foreign key id unresolved, falling back to raw id")
				out[id] = id
				continue
			}
			r.cache.Set(fk.Entity, id, label)
			out[id] = label
		}
	}
	return out
}

// ResolveRow returns a shallow copy of row with a <field>_resolved
// sibling for every recognized foreign-key column holding a non-empty
// value. Columns resolve concurrently since they target independent
// entities.
func (r *Resolver) ResolveRow(ctx context.Context, row upstream.Record) upstream.Record {
	if row == nil {
		return nil
	}
	out := make(upstream.Record, len(row)+2)
	for k, v := range row {
		out[k] = v
	}
	if r == nil {
		return out
	}

	type pending struct {
		field string
		id    string
	}
	var work []pending
	for field, value := range row {
		if !schema.IsForeignKeyField(field) {
			continue
		}
		id := strings.TrimSpace(upstream.ScalarString(value))
		if id == "" {
			continue
		}
		work = append(work, pending{field: field, id: id})
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, p := range work {
		wg.Add(1)
		go func(p pending) {
			defer wg.Done()
			label := r.ResolveIDToName(ctx, p.field, p.id)
			mu.Lock()
			out[p.field+ResolvedSuffix] = label
			mu.Unlock()
		}(p)
	}
	wg.Wait()
	return out
}

// ResolveRows enriches a page of rows. Distinct ids are collected per
// foreign-key field across the whole slice first, so N rows sharing a
// reference column cost one bulk fetch for that column rather than N.
// The output preserves length and order; rows without foreign-key
// columns pass through as shallow copies.
func (r *Resolver) ResolveRows(ctx context.Context, rows []upstream.Record) []upstream.Record {
	if rows == nil {
		return nil
	}

	idsByField := make(map[string][]string)
	for _, row := range rows {
		for field, value := range row {
			if !schema.IsForeignKeyField(field) {
				continue
			}
			id := strings.TrimSpace(upstream.ScalarString(value))
			if id == "" {
				continue
			}
			idsByField[field] = append(idsByField[field], id)
		}
	}

	labelsByField := make(map[string]map[string]string, len(idsByField))
	if r != nil && len(idsByField) > 0 {
		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for field, ids := range idsByField {
			wg.Add(1)
			go func(field string, ids []string) {
				defer wg.Done()
				labels := r.ResolveIDs(ctx, field, ids)
				mu.Lock()
				labelsByField[field] = labels
				mu.Unlock()
			}(field, ids)
		}
		wg.Wait()
	}

	out := make([]upstream.Record, 0, len(rows))
	for _, row := range rows {
		copied := make(upstream.Record, len(row)+2)
		for k, v := range row {
			copied[k] = v
		}
		for field, labels := range labelsByField {
			value, present := row[field]
			if !present {
				continue
			}
			id := strings.TrimSpace(upstream.ScalarString(value))
			if id == "" {
				continue
			}
			if label, ok := labels[id]; ok {
				copied[field+ResolvedSuffix] = label
			} else {
				copied[field+ResolvedSuffix] = id
			}
		}
		out = append(out, copied)
	}
	return out
}

// Options returns the selectable values for a foreign-key form control,
// sorted by label. Always a fresh fetch: forms open rarely and must see
// reference rows created moments ago.
func (r *Resolver) Options(ctx context.Context, field string) ([]Option, error) {
	if r == nil {
		return nil, errNilResolver
	}
	fk, ok := schema.Config(field)
	if !ok {
		return nil, &UnknownFieldError{Field: field}
	}

	var records []upstream.Record
	for _, tier := range upstream.AllTiers {
		fetched, errFetch := r.client.Fetch(ctx, tier, fk.Entity)
		if errFetch != nil {
			log.WithError(errFetch).WithFields(log.Fields{"entity": fk.Entity, "tier": tier.String()}).
				Warn("foreign key options tier failed")
			continue
		}
		if len(fetched) == 0 {
			continue
		}
		records = fetched
		break
	}
	if records == nil {
		return nil, &LookupExhaustedError{Entity: fk.Entity}
	}

	options := make([]Option, 0, len(records))
	for _, rec := range records {
		id := rec.ID()
		if id == "" {
			continue
		}
		label := displayLabel(fk, rec)
		if label == "" {
			label = id
		}
		options = append(options, Option{Value: id, Label: label})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Label < options[j].Label })
	return options, nil
}

// fetchLabels runs the tier chain for one entity and returns labels for
// the requested ids. A tier counts as successful only when it yields at
// least one requested id; otherwise the next shape is attempted. An
// exhausted chain returns an empty map and the caller degrades to raw ids.
func (r *Resolver) fetchLabels(ctx context.Context, fk schema.ForeignKey, want map[string]struct{}) map[string]string {
	for _, tier := range upstream.AllTiers {
		records, errFetch := r.client.Fetch(ctx, tier, fk.Entity)
		if errFetch != nil {
			log.WithError(errFetch).WithFields(log.Fields{"entity": fk.Entity, "tier": tier.String()}).
				Warn("foreign key lookup tier failed")
			continue
		}

		labels := make(map[string]string, len(want))
		for _, rec := range records {
			id := rec.ID()
			if id == "" {
				continue
			}
			if _, wanted := want[id]; !wanted {
				continue
			}
			if label := displayLabel(fk, rec); label != "" {
				labels[id] = label
			}
		}
		if len(labels) == 0 {
			continue
		}
		return labels
	}
	return nil
}

// displayLabel extracts the label for one record: the pre-formatted
// display_name a lookup tier provides, then the mapped display field,
// then a generic name attribute. Address records without any of those
// get a synthesized street/city/state label.
func displayLabel(fk schema.ForeignKey, rec upstream.Record) string {
	if label := rec.String("display_name"); label != "" {
		return label
	}
	if label := rec.String(fk.DisplayField); label != "" {
		return label
	}
	if label := rec.String("name"); label != "" {
		return label
	}
	if fk.Entity == "addresses" {
		return synthesizeAddress(rec)
	}
	return ""
}

// synthesizeAddress joins street line, city, and state with commas,
// skipping empty segments.
func synthesizeAddress(rec upstream.Record) string {
	parts := make([]string, 0, 3)
	for _, field := range []string{"line1", "city", "state"} {
		if part := rec.String(field); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
