package dedup

import (
	"context"
	"fmt"
	"sort"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/mappin-app/mappin/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store provides access to stored records for cleanup
type Store interface {
	ListURLs(ctx context.Context) ([]domain.Conflict, error)
	DeleteConflicts(ctx context.Context, ids []int64) (int64, error)
}

// Keep selects which record of a duplicate group survives
type Keep string

// enum of retention strategies
const (
	KeepOldest Keep = "oldest"
	KeepNewest Keep = "newest"
)

// ParseKeep converts string to Keep, empty string is oldest
func ParseKeep(s string) (Keep, error) {
	switch Keep(strings.ToLower(strings.TrimSpace(s))) {
	case "", KeepOldest:
		return KeepOldest, nil
	case KeepNewest:
		return KeepNewest, nil
	default:
		return "", fmt.Errorf("unknown keep strategy %q", s)
	}
}

// Group is a set of records sharing one dedup key
type Group struct {
	Key     string  `json:"key"`
	Kept    int64   `json:"kept"`
	Removed []int64 `json:"removed"`
}

// Report summarizes a cleanup run
type Report struct {
	Scanned int     `json:"scanned"`
	Groups  []Group `json:"groups"`
	Removed int64   `json:"removed"`
	DryRun  bool    `json:"dry_run"`
}

// Cleaner removes duplicated records, keeping one per dedup key
type Cleaner struct {
	Store Store
	Mode  Mode
	Keep  Keep
}

// Run finds duplicate groups and deletes all but the kept record of each.
// With dryRun nothing is deleted and Removed reports what would be.
func (c *Cleaner) Run(ctx context.Context, dryRun bool) (Report, error) {
	records, err := c.Store.ListURLs(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list records: %w", err)
	}

	groups := c.Plan(records)
	rep := Report{Scanned: len(records), Groups: groups, DryRun: dryRun}

	var ids []int64
	for _, g := range groups {
		ids = append(ids, g.Removed...)
	}
	if len(ids) == 0 {
		log.Printf("[INFO] no duplicates among %d records", len(records))
		return rep, nil
	}

	if dryRun {
		rep.Removed = int64(len(ids))
		log.Printf("[INFO] dry run, %d duplicates in %d groups would be removed", len(ids), len(groups))
		return rep, nil
	}

	deleted, err := c.Store.DeleteConflicts(ctx, ids)
	if err != nil {
		return rep, fmt.Errorf("delete duplicates: %w", err)
	}
	rep.Removed = deleted
	log.Printf("[INFO] removed %d duplicates in %d groups", deleted, len(groups))
	return rep, nil
}

// Plan groups records by dedup key and decides which record to keep.
// Only groups with more than one record are returned, sorted by key.
func (c *Cleaner) Plan(records []domain.Conflict) []Group {
	byKey := map[string][]domain.Conflict{}
	for _, r := range records {
		k := Key(c.Mode, r.SourceURL)
		if k == "" {
			continue
		}
		byKey[k] = append(byKey[k], r)
	}

	res := []Group{}
	for k, rr := range byKey {
		if len(rr) < 2 {
			continue
		}
		sort.Slice(rr, func(i, j int) bool {
			if rr[i].CreatedAt.Equal(rr[j].CreatedAt) {
				return rr[i].ID < rr[j].ID
			}
			return rr[i].CreatedAt.Before(rr[j].CreatedAt)
		})
		keepIdx := 0
		if c.Keep == KeepNewest {
			keepIdx = len(rr) - 1
		}
		g := Group{Key: k, Kept: rr[keepIdx].ID}
		for i, r := range rr {
			if i != keepIdx {
				g.Removed = append(g.Removed, r.ID)
			}
		}
		res = append(res, g)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Key < res[j].Key })
	return res
}
