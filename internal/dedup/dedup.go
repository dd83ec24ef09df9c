// Package dedup partitions the record set by composite key and reports
// duplicate groups, split into conflicting and consistent results.
package dedup

import (
	"sort"

	"github.com/chartlog/chartlog/internal/match"
	"github.com/chartlog/chartlog/internal/model"
)

// Report holds the two duplicate listings for one snapshot of the record set.
// Both are flat, newest-first lists of full records; a record never appears
// in both. Recompute the report whenever the record set changes.
type Report struct {
	// Conflicting lists members of groups that share a composite key but
	// disagree on classification.
	Conflicting []*model.Record
	// Consistent lists members of groups that share a composite key and a
	// single classification but were entered at distinct times.
	Consistent []*model.Record
}

// Build computes the duplicate report over a snapshot of records. The input
// is not mutated. Records with empty identifying fields are grouped like any
// others; a group must have at least two members to be reported, and the
// degenerate case of identical key, classification and timestamp is reported
// by neither listing.
func Build(records []*model.Record) Report {
	newestFirst := make([]*model.Record, len(records))
	copy(newestFirst, records)
	sort.SliceStable(newestFirst, func(i, j int) bool {
		return newestFirst[i].Seq > newestFirst[j].Seq
	})

	groups := make(map[string][]*model.Record)
	var order []string
	for _, r := range newestFirst {
		k := match.CompositeKey(r)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	var rep Report
	for _, k := range order {
		members := groups[k]
		if len(members) < 2 {
			continue
		}
		classes := make(map[model.Classification]struct{})
		seqs := make(map[int64]struct{})
		for _, m := range members {
			classes[m.Classification] = struct{}{}
			seqs[m.Seq] = struct{}{}
		}
		switch {
		case len(classes) > 1:
			rep.Conflicting = append(rep.Conflicting, members...)
		case len(seqs) > 1:
			rep.Consistent = append(rep.Consistent, members...)
		}
	}
	return rep
}
