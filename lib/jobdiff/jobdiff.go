package jobdiff

import (
	"sort"

	"jobwatch/lib/scrapers/applitrack"
	"jobwatch/lib/snapshot"

	"github.com/google/go-cmp/cmp"
)

// Result buckets job ids by how they differ between two collections.
type Result struct {
	Added   []string
	Removed []string
	Changed []string
}

func (r Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Compare indexes both collections by job_id and buckets the ids.
// changed means present in both but not field-for-field equal; there
// is no weighting of which field moved.
func Compare(current, previous snapshot.Collection) Result {
	cur := indexByID(current)
	prev := indexByID(previous)

	var res Result
	for id, job := range cur {
		before, ok := prev[id]
		if !ok {
			res.Added = append(res.Added, id)
			continue
		}
		if !cmp.Equal(job, before) {
			res.Changed = append(res.Changed, id)
		}
	}
	for id := range prev {
		if _, ok := cur[id]; !ok {
			res.Removed = append(res.Removed, id)
		}
	}

	sort.Strings(res.Added)
	sort.Strings(res.Removed)
	sort.Strings(res.Changed)
	return res
}

func indexByID(c snapshot.Collection) map[string]applitrack.JobRecord {
	out := make(map[string]applitrack.JobRecord, len(c.Jobs))
	for _, job := range c.Jobs {
		out[job.JobID] = job
	}
	return out
}
