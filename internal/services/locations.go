package services

import (
	"route-optimizer-service/internal/domain"
)

// locationIndex is the per-request table of unique coordinate keys, built
// fresh for every optimize call and discarded once the external payload
// exists. Entries keep insertion order; the position of a key in keys is the
// location_index the external request refers to.
type locationIndex struct {
	keys  []string
	index map[string]int
}

func newLocationIndex() *locationIndex {
	return &locationIndex{index: make(map[string]int)}
}

// add registers the coordinates and returns their index. First-seen-wins:
// coordinates whose 6-decimal key already exists reuse the original index.
func (li *locationIndex) add(c domain.Coordinates) int {
	key := c.Key()
	if i, ok := li.index[key]; ok {
		return i
	}
	i := len(li.keys)
	li.keys = append(li.keys, key)
	li.index[key] = i
	return i
}

// lookup returns the index previously assigned to the coordinates.
func (li *locationIndex) lookup(c domain.Coordinates) (int, bool) {
	i, ok := li.index[c.Key()]
	return i, ok
}

// locations returns the ordered unique coordinate keys.
func (li *locationIndex) locations() []string {
	return li.keys
}

// buildLocationIndex walks all job locations in input order, then all
// vehicle start locations in input order, assigning each previously unseen
// 6-decimal coordinate key the next index. Records without usable
// coordinates contribute nothing; that is not an error here. An empty table
// is: optimization cannot proceed with no locations at all.
func buildLocationIndex(jobs []OptimizeJob, vehicles []OptimizeVehicle) (*locationIndex, error) {
	li := newLocationIndex()

	for _, j := range jobs {
		if j.Location == nil {
			continue
		}
		li.add(*j.Location)
	}

	for _, v := range vehicles {
		if v.Start == nil {
			continue
		}
		li.add(*v.Start)
	}

	if len(li.keys) == 0 {
		return nil, &domain.ValidationError{Detail: "no valid coordinates found in jobs or vehicles"}
	}

	return li, nil
}
