// Package diff builds alert indexes from finding lists and classifies the
// differences between two of them.
package diff

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
)

// AlertIndex is a lookup of findings keyed by (severity, finding type). It
// remembers the order in which keys were first added. The zero value is an
// empty index.
type AlertIndex struct {
	entries map[model.AlertKey]model.Finding
	order   []model.AlertKey
}

// BuildIndex indexes a finding list. It fails if the list repeats a key or
// carries an invalid finding, such as one with a negative count.
func BuildIndex(findings []model.Finding) (*AlertIndex, error) {
	idx := &AlertIndex{
		entries: make(map[model.AlertKey]model.Finding, len(findings)),
		order:   make([]model.AlertKey, 0, len(findings)),
	}

	for i, f := range findings {
		if err := f.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid finding",
				goerr.V("index", i),
				goerr.V("key", f.Key().String()),
				goerr.T(model.ErrTagValidation))
		}

		key := f.Key()
		if _, exists := idx.entries[key]; exists {
			return nil, goerr.New("duplicate finding key",
				goerr.V("index", i),
				goerr.V("severity", f.Severity),
				goerr.V("finding_type", f.FindingType),
				goerr.T(model.ErrTagDuplicateKey))
		}
		idx.entries[key] = f
		idx.order = append(idx.order, key)
	}

	return idx, nil
}

// Len returns the number of distinct keys
func (x *AlertIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.order)
}

// Get returns the finding stored under key
func (x *AlertIndex) Get(key model.AlertKey) (model.Finding, bool) {
	if x == nil {
		return model.Finding{}, false
	}
	f, ok := x.entries[key]
	return f, ok
}

// Keys returns the keys in insertion order
func (x *AlertIndex) Keys() []model.AlertKey {
	if x == nil {
		return nil
	}
	keys := make([]model.AlertKey, len(x.order))
	copy(keys, x.order)
	return keys
}
