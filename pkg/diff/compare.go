package diff

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/domain/model"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

// Compare classifies every key present in either index. Rows are grouped by
// classification priority (new, increased, decreased, unchanged, resolved);
// inside a group they follow the current index's insertion order, followed by
// the prior index's order for keys the current index lacks. A nil index is
// treated as empty.
func Compare(current, prior *AlertIndex) ([]model.ComparisonRow, error) {
	rows := make([]model.ComparisonRow, 0, current.Len()+prior.Len())

	for _, key := range current.Keys() {
		cur, _ := current.Get(key)
		row := model.ComparisonRow{
			Severity:     cur.Severity,
			FindingType:  cur.FindingType,
			CurrentCount: cur.AffectedCount,
		}

		if prev, ok := prior.Get(key); ok {
			row.PriorCount = prev.AffectedCount
			row.Classification = classify(cur.AffectedCount, prev.AffectedCount)
		} else {
			row.Classification = types.ClassificationNew
		}
		rows = append(rows, row)
	}

	for _, key := range prior.Keys() {
		if _, ok := current.Get(key); ok {
			continue
		}
		prev, _ := prior.Get(key)
		rows = append(rows, model.ComparisonRow{
			Severity:       prev.Severity,
			FindingType:    prev.FindingType,
			PriorCount:     prev.AffectedCount,
			Classification: types.ClassificationResolved,
		})
	}

	for _, row := range rows {
		if row.CurrentCount < 0 || row.PriorCount < 0 {
			return nil, goerr.New("negative affected count",
				goerr.V("key", row.Key().String()),
				goerr.V("current_count", row.CurrentCount),
				goerr.V("prior_count", row.PriorCount),
				goerr.T(model.ErrTagValidation))
		}
	}

	slices.SortStableFunc(rows, func(a, b model.ComparisonRow) int {
		return a.Classification.Priority() - b.Classification.Priority()
	})

	return rows, nil
}

// CompareFindings indexes both finding lists and compares them
func CompareFindings(current, prior []model.Finding) ([]model.ComparisonRow, error) {
	curIdx, err := BuildIndex(current)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to index current findings", tagOf(err))
	}
	priorIdx, err := BuildIndex(prior)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to index prior findings", tagOf(err))
	}
	return Compare(curIdx, priorIdx)
}

func classify(current, prior int) types.Classification {
	switch {
	case current > prior:
		return types.ClassificationIncreased
	case current < prior:
		return types.ClassificationDecreased
	default:
		return types.ClassificationUnchanged
	}
}

func tagOf(err error) goerr.Option {
	if goerr.HasTag(err, model.ErrTagDuplicateKey) {
		return goerr.T(model.ErrTagDuplicateKey)
	}
	return goerr.T(model.ErrTagValidation)
}
