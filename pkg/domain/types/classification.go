package types

// Classification is the verdict assigned to a finding when two snapshots are compared
type Classification string

const (
	ClassificationNew       Classification = "new"
	ClassificationIncreased Classification = "increased"
	ClassificationDecreased Classification = "decreased"
	ClassificationUnchanged Classification = "unchanged"
	ClassificationResolved  Classification = "resolved"
)

// Classifications returns every classification in report order
func Classifications() []Classification {
	return []Classification{
		ClassificationNew,
		ClassificationIncreased,
		ClassificationDecreased,
		ClassificationUnchanged,
		ClassificationResolved,
	}
}

// String returns the string representation of the classification
func (c Classification) String() string {
	return string(c)
}

// IsValid checks if the classification is known
func (c Classification) IsValid() bool {
	return c.Priority() >= 0
}

// Priority returns the group position of the classification in a comparison
// report. Unknown classifications return -1.
func (c Classification) Priority() int {
	switch c {
	case ClassificationNew:
		return 0
	case ClassificationIncreased:
		return 1
	case ClassificationDecreased:
		return 2
	case ClassificationUnchanged:
		return 3
	case ClassificationResolved:
		return 4
	default:
		return -1
	}
}
