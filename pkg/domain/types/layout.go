package types

// Layout identifies which structural arrangement a report document uses
type Layout string

const (
	// LayoutLegacy is the older report layout: severity headers read "High (Medium)"
	// and affected resources are listed one row per URL.
	LayoutLegacy Layout = "legacy"
	// LayoutCurrent is the newer layout that carries a false positive summary cell
	// and states the affected resource count as a literal "Instances" value.
	LayoutCurrent Layout = "current"
)

// String returns the string representation of the layout
func (l Layout) String() string {
	return string(l)
}
