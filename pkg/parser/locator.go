package parser

import (
	"github.com/antchfx/xpath"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

// CountMode selects how the affected resource count of an occurrence is read
type CountMode int

const (
	// CountRows counts the nodes matched by the count query
	CountRows CountMode = iota
	// CountLiteral reads the text of the first node matched by the count query as an integer
	CountLiteral
)

// Locator is the set of structural queries that finds findings of one severity in one layout
type Locator struct {
	Severity types.Severity
	// Occurrence matches the severity header cell of every finding block, from the document root
	Occurrence *xpath.Expr
	// Label matches the finding type cell, relative to the row holding the severity cell
	Label *xpath.Expr
	// Count matches the affected resource data, relative to the table holding the severity cell
	Count *xpath.Expr
	Mode  CountMode
}

// currentLayoutMarker matches the false positive summary cell only the current layout prints
var currentLayoutMarker = xpath.MustCompile(`//table[@class='summary']//td[normalize-space(div)='False Positives:']`)

var (
	labelCell = xpath.MustCompile(`th[2]`)
	urlRows   = xpath.MustCompile(`.//td[normalize-space(.)='URL']`)
	instances = xpath.MustCompile(`.//td[normalize-space(.)='Instances']/following-sibling::td[1]`)
)

func legacyLocator(sev types.Severity, label string) Locator {
	return Locator{
		Severity:   sev,
		Occurrence: xpath.MustCompile(`//table[@class='results']//th[contains(text(),'` + label + ` ')]`),
		Label:      labelCell,
		Count:      urlRows,
		Mode:       CountRows,
	}
}

func currentLocator(sev types.Severity, label string) Locator {
	return Locator{
		Severity:   sev,
		Occurrence: xpath.MustCompile(`//table[@class='results']//th[normalize-space(div)='` + label + `']`),
		Label:      labelCell,
		Count:      instances,
		Mode:       CountLiteral,
	}
}

var locatorTable = map[types.Layout][]Locator{
	types.LayoutLegacy: {
		legacyLocator(types.SeverityHigh, "High"),
		legacyLocator(types.SeverityMedium, "Medium"),
		legacyLocator(types.SeverityLow, "Low"),
		legacyLocator(types.SeverityInformational, "Informational"),
	},
	types.LayoutCurrent: {
		currentLocator(types.SeverityHigh, "High"),
		currentLocator(types.SeverityMedium, "Medium"),
		currentLocator(types.SeverityLow, "Low"),
		currentLocator(types.SeverityInformational, "Informational"),
		currentLocator(types.SeverityFalsePositive, "False Positive"),
	},
}

// Locators returns the locators of a layout in severity order
func Locators(layout types.Layout) []Locator {
	locs := locatorTable[layout]
	result := make([]Locator, len(locs))
	copy(result, locs)
	return result
}
