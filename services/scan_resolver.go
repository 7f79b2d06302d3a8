package services

import (
	"regexp"
	"strings"

	"wms-ledger/models"
)

var (
	skuPattern      = regexp.MustCompile(`SKU\d+`)
	locationPattern = regexp.MustCompile(`LOC\d+`)
)

// lineResolver is one strategy for turning a scanned value into count plan
// lines. Resolvers run in the declared order; the first one yielding exactly
// one line wins, anything else falls through to the next strategy.
type lineResolver struct {
	name    string
	resolve func(s *CountService, tenantID string, lines []*models.CountLine, mode models.ScanMode, scanned string) []*models.CountLine
}

var lineResolvers = []lineResolver{
	{name: "ByEpc", resolve: resolveByEpc},
	{name: "BySkuPattern", resolve: resolveBySkuPattern},
	{name: "ByLocationPattern", resolve: resolveByLocationPattern},
	{name: "ByLocationCode", resolve: resolveByLocationCode},
	{name: "ByExactSkuManual", resolve: resolveByExactSkuManual},
}

func resolveByEpc(s *CountService, tenantID string, lines []*models.CountLine, mode models.ScanMode, scanned string) []*models.CountLine {
	if mode != models.ScanModeRfid {
		return nil
	}
	sku, ok := s.catalog.SkuByEpc(tenantID, scanned)
	if !ok {
		return nil
	}
	return linesBySku(lines, sku.SkuID)
}

func resolveBySkuPattern(s *CountService, tenantID string, lines []*models.CountLine, mode models.ScanMode, scanned string) []*models.CountLine {
	m := skuPattern.FindString(strings.ToUpper(scanned))
	if m == "" {
		return nil
	}
	return linesBySku(lines, m)
}

func resolveByLocationPattern(s *CountService, tenantID string, lines []*models.CountLine, mode models.ScanMode, scanned string) []*models.CountLine {
	m := locationPattern.FindString(strings.ToUpper(scanned))
	if m == "" {
		return nil
	}
	return linesByLocation(lines, m)
}

func resolveByLocationCode(s *CountService, tenantID string, lines []*models.CountLine, mode models.ScanMode, scanned string) []*models.CountLine {
	loc, ok := s.catalog.LocationByCode(tenantID, strings.TrimSpace(scanned))
	if !ok {
		return nil
	}
	return linesByLocation(lines, loc.LocationID)
}

func resolveByExactSkuManual(s *CountService, tenantID string, lines []*models.CountLine, mode models.ScanMode, scanned string) []*models.CountLine {
	if mode != models.ScanModeManual {
		return nil
	}
	var matches []*models.CountLine
	for _, line := range lines {
		if strings.EqualFold(line.SkuID, strings.TrimSpace(scanned)) {
			matches = append(matches, line)
		}
	}
	return matches
}

func linesBySku(lines []*models.CountLine, skuID string) []*models.CountLine {
	var matches []*models.CountLine
	for _, line := range lines {
		if line.SkuID == skuID {
			matches = append(matches, line)
		}
	}
	return matches
}

func linesByLocation(lines []*models.CountLine, locationID string) []*models.CountLine {
	var matches []*models.CountLine
	for _, line := range lines {
		if line.LocationID == locationID {
			matches = append(matches, line)
		}
	}
	return matches
}

// resolveLine runs the resolver chain over the plan's lines. Zero or multiple
// matches across every strategy fail the scan; the operator then has to
// disambiguate with an explicit line id.
func (s *CountService) resolveLine(tenantID string, lines []*models.CountLine, mode models.ScanMode, scanned string) (*models.CountLine, error) {
	ambiguous := false
	for _, r := range lineResolvers {
		matches := r.resolve(s, tenantID, lines, mode, scanned)
		if len(matches) == 1 {
			return matches[0], nil
		}
		if len(matches) > 1 {
			ambiguous = true
		}
	}
	if ambiguous {
		return nil, Validationf("scanned value %q matches more than one count line, use an explicit line id", scanned)
	}
	return nil, Validationf("scanned value %q does not resolve to any count line", scanned)
}
