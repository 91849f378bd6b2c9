package topology

import (
	"strings"

	"go.uber.org/multierr"
)

// PathRuleEntry is one row of the static path rule table.
type PathRuleEntry struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	// Cache defaults to CachePolicyOptimized when empty.
	Cache CachePolicy `json:"cache,omitempty" yaml:"cache,omitempty"`
}

// PathRuleTable is the ordered list of patterns served from the bucket.
type PathRuleTable []PathRuleEntry

// DefaultPathRuleTable returns the patterns a TanStack Start build publishes as static files.
func DefaultPathRuleTable() PathRuleTable {
	return PatternTable("/_build/*", "/assets/*", "/*.ico", "/*.png", "/site.webmanifest")
}

// PatternTable builds a table of optimized-cache entries from bare patterns.
func PatternTable(patterns ...string) PathRuleTable {
	out := make(PathRuleTable, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, PathRuleEntry{Pattern: p, Cache: CachePolicyOptimized})
	}
	return out
}

// Patterns returns the table's patterns in order.
func (t PathRuleTable) Patterns() []string {
	out := make([]string, 0, len(t))
	for _, e := range t {
		out = append(out, e.Pattern)
	}
	return out
}

// Validate reports every defect in the table at once.
//
// Duplicate patterns are compared byte for byte; `/assets/*` and `/assets/*/`
// are distinct entries.
func (t PathRuleTable) Validate() error {
	var errs error

	firstSeen := map[string]int{}
	positions := map[string][]int{}
	var order []string

	for i, e := range t {
		switch {
		case e.Pattern == "":
			errs = multierr.Append(errs, &InvalidPathRuleError{Entry: i, Pattern: e.Pattern, Reason: "pattern is empty"})
			continue
		case e.Pattern == DefaultPattern:
			errs = multierr.Append(errs, &AmbiguousPathRuleError{Pattern: e.Pattern, Entries: []int{i}, Default: true})
			continue
		case !strings.HasPrefix(e.Pattern, "/"):
			errs = multierr.Append(errs, &InvalidPathRuleError{Entry: i, Pattern: e.Pattern, Reason: "pattern must start with /"})
		}

		switch e.Cache {
		case "", CachePolicyOptimized:
		default:
			errs = multierr.Append(errs, &InvalidPathRuleError{Entry: i, Pattern: e.Pattern, Reason: "static rules must use the optimized cache policy"})
		}

		if _, ok := firstSeen[e.Pattern]; !ok {
			firstSeen[e.Pattern] = i
			order = append(order, e.Pattern)
		}
		positions[e.Pattern] = append(positions[e.Pattern], i)
	}

	for _, p := range order {
		if len(positions[p]) > 1 {
			errs = multierr.Append(errs, &AmbiguousPathRuleError{Pattern: p, Entries: positions[p]})
		}
	}
	return errs
}
