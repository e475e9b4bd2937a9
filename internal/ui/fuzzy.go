package ui

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"apiglass/internal/model"
	"apiglass/internal/session"
)

type rowKind int

const (
	rowGroup rowKind = iota
	rowEndpoint
)

// row is one line of the endpoint list: a group header or an endpoint.
type row struct {
	kind     rowKind
	group    string
	index    int // endpoint index, rowEndpoint only
	count    int // endpoints in the group, rowGroup only
	expanded bool
}

func searchText(ep model.Endpoint) string {
	return ep.Method + " " + ep.URL + " " + ep.Description + " " + ep.Group
}

// filterEndpoints returns the indexes of endpoints matching needle, best
// match first. An empty needle matches everything in order.
func filterEndpoints(eps []model.Endpoint, needle string) []int {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		out := make([]int, len(eps))
		for i := range eps {
			out[i] = i
		}
		return out
	}

	source := make([]string, len(eps))
	for i, ep := range eps {
		source[i] = strings.ToLower(searchText(ep))
	}
	matches := fuzzy.Find(strings.ToLower(needle), source)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].Index < matches[j].Index
		}
		return matches[i].Score > matches[j].Score
	})

	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Index)
	}
	return out
}

// buildRows lays out groups and their endpoints. Without a filter only
// expanded groups show their endpoints; with one, every group holding a
// match is shown open with just the matches.
func buildRows(groups []session.Group, eps []model.Endpoint, filter string, expanded map[string]bool) []row {
	filtering := strings.TrimSpace(filter) != ""
	matched := map[int]bool{}
	if filtering {
		for _, i := range filterEndpoints(eps, filter) {
			matched[i] = true
		}
	}

	var rows []row
	for _, g := range groups {
		indexes := g.Indexes
		if filtering {
			indexes = nil
			for _, i := range g.Indexes {
				if matched[i] {
					indexes = append(indexes, i)
				}
			}
			if len(indexes) == 0 {
				continue
			}
		}

		open := filtering || expanded[g.Name]
		rows = append(rows, row{kind: rowGroup, group: g.Name, count: len(indexes), expanded: open})
		if !open {
			continue
		}
		for _, i := range indexes {
			rows = append(rows, row{kind: rowEndpoint, group: g.Name, index: i})
		}
	}
	return rows
}

// nthEndpointRow returns the row position of the n-th (1-based) visible
// endpoint, or -1.
func nthEndpointRow(rows []row, n int) int {
	seen := 0
	for i, r := range rows {
		if r.kind != rowEndpoint {
			continue
		}
		seen++
		if seen == n {
			return i
		}
	}
	return -1
}
