package techtree

import (
	"sort"
	"strings"

	"speclab-backend/models/certification"
)

// OtherCategory replaces a missing or blank category name.
const OtherCategory = certification.OtherCategory

type SubCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CategoryTree struct {
	Main  string     `json:"main"`
	Subs  []SubCount `json:"subs"`
	Total int        `json:"total"`
}

// BuildCategoryTree normalises empty names to OtherCategory, merges rows that
// collapse onto the same (main, sub) pair and folds them into one entry per main
// category. Mains and subs come out sorted by name so the tree does not depend on
// the order the store grouped rows in.
func BuildCategoryTree(rows []certification.CategoryCount) []CategoryTree {
	type key struct{ main, sub string }
	counts := make(map[key]int)
	for _, r := range rows {
		counts[key{normalizeCategory(r.Main), normalizeCategory(r.Sub)}] += int(r.Count)
	}
	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].main != keys[j].main {
			return keys[i].main < keys[j].main
		}
		return keys[i].sub < keys[j].sub
	})

	tree := []CategoryTree{}
	for _, k := range keys {
		if len(tree) == 0 || tree[len(tree)-1].Main != k.main {
			tree = append(tree, CategoryTree{Main: k.main, Subs: []SubCount{}})
		}
		last := &tree[len(tree)-1]
		n := counts[k]
		last.Subs = append(last.Subs, SubCount{Name: k.sub, Count: n})
		last.Total += n
	}
	return tree
}

func normalizeCategory(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return OtherCategory
	}
	return *s
}
