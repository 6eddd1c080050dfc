package categories

import (
	"sort"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
)

type Node struct {
	ID       uuid.UUID `json:"_id"`
	Title    string    `json:"title"`
	Active   bool      `json:"active"`
	Children []*Node   `json:"children"`
}

// BuildTree arranges categories under their parents. Categories whose parent
// is missing from the input become roots. Siblings are ordered by title.
func BuildTree(cats []models.Category) []*Node {
	nodes := make(map[uuid.UUID]*Node, len(cats))
	for _, c := range cats {
		nodes[c.ID] = &Node{ID: c.ID, Title: c.Title, Active: c.Active, Children: []*Node{}}
	}

	roots := []*Node{}
	for _, c := range cats {
		n := nodes[c.ID]
		if c.ParentID != nil {
			if p, ok := nodes[*c.ParentID]; ok && p != n {
				p.Children = append(p.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}

	sortNodes(roots)
	return roots
}

func sortNodes(ns []*Node) {
	sort.SliceStable(ns, func(i, j int) bool { return ns[i].Title < ns[j].Title })
	for _, n := range ns {
		sortNodes(n.Children)
	}
}
