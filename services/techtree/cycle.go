package techtree

import "speclab-backend/models/certification"

// WouldCreateCycle reports whether adding the edge prereqID -> certID to edges
// closes a cycle, i.e. certID already reaches prereqID. A self-loop counts.
func WouldCreateCycle(edges []*certification.Prerequisite, certID, prereqID uint) bool {
	if certID == prereqID {
		return true
	}
	next := make(map[uint][]uint, len(edges))
	for _, e := range edges {
		next[e.PrerequisiteID] = append(next[e.PrerequisiteID], e.CertificationID)
	}
	visited := map[uint]bool{certID: true}
	stack := []uint{certID}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range next[cur] {
			if n == prereqID {
				return true
			}
			if !visited[n] {
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return false
}
