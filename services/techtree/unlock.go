package techtree

import (
	"sort"

	"speclab-backend/models/certification"
)

// Unlocked is a certification whose every prerequisite the user already holds.
type Unlocked struct {
	certification.Simple
	UnlockedBy []uint `json:"unlocked_by"`
}

// NextSteps returns the certifications in certs that have at least one
// prerequisite, all of them in held, and that are neither held nor in skip.
// Lower levels come first; ties keep the order of certs.
func NextSteps(certs []*certification.Certification, edges []*certification.Prerequisite, held, skip map[uint]bool) []Unlocked {
	prereqs := make(map[uint][]uint)
	for _, e := range edges {
		prereqs[e.CertificationID] = append(prereqs[e.CertificationID], e.PrerequisiteID)
	}

	out := []Unlocked{}
	for _, c := range certs {
		if held[c.ID] || skip[c.ID] {
			continue
		}
		need := prereqs[c.ID]
		if len(need) == 0 {
			continue
		}
		ok := true
		for _, p := range need {
			if !held[p] {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, Unlocked{Simple: c.Simple(), UnlockedBy: need})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LevelOrder < out[j].LevelOrder })
	return out
}
