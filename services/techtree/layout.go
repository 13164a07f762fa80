package techtree

import (
	"speclab-backend/models/certification"
)

// ColumnWidth is the horizontal distance between neighbours on one level row.
const ColumnWidth = 220

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Placement struct {
	Position Position
	Level    certification.LevelInfo
}

// Assign places certs on a grid: the row comes from the level, the column from the
// node's index among earlier nodes of the same level. Placement follows input order,
// so callers that need stable output must pass a stable order (the store sorts by id).
// The result is parallel to certs.
func Assign(certs []*certification.Certification) []Placement {
	out := make([]Placement, len(certs))
	seen := make(map[string]int)
	for i, c := range certs {
		// Unknown levels all share UnknownLevel's empty name, so they form one bucket.
		level, _ := certification.LookupLevel(c.Level)
		idx := seen[level.Name]
		seen[level.Name] = idx + 1
		out[i] = Placement{
			Position: Position{X: ColumnWidth * idx, Y: level.Y},
			Level:    level,
		}
	}
	return out
}
