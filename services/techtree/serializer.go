package techtree

import (
	"fmt"
	"strconv"
)

const (
	NodeType = "default"
	EdgeType = "smoothstep"
)

type GraphData struct {
	Nodes []Node     `json:"nodes"`
	Edges []WireEdge `json:"edges"`
}

type NodeData struct {
	Label    string `json:"label"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
	Issuer   string `json:"issuer,omitempty"`
}

type NodeStyle struct {
	Background   string `json:"background"`
	Border       string `json:"border"`
	BorderRadius string `json:"borderRadius"`
	Padding      string `json:"padding"`
	Width        int    `json:"width"`
}

type Node struct {
	ID       string    `json:"id"`
	Data     NodeData  `json:"data"`
	Position Position  `json:"position"`
	Type     string    `json:"type"`
	Style    NodeStyle `json:"style"`
}

type WireEdge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Type     string `json:"type"`
	Animated bool   `json:"animated"`
}

// Serialize renders g with the placements computed by Assign (parallel to
// g.Certifications). Every edge of g produces exactly one wire edge, duplicates included.
func Serialize(g *Graph, placements []Placement) GraphData {
	data := GraphData{
		Nodes: make([]Node, 0, len(g.Certifications)),
		Edges: make([]WireEdge, 0, len(g.Edges)),
	}
	for i, c := range g.Certifications {
		p := placements[i]
		data.Nodes = append(data.Nodes, Node{
			ID: strconv.FormatUint(uint64(c.ID), 10),
			Data: NodeData{
				Label:    c.Name,
				Level:    deref(c.Level),
				Category: deref(c.CategoryMain),
				Issuer:   deref(c.Issuer),
			},
			Position: p.Position,
			Type:     NodeType,
			Style:    styleFor(p),
		})
	}
	for _, e := range g.Edges {
		data.Edges = append(data.Edges, wireEdge(e))
	}
	return data
}

func wireEdge(e Edge) WireEdge {
	src := strconv.FormatUint(uint64(e.Source), 10)
	dst := strconv.FormatUint(uint64(e.Target), 10)
	return WireEdge{
		ID:     fmt.Sprintf("e%s-%s", src, dst),
		Source: src,
		Target: dst,
		Type:   EdgeType,
	}
}

func styleFor(p Placement) NodeStyle {
	return NodeStyle{
		Background:   p.Level.Background,
		Border:       "2px solid " + p.Level.Border,
		BorderRadius: "8px",
		Padding:      "10px",
		Width:        180,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
