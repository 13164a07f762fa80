// Package techtree turns the certification catalogue into the prerequisite
// "tech tree" shown by the front end: it loads the graph, places every node on a
// level grid and serialises the result for React Flow. It also folds the
// catalogue into the category navigation tree.
package techtree

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"speclab-backend/logger"
	"speclab-backend/models/certification"
)

// Store is the read side of the certification repository used by the builder.
type Store interface {
	ListActive(ctx context.Context, tx *gorm.DB, category string) ([]*certification.Certification, error)
	ListPrerequisiteEdges(ctx context.Context, tx *gorm.DB, targetIDs []uint) ([]*certification.Prerequisite, error)
	CountByCategory(ctx context.Context, tx *gorm.DB) ([]certification.CategoryCount, error)
}

// Edge points from a prerequisite (Source) to the certification that requires it (Target).
type Edge struct {
	Source uint
	Target uint
}

// Graph is a transient snapshot; it is rebuilt on every read and never persisted.
type Graph struct {
	Certifications []*certification.Certification
	Edges          []Edge
}

type Builder struct {
	store Store
	log   *logger.Logger
}

func NewBuilder(store Store, baseLog *logger.Logger) *Builder {
	return &Builder{store: store, log: baseLog.With("component", "techtree.Builder")}
}

// Build loads active certifications (optionally limited to one main category) and
// every stored edge that targets one of them. Sources are kept as stored, even when
// they are inactive or outside the category.
func (b *Builder) Build(ctx context.Context, category string) (*Graph, error) {
	certs, err := b.store.ListActive(ctx, nil, category)
	if err != nil {
		return nil, fmt.Errorf("list active certifications: %w", err)
	}
	ids := make([]uint, 0, len(certs))
	for _, c := range certs {
		ids = append(ids, c.ID)
	}
	stored, err := b.store.ListPrerequisiteEdges(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("list prerequisite edges: %w", err)
	}
	b.log.Debug("graph loaded", "category", category, "nodes", len(certs), "edges", len(stored))
	return NewGraph(certs, stored), nil
}

func NewGraph(certs []*certification.Certification, stored []*certification.Prerequisite) *Graph {
	g := &Graph{
		Certifications: make([]*certification.Certification, 0, len(certs)),
		Edges:          make([]Edge, 0, len(stored)),
	}
	g.Certifications = append(g.Certifications, certs...)
	for _, e := range stored {
		g.Edges = append(g.Edges, Edge{Source: e.PrerequisiteID, Target: e.CertificationID})
	}
	return g
}
