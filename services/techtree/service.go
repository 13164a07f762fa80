package techtree

import (
	"context"
	"fmt"
	"time"

	"speclab-backend/logger"
	"speclab-backend/metrics"
)

// Service runs the read pipeline: build, lay out, serialise.
type Service struct {
	builder *Builder
	store   Store
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewService(store Store, m *metrics.Metrics, baseLog *logger.Logger) *Service {
	return &Service{
		builder: NewBuilder(store, baseLog),
		store:   store,
		metrics: m,
		log:     baseLog.With("service", "techtree.Service"),
	}
}

// Graph returns the tech tree for the given main category ("" for all). An empty
// catalogue yields empty node and edge lists.
func (s *Service) Graph(ctx context.Context, category string) (GraphData, error) {
	start := time.Now()
	g, err := s.builder.Build(ctx, category)
	if err != nil {
		return GraphData{}, err
	}
	data := Serialize(g, Assign(g.Certifications))
	s.metrics.ObserveGraphBuild(len(data.Nodes), len(data.Edges), time.Since(start))
	return data, nil
}

func (s *Service) Categories(ctx context.Context) ([]CategoryTree, error) {
	rows, err := s.store.CountByCategory(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	return BuildCategoryTree(rows), nil
}
