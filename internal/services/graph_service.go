package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/skillatlas/skillatlas/internal/models"
	mongorepo "github.com/skillatlas/skillatlas/internal/repositories/mongo"
	pgrepo "github.com/skillatlas/skillatlas/internal/repositories/postgres"
	"github.com/skillatlas/skillatlas/internal/utils"
)

// GraphService serves the knowledge-graph view. When the catalog mirror
// is configured it returns role-requires-skill edges from Mongo;
// otherwise it degrades to a flat Postgres-derived node set.
type GraphService interface {
	Graph(ctx context.Context, userID string) (*models.Graph, error)
}

type graphService struct {
	graph  mongorepo.GraphRepository // nil when no mirror is configured
	roles  pgrepo.RoleRepository
	skills pgrepo.SkillRepository
	log    *logrus.Entry
}

func NewGraphService(graph mongorepo.GraphRepository, roles pgrepo.RoleRepository, skills pgrepo.SkillRepository, log *logrus.Entry) GraphService {
	return &graphService{graph: graph, roles: roles, skills: skills, log: log}
}

func (s *graphService) Graph(ctx context.Context, userID string) (*models.Graph, error) {
	const op = "GraphService.Graph"

	if s.graph != nil {
		g, err := s.graph.RoleSkillGraph(ctx, 50)
		if err == nil {
			return g, nil
		}
		s.log.WithError(err).Warn("catalog mirror unavailable, serving postgres fallback")
	}

	owned, err := s.skills.UserSkills(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user skills", err)
	}
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load roles", err)
	}
	if len(roles) > 5 {
		roles = roles[:5]
	}

	g := &models.Graph{Nodes: []models.GraphNode{}, Edges: []models.GraphEdge{}}
	for _, o := range owned {
		g.Nodes = append(g.Nodes, models.GraphNode{ID: o.SkillID, Name: o.SkillName, Type: "skill", UserHas: true})
	}
	for _, r := range roles {
		g.Nodes = append(g.Nodes, models.GraphNode{ID: r.ID, Name: r.Name, Type: "role"})
	}
	return g, nil
}
