package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillatlas/skillatlas/internal/models"
)

// GraphRepository reads the optional catalog mirror and materializes the
// role-requires-skill graph for the knowledge-graph view.
type GraphRepository interface {
	RoleSkillGraph(ctx context.Context, limit int) (*models.Graph, error)
}

type graphRepo struct {
	db *mongo.Database
}

func NewGraphRepo(db *mongo.Database) GraphRepository {
	return &graphRepo{db: db}
}

type roleDoc struct {
	RoleID         string `bson:"role_id"`
	Title          string `bson:"title"`
	RequiredSkills []struct {
		SkillID  string `bson:"skill_id"`
		Priority string `bson:"priority,omitempty"`
	} `bson:"required_skills"`
}

type skillDoc struct {
	SkillID string `bson:"skill_id"`
	Name    string `bson:"name"`
}

func (r *graphRepo) RoleSkillGraph(ctx context.Context, limit int) (*models.Graph, error) {
	if limit <= 0 {
		limit = 50
	}

	cur, err := r.db.Collection("roles").Find(ctx, bson.M{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	var roles []roleDoc
	if err := cur.All(ctx, &roles); err != nil {
		return nil, err
	}

	skillIDs := make([]string, 0)
	seen := map[string]struct{}{}
	for _, role := range roles {
		for _, rs := range role.RequiredSkills {
			if _, ok := seen[rs.SkillID]; !ok {
				seen[rs.SkillID] = struct{}{}
				skillIDs = append(skillIDs, rs.SkillID)
			}
		}
	}

	names := map[string]string{}
	if len(skillIDs) > 0 {
		cur, err := r.db.Collection("skills").Find(ctx, bson.M{"skill_id": bson.M{"$in": skillIDs}})
		if err != nil {
			return nil, err
		}
		var skills []skillDoc
		if err := cur.All(ctx, &skills); err != nil {
			return nil, err
		}
		for _, s := range skills {
			names[s.SkillID] = s.Name
		}
	}

	g := &models.Graph{Nodes: []models.GraphNode{}, Edges: []models.GraphEdge{}}
	added := map[string]struct{}{}
	for _, role := range roles {
		if _, ok := added[role.RoleID]; !ok {
			added[role.RoleID] = struct{}{}
			g.Nodes = append(g.Nodes, models.GraphNode{ID: role.RoleID, Name: role.Title, Type: "role"})
		}
		for _, rs := range role.RequiredSkills {
			name := names[rs.SkillID]
			if name == "" {
				name = rs.SkillID
			}
			if _, ok := added[rs.SkillID]; !ok {
				added[rs.SkillID] = struct{}{}
				g.Nodes = append(g.Nodes, models.GraphNode{ID: rs.SkillID, Name: name, Type: "skill"})
			}
			g.Edges = append(g.Edges, models.GraphEdge{From: role.RoleID, To: rs.SkillID, Label: rs.Priority})
		}
	}
	return g, nil
}
