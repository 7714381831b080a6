package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillatlas/skillatlas/internal/cache"
	"github.com/skillatlas/skillatlas/internal/models"
	pgrepo "github.com/skillatlas/skillatlas/internal/repositories/postgres"
	"github.com/skillatlas/skillatlas/internal/utils"
)

const (
	cacheKeyRoles      = "catalog:roles"
	cacheKeyCategories = "catalog:categories"
	cacheKeySkills     = "catalog:skills"
	catalogCacheTTL    = 5 * time.Minute
)

// CatalogService serves the reference data: roles, skills and their
// links. Catalog reads dominate, so the role list and category list sit
// behind the Redis cache.
type CatalogService interface {
	Roles(ctx context.Context) ([]models.Role, error)
	RoleByID(ctx context.Context, roleID string) (*models.Role, error)
	Categories(ctx context.Context) ([]string, error)
	RequiredSkills(ctx context.Context, roleID string) ([]pgrepo.RequiredSkill, error)

	Skills(ctx context.Context) ([]models.Skill, error)
	// EnsureTechnicalSkills inserts unseen skill names as new catalog
	// rows with default metadata, returning name -> skill id for every
	// requested name that now exists.
	EnsureTechnicalSkills(ctx context.Context, names []string) (map[string]string, error)
	// AddPrerequisite links two skills, rejecting edges that would close
	// a cycle in the prerequisite graph.
	AddPrerequisite(ctx context.Context, skillID, prerequisiteID string) error
}

type catalogService struct {
	roles  pgrepo.RoleRepository
	skills pgrepo.SkillRepository
	cache  cache.Cache
	log    *logrus.Entry
}

func NewCatalogService(roles pgrepo.RoleRepository, skills pgrepo.SkillRepository, c cache.Cache, log *logrus.Entry) CatalogService {
	return &catalogService{roles: roles, skills: skills, cache: c, log: log}
}

func (s *catalogService) Roles(ctx context.Context) ([]models.Role, error) {
	const op = "CatalogService.Roles"

	var cached []models.Role
	if s.cache != nil {
		if hit, err := s.cache.GetJSON(ctx, cacheKeyRoles, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.roles.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list roles", err)
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKeyRoles, rows, catalogCacheTTL); err != nil {
			s.log.WithError(err).Debug("role cache write failed")
		}
	}
	return rows, nil
}

func (s *catalogService) RoleByID(ctx context.Context, roleID string) (*models.Role, error) {
	const op = "CatalogService.RoleByID"

	if roleID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "role_id is required", nil)
	}
	row, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "role not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load role", err)
	}
	return row, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	const op = "CatalogService.Categories"

	var cached []string
	if s.cache != nil {
		if hit, err := s.cache.GetJSON(ctx, cacheKeyCategories, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out, err := s.roles.Categories(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list categories", err)
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKeyCategories, out, catalogCacheTTL); err != nil {
			s.log.WithError(err).Debug("category cache write failed")
		}
	}
	return out, nil
}

func (s *catalogService) RequiredSkills(ctx context.Context, roleID string) ([]pgrepo.RequiredSkill, error) {
	const op = "CatalogService.RequiredSkills"

	rows, err := s.roles.RequiredSkills(ctx, roleID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load role skills", err)
	}
	return rows, nil
}

func (s *catalogService) Skills(ctx context.Context) ([]models.Skill, error) {
	const op = "CatalogService.Skills"

	var cached []models.Skill
	if s.cache != nil {
		if hit, err := s.cache.GetJSON(ctx, cacheKeySkills, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.skills.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list skills", err)
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKeySkills, rows, catalogCacheTTL); err != nil {
			s.log.WithError(err).Debug("skill cache write failed")
		}
	}
	return rows, nil
}

func (s *catalogService) EnsureTechnicalSkills(ctx context.Context, names []string) (map[string]string, error) {
	const op = "CatalogService.EnsureTechnicalSkills"

	ids := make(map[string]string, len(names))
	if len(names) == 0 {
		return ids, nil
	}

	existing, err := s.skills.ListByNames(ctx, names)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to look up skills", err)
	}
	for _, sk := range existing {
		ids[sk.Name] = sk.ID
	}

	inserted := false
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := ids[name]; ok {
			continue
		}
		sk := &models.Skill{
			ID:                    uuid.NewString(),
			Name:                  name,
			Category:              "Technical",
			DifficultyLevel:       "Intermediate",
			EstimatedLearningTime: 40,
			Description:           "Technical skill: " + name,
			CreatedAt:             time.Now().UTC(),
		}
		if err := s.skills.Insert(ctx, sk); err != nil {
			// concurrent upload may have inserted the same name; re-read
			again, lerr := s.skills.ListByNames(ctx, []string{name})
			if lerr == nil && len(again) > 0 {
				ids[name] = again[0].ID
				continue
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to insert skill", err)
		}
		ids[name] = sk.ID
		inserted = true
	}

	if inserted && s.cache != nil {
		if err := s.cache.Del(ctx, cacheKeySkills); err != nil {
			s.log.WithError(err).Debug("skill cache invalidation failed")
		}
	}
	return ids, nil
}

func (s *catalogService) AddPrerequisite(ctx context.Context, skillID, prerequisiteID string) error {
	const op = "CatalogService.AddPrerequisite"

	if skillID == "" || prerequisiteID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "skill_id and prerequisite_id are required", nil)
	}
	if skillID == prerequisiteID {
		return utils.E(utils.CodeInvalidArgument, op, "a skill cannot be its own prerequisite", nil)
	}

	edges, err := s.skills.Prerequisites(ctx)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to load prerequisite graph", err)
	}
	if wouldCycle(edges, skillID, prerequisiteID) {
		return utils.E(utils.CodeInvalidArgument, op, "prerequisite would create a cycle", nil)
	}

	p := &models.SkillPrerequisite{
		ID:             uuid.NewString(),
		SkillID:        skillID,
		PrerequisiteID: prerequisiteID,
	}
	if err := s.skills.InsertPrerequisite(ctx, p); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to insert prerequisite", err)
	}
	return nil
}

// wouldCycle reports whether adding skill -> prereq closes a cycle, i.e.
// whether skill is already reachable from prereq along existing edges.
func wouldCycle(edges []models.SkillPrerequisite, skillID, prerequisiteID string) bool {
	adj := make(map[string][]string, len(edges))
	for _, e := range edges {
		adj[e.SkillID] = append(adj[e.SkillID], e.PrerequisiteID)
	}

	stack := []string{prerequisiteID}
	seen := map[string]struct{}{}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == skillID {
			return true
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		stack = append(stack, adj[n]...)
	}
	return false
}
