package services

import (
	"context"
	"errors"
	"math"

	pgrepo "github.com/skillatlas/skillatlas/internal/repositories/postgres"
	"github.com/skillatlas/skillatlas/internal/utils"
)

// Analysis is the gap between a user's recorded skills and a role's
// requirements. It is recomputed on every request, never persisted.
type Analysis struct {
	RoleName        string   `json:"roleName"`
	UserSkills      []string `json:"userSkills"`
	RequiredSkills  []string `json:"requiredSkills"`
	MissingSkills   []string `json:"missingSkills"`
	MatchPercentage int      `json:"matchPercentage"`
}

type AnalysisService interface {
	Analyze(ctx context.Context, userID, roleID string) (*Analysis, error)
}

type analysisService struct {
	roles  pgrepo.RoleRepository
	skills pgrepo.SkillRepository
}

func NewAnalysisService(roles pgrepo.RoleRepository, skills pgrepo.SkillRepository) AnalysisService {
	return &analysisService{roles: roles, skills: skills}
}

func (s *analysisService) Analyze(ctx context.Context, userID, roleID string) (*Analysis, error) {
	const op = "AnalysisService.Analyze"

	if userID == "" || roleID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and role_id are required", nil)
	}

	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "role not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load role", err)
	}

	owned, err := s.skills.UserSkills(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user skills", err)
	}
	required, err := s.roles.RequiredSkills(ctx, roleID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load role skills", err)
	}

	userNames := make([]string, 0, len(owned))
	for _, o := range owned {
		userNames = append(userNames, o.SkillName)
	}
	requiredNames := make([]string, 0, len(required))
	for _, r := range required {
		requiredNames = append(requiredNames, r.SkillName)
	}

	missing, pct := ComputeGap(userNames, requiredNames)

	return &Analysis{
		RoleName:        role.Name,
		UserSkills:      userNames,
		RequiredSkills:  requiredNames,
		MissingSkills:   missing,
		MatchPercentage: pct,
	}, nil
}

// ComputeGap is the set difference by exact name match, preserving the
// catalog order of required skills. A role with zero required skills
// counts as a full match: nothing is missing.
func ComputeGap(userSkills, requiredSkills []string) (missing []string, matchPercentage int) {
	have := make(map[string]struct{}, len(userSkills))
	for _, s := range userSkills {
		have[s] = struct{}{}
	}

	missing = []string{}
	for _, s := range requiredSkills {
		if _, ok := have[s]; !ok {
			missing = append(missing, s)
		}
	}

	if len(requiredSkills) == 0 {
		return missing, 100
	}
	pct := 100 * float64(len(requiredSkills)-len(missing)) / float64(len(requiredSkills))
	return missing, int(math.Round(pct))
}
