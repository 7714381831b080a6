package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/providers/llm"
	pgrepo "github.com/skillatlas/skillatlas/internal/repositories/postgres"
	"github.com/skillatlas/skillatlas/internal/utils"
)

const defaultRoadmapMonths = 12

// RoadmapPlan is what the generation adapter asks the model for.
type RoadmapPlan struct {
	Name              string             `json:"name"`
	EstimatedDuration int                `json:"estimatedDuration"`
	Milestones        []models.Milestone `json:"milestones"`

	Fallback       bool   `json:"-"`
	FallbackReason string `json:"-"`
}

type RoadmapService interface {
	Generate(ctx context.Context, userID, roleID string, estimatedMonths int) (*models.Roadmap, error)
	Latest(ctx context.Context, userID string) (*models.Roadmap, error)
}

type roadmapService struct {
	provider llm.Provider
	roles    pgrepo.RoleRepository
	skills   pgrepo.SkillRepository
	roadmaps pgrepo.RoadmapRepository
	log      *logrus.Entry
}

func NewRoadmapService(provider llm.Provider, roles pgrepo.RoleRepository, skills pgrepo.SkillRepository, roadmaps pgrepo.RoadmapRepository, log *logrus.Entry) RoadmapService {
	return &roadmapService{provider: provider, roles: roles, skills: skills, roadmaps: roadmaps, log: log}
}

func (s *roadmapService) Generate(ctx context.Context, userID, roleID string, estimatedMonths int) (*models.Roadmap, error) {
	const op = "RoadmapService.Generate"

	if userID == "" || roleID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and role_id are required", nil)
	}
	if estimatedMonths <= 0 {
		estimatedMonths = defaultRoadmapMonths
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
	missing, _ := ComputeGap(userNames, requiredNames)

	raw, err := s.provider.Generate(ctx, roadmapPrompt(userNames, role.Name, missing, estimatedMonths))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to generate roadmap", err)
	}

	plan, reason := parseRoadmapPlan(raw, role.Name, missing, estimatedMonths)
	if plan.Fallback {
		s.log.WithFields(logrus.Fields{
			"op":     op,
			"role":   role.Name,
			"reason": reason,
		}).Warn("roadmap generation fell back to single-phase plan")
	}

	milestonesJSON, err := json.Marshal(plan.Milestones)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode milestones", err)
	}

	now := time.Now().UTC()
	row := &models.Roadmap{
		ID:                uuid.NewString(),
		UserID:            userID,
		RoleID:            roleID,
		Name:              plan.Name,
		EstimatedDuration: plan.EstimatedDuration,
		Milestones:        datatypes.JSON(milestonesJSON),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.roadmaps.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist roadmap", err)
	}
	return row, nil
}

func (s *roadmapService) Latest(ctx context.Context, userID string) (*models.Roadmap, error) {
	const op = "RoadmapService.Latest"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	row, err := s.roadmaps.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "no roadmap yet", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load roadmap", err)
	}
	return row, nil
}

func roadmapPrompt(userSkills []string, targetRole string, missingSkills []string, months int) string {
	return fmt.Sprintf(`You are an expert career coach creating personalized learning roadmaps. Generate a detailed, time-sequenced learning path that takes the user from their current skill level to their target role.

Structure the roadmap into phases (Foundation, Intermediate, Advanced) with specific milestones. Return ONLY a JSON object.

Format your response as a valid JSON object:
{
  "name": "Roadmap name",
  "estimatedDuration": total months (number),
  "milestones": [
    {
      "name": "milestone name",
      "phase": "Foundation/Intermediate/Advanced",
      "estimatedWeeks": number,
      "skills": [
        {
          "name": "skill name",
          "description": "what this skill involves",
          "estimatedHours": number,
          "isPrerequisite": boolean,
          "resources": []
        }
      ]
    }
  ]
}

Current skills: %s
Target role: %s
Skills to acquire: %s
Target duration: %d months

JSON Response:`, strings.Join(userSkills, ", "), targetRole, strings.Join(missingSkills, ", "), months)
}

// parseRoadmapPlan applies the same brace-extraction policy as skill
// extraction. A parse failure yields a single Foundation milestone
// covering the first three missing skills.
func parseRoadmapPlan(raw, targetRole string, missingSkills []string, months int) (*RoadmapPlan, string) {
	obj, ok := firstJSONObject(raw)
	if !ok {
		reason := "no JSON object in provider response"
		return fallbackRoadmap(targetRole, missingSkills, months, reason), reason
	}

	var plan RoadmapPlan
	if err := json.Unmarshal([]byte(obj), &plan); err != nil {
		reason := "invalid JSON object: " + err.Error()
		return fallbackRoadmap(targetRole, missingSkills, months, reason), reason
	}

	if plan.Name == "" {
		plan.Name = targetRole + " Learning Path"
	}
	if plan.EstimatedDuration <= 0 {
		plan.EstimatedDuration = months
	}
	if plan.Milestones == nil {
		plan.Milestones = []models.Milestone{}
	}
	return &plan, ""
}

func fallbackRoadmap(targetRole string, missingSkills []string, months int, reason string) *RoadmapPlan {
	first := missingSkills
	if len(first) > 3 {
		first = first[:3]
	}
	steps := make([]models.SkillStep, 0, len(first))
	for _, name := range first {
		steps = append(steps, models.SkillStep{
			Name:           name,
			Description:    "Learn " + name + " fundamentals",
			EstimatedHours: 40,
			IsPrerequisite: true,
			Resources:      []string{},
		})
	}
	return &RoadmapPlan{
		Name:              "Roadmap to " + targetRole,
		EstimatedDuration: months,
		Milestones: []models.Milestone{{
			Name:           "Foundation Phase",
			Phase:          "Foundation",
			EstimatedWeeks: 12,
			Skills:         steps,
		}},
		Fallback:       true,
		FallbackReason: reason,
	}
}
