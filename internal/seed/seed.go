// Package seed loads the starter role and skill catalog. Every insert
// is ON CONFLICT DO NOTHING so running it on every boot is safe.
package seed

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/services"
)

var catalogRoles = []models.Role{
	{
		ID:               "software_engineer",
		Name:             "Software Engineer",
		Category:         "Engineering",
		Description:      "Design, develop, and maintain software applications using modern technologies",
		Responsibilities: pq.StringArray{"Write clean code", "Design systems", "Test applications", "Collaborate with teams"},
		AverageSalary:    "$95,000",
		DemandLevel:      "High",
	},
	{
		ID:               "frontend_developer",
		Name:             "Frontend Developer",
		Category:         "Engineering",
		Description:      "Build user-facing web applications and interfaces with modern frameworks",
		Responsibilities: pq.StringArray{"Create UI components", "Optimize performance", "Ensure responsive design"},
		AverageSalary:    "$85,000",
		DemandLevel:      "High",
	},
	{
		ID:               "backend_developer",
		Name:             "Backend Developer",
		Category:         "Engineering",
		Description:      "Build server-side logic and database systems that power applications",
		Responsibilities: pq.StringArray{"Design APIs", "Manage databases", "Optimize server performance"},
		AverageSalary:    "$92,000",
		DemandLevel:      "High",
	},
	{
		ID:               "data_scientist",
		Name:             "Data Scientist",
		Category:         "Data & Analytics",
		Description:      "Analyze complex data and build predictive models using machine learning",
		Responsibilities: pq.StringArray{"Build ML models", "Analyze data", "Create visualizations"},
		AverageSalary:    "$120,000",
		DemandLevel:      "Very High",
	},
	{
		ID:               "devops_engineer",
		Name:             "DevOps Engineer",
		Category:         "Engineering",
		Description:      "Manage infrastructure and deployment pipelines for reliable software delivery",
		Responsibilities: pq.StringArray{"Automate deployments", "Monitor systems", "Manage cloud infrastructure"},
		AverageSalary:    "$105,000",
		DemandLevel:      "High",
	},
}

var catalogSkills = []models.Skill{
	{ID: "python", Name: "Python", Category: "Programming Languages", DifficultyLevel: "Intermediate", EstimatedLearningTime: 60, Description: "General-purpose programming language"},
	{ID: "javascript", Name: "JavaScript", Category: "Programming Languages", DifficultyLevel: "Intermediate", EstimatedLearningTime: 50, Description: "Essential web programming language"},
	{ID: "react", Name: "React", Category: "Frontend Frameworks", DifficultyLevel: "Intermediate", EstimatedLearningTime: 40, Description: "Popular UI library for building web apps"},
	{ID: "nodejs", Name: "Node.js", Category: "Backend Frameworks", DifficultyLevel: "Intermediate", EstimatedLearningTime: 45, Description: "JavaScript runtime for server-side development"},
	{ID: "sql", Name: "SQL", Category: "Databases", DifficultyLevel: "Beginner", EstimatedLearningTime: 30, Description: "Standard language for relational databases"},
	{ID: "mongodb", Name: "MongoDB", Category: "Databases", DifficultyLevel: "Intermediate", EstimatedLearningTime: 35, Description: "Popular NoSQL database"},
	{ID: "git", Name: "Git", Category: "Tools", DifficultyLevel: "Beginner", EstimatedLearningTime: 20, Description: "Version control system"},
	{ID: "docker", Name: "Docker", Category: "DevOps", DifficultyLevel: "Advanced", EstimatedLearningTime: 40, Description: "Containerization platform"},
	{ID: "aws", Name: "AWS", Category: "Cloud Platforms", DifficultyLevel: "Advanced", EstimatedLearningTime: 60, Description: "Amazon cloud services"},
	{ID: "machine_learning", Name: "Machine Learning", Category: "Data Science", DifficultyLevel: "Expert", EstimatedLearningTime: 120, Description: "AI and predictive modeling"},
	{ID: "data_analysis", Name: "Data Analysis", Category: "Data Science", DifficultyLevel: "Intermediate", EstimatedLearningTime: 50, Description: "Analyzing and interpreting data"},
	{ID: "communication", Name: "Communication", Category: "Soft Skills", DifficultyLevel: "Intermediate", EstimatedLearningTime: 40, Description: "Effective communication in teams"},
	{ID: "problem_solving", Name: "Problem Solving", Category: "Soft Skills", DifficultyLevel: "Intermediate", EstimatedLearningTime: 40, Description: "Analytical thinking and problem resolution"},
}

var catalogRoleSkills = []models.RoleSkill{
	{RoleID: "software_engineer", SkillID: "python", Importance: "critical", ProficiencyLevel: "Advanced"},
	{RoleID: "software_engineer", SkillID: "javascript", Importance: "high", ProficiencyLevel: "Advanced"},
	{RoleID: "software_engineer", SkillID: "git", Importance: "critical", ProficiencyLevel: "Intermediate"},
	{RoleID: "software_engineer", SkillID: "sql", Importance: "high", ProficiencyLevel: "Intermediate"},

	{RoleID: "frontend_developer", SkillID: "javascript", Importance: "critical", ProficiencyLevel: "Expert"},
	{RoleID: "frontend_developer", SkillID: "react", Importance: "critical", ProficiencyLevel: "Advanced"},
	{RoleID: "frontend_developer", SkillID: "git", Importance: "high", ProficiencyLevel: "Intermediate"},

	{RoleID: "backend_developer", SkillID: "python", Importance: "critical", ProficiencyLevel: "Advanced"},
	{RoleID: "backend_developer", SkillID: "nodejs", Importance: "high", ProficiencyLevel: "Advanced"},
	{RoleID: "backend_developer", SkillID: "sql", Importance: "critical", ProficiencyLevel: "Advanced"},
	{RoleID: "backend_developer", SkillID: "mongodb", Importance: "high", ProficiencyLevel: "Intermediate"},
	{RoleID: "backend_developer", SkillID: "git", Importance: "critical", ProficiencyLevel: "Intermediate"},

	{RoleID: "data_scientist", SkillID: "python", Importance: "critical", ProficiencyLevel: "Expert"},
	{RoleID: "data_scientist", SkillID: "machine_learning", Importance: "critical", ProficiencyLevel: "Expert"},
	{RoleID: "data_scientist", SkillID: "data_analysis", Importance: "critical", ProficiencyLevel: "Advanced"},
	{RoleID: "data_scientist", SkillID: "sql", Importance: "high", ProficiencyLevel: "Intermediate"},

	{RoleID: "devops_engineer", SkillID: "docker", Importance: "critical", ProficiencyLevel: "Advanced"},
	{RoleID: "devops_engineer", SkillID: "aws", Importance: "critical", ProficiencyLevel: "Advanced"},
	{RoleID: "devops_engineer", SkillID: "git", Importance: "high", ProficiencyLevel: "Advanced"},
	{RoleID: "devops_engineer", SkillID: "python", Importance: "high", ProficiencyLevel: "Intermediate"},
}

// catalogPrerequisites are the known hard dependencies between starter
// skills, expressed as skill -> prerequisite.
var catalogPrerequisites = [][2]string{
	{"react", "javascript"},
	{"nodejs", "javascript"},
	{"machine_learning", "python"},
	{"data_analysis", "python"},
}

func Run(ctx context.Context, db *gorm.DB, catalog services.CatalogService, log *logrus.Entry) error {
	insert := func(v any) error {
		return db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(v).Error
	}

	for i := range catalogRoles {
		if err := insert(&catalogRoles[i]); err != nil {
			return err
		}
	}
	for i := range catalogSkills {
		if err := insert(&catalogSkills[i]); err != nil {
			return err
		}
	}
	for _, rs := range catalogRoleSkills {
		rs.ID = uuid.NewString()
		if err := insert(&rs); err != nil {
			return err
		}
	}
	// prerequisite edges go through the catalog service so the acyclic
	// check covers every write path
	for _, p := range catalogPrerequisites {
		if err := catalog.AddPrerequisite(ctx, p[0], p[1]); err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{
		"roles":  len(catalogRoles),
		"skills": len(catalogSkills),
	}).Info("catalog seeded")
	return nil
}
