package services

import (
	"testing"

	"github.com/skillatlas/skillatlas/internal/models"
)

func edge(skill, prereq string) models.SkillPrerequisite {
	return models.SkillPrerequisite{SkillID: skill, PrerequisiteID: prereq}
}

func TestWouldCycle(t *testing.T) {
	tests := []struct {
		name   string
		edges  []models.SkillPrerequisite
		skill  string
		prereq string
		want   bool
	}{
		{
			name:   "empty graph",
			skill:  "react",
			prereq: "javascript",
			want:   false,
		},
		{
			name:   "direct back edge",
			edges:  []models.SkillPrerequisite{edge("react", "javascript")},
			skill:  "javascript",
			prereq: "react",
			want:   true,
		},
		{
			name: "transitive back edge",
			edges: []models.SkillPrerequisite{
				edge("react", "javascript"),
				edge("javascript", "html"),
			},
			skill:  "html",
			prereq: "react",
			want:   true,
		},
		{
			name: "diamond without cycle",
			edges: []models.SkillPrerequisite{
				edge("fullstack", "react"),
				edge("fullstack", "nodejs"),
				edge("react", "javascript"),
				edge("nodejs", "javascript"),
			},
			skill:  "javascript",
			prereq: "html",
			want:   false,
		},
		{
			name: "unrelated chains",
			edges: []models.SkillPrerequisite{
				edge("machine_learning", "python"),
				edge("react", "javascript"),
			},
			skill:  "python",
			prereq: "react",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wouldCycle(tt.edges, tt.skill, tt.prereq); got != tt.want {
				t.Errorf("wouldCycle = %v, want %v", got, tt.want)
			}
		})
	}
}
