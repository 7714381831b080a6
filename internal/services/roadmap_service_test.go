package services

import "testing"

func TestParseRoadmapPlan(t *testing.T) {
	missing := []string{"React", "Docker", "AWS", "SQL"}

	t.Run("valid plan passes through", func(t *testing.T) {
		raw := `{"name":"Frontend Path","estimatedDuration":6,"milestones":[{"name":"Basics","phase":"Foundation","estimatedWeeks":8,"skills":[]}]}`
		plan, _ := parseRoadmapPlan(raw, "Frontend Developer", missing, 12)
		if plan.Fallback {
			t.Fatal("unexpected fallback")
		}
		if plan.Name != "Frontend Path" || plan.EstimatedDuration != 6 {
			t.Errorf("plan = %+v", plan)
		}
		if len(plan.Milestones) != 1 {
			t.Errorf("milestones = %d, want 1", len(plan.Milestones))
		}
	})

	t.Run("missing fields get defaults", func(t *testing.T) {
		plan, _ := parseRoadmapPlan(`{}`, "Data Scientist", missing, 9)
		if plan.Fallback {
			t.Fatal("unexpected fallback")
		}
		if plan.Name != "Data Scientist Learning Path" {
			t.Errorf("name = %q", plan.Name)
		}
		if plan.EstimatedDuration != 9 {
			t.Errorf("duration = %d, want 9", plan.EstimatedDuration)
		}
		if plan.Milestones == nil {
			t.Error("milestones must not be nil")
		}
	})

	t.Run("unparseable reply falls back", func(t *testing.T) {
		plan, reason := parseRoadmapPlan("no structured output here", "DevOps Engineer", missing, 12)
		if !plan.Fallback {
			t.Fatal("expected fallback")
		}
		if reason == "" {
			t.Error("expected a reason")
		}
	})
}

func TestFallbackRoadmap(t *testing.T) {
	missing := []string{"React", "Docker", "AWS", "SQL"}
	plan := fallbackRoadmap("Frontend Developer", missing, 12, "test")

	if plan.Name != "Roadmap to Frontend Developer" {
		t.Errorf("name = %q", plan.Name)
	}
	if plan.EstimatedDuration != 12 {
		t.Errorf("duration = %d, want 12", plan.EstimatedDuration)
	}
	if len(plan.Milestones) != 1 {
		t.Fatalf("milestones = %d, want 1", len(plan.Milestones))
	}

	m := plan.Milestones[0]
	if m.Name != "Foundation Phase" || m.Phase != "Foundation" || m.EstimatedWeeks != 12 {
		t.Errorf("milestone = %+v", m)
	}
	// only the first three missing skills make the fallback plan
	if len(m.Skills) != 3 {
		t.Fatalf("skills = %d, want 3", len(m.Skills))
	}
	for i, want := range []string{"React", "Docker", "AWS"} {
		s := m.Skills[i]
		if s.Name != want {
			t.Errorf("skill[%d] = %q, want %q", i, s.Name, want)
		}
		if s.EstimatedHours != 40 || !s.IsPrerequisite {
			t.Errorf("skill[%d] = %+v", i, s)
		}
	}
}

func TestFallbackRoadmapFewMissingSkills(t *testing.T) {
	plan := fallbackRoadmap("Software Engineer", []string{"Git"}, 12, "test")
	if got := len(plan.Milestones[0].Skills); got != 1 {
		t.Errorf("skills = %d, want 1", got)
	}
}
