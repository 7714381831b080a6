package services

import (
	"reflect"
	"testing"
)

func TestComputeGap(t *testing.T) {
	tests := []struct {
		name        string
		userSkills  []string
		required    []string
		wantMissing []string
		wantPct     int
	}{
		{
			name:        "partial overlap",
			userSkills:  []string{"JavaScript", "Git"},
			required:    []string{"JavaScript", "React", "Git"},
			wantMissing: []string{"React"},
			wantPct:     67,
		},
		{
			name:        "full match",
			userSkills:  []string{"Python", "SQL"},
			required:    []string{"Python", "SQL"},
			wantMissing: []string{},
			wantPct:     100,
		},
		{
			name:        "no overlap",
			userSkills:  []string{"Photoshop"},
			required:    []string{"Python", "SQL"},
			wantMissing: []string{"Python", "SQL"},
			wantPct:     0,
		},
		{
			name:        "no user skills",
			userSkills:  nil,
			required:    []string{"Docker"},
			wantMissing: []string{"Docker"},
			wantPct:     0,
		},
		{
			name:        "zero required skills counts as full match",
			userSkills:  []string{"Anything"},
			required:    nil,
			wantMissing: []string{},
			wantPct:     100,
		},
		{
			name:        "exact name match only",
			userSkills:  []string{"javascript"},
			required:    []string{"JavaScript"},
			wantMissing: []string{"JavaScript"},
			wantPct:     0,
		},
		{
			name:        "missing keeps catalog order",
			userSkills:  []string{"SQL"},
			required:    []string{"Python", "SQL", "Docker", "AWS"},
			wantMissing: []string{"Python", "Docker", "AWS"},
			wantPct:     25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing, pct := ComputeGap(tt.userSkills, tt.required)
			if !reflect.DeepEqual(missing, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", missing, tt.wantMissing)
			}
			if pct != tt.wantPct {
				t.Errorf("pct = %d, want %d", pct, tt.wantPct)
			}
		})
	}
}

func TestComputeGapRounding(t *testing.T) {
	// 1 of 3 covered is 33.33 -> 33, 2 of 3 is 66.67 -> 67
	_, pct := ComputeGap([]string{"A"}, []string{"A", "B", "C"})
	if pct != 33 {
		t.Errorf("1/3 pct = %d, want 33", pct)
	}
	_, pct = ComputeGap([]string{"A", "B"}, []string{"A", "B", "C"})
	if pct != 67 {
		t.Errorf("2/3 pct = %d, want 67", pct)
	}
}
