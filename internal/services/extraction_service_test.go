package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseExtractedSkills(t *testing.T) {
	t.Run("clean reply", func(t *testing.T) {
		out, _ := parseExtractedSkills(`{"skills":["Go","SQL"],"technicalSkills":["Go"],"softSkills":["Teamwork"],"tools":["Git"]}`)
		if out.Fallback {
			t.Fatal("unexpected fallback")
		}
		if !reflect.DeepEqual(out.Skills, []string{"Go", "SQL"}) {
			t.Errorf("skills = %v", out.Skills)
		}
		if !reflect.DeepEqual(out.Tools, []string{"Git"}) {
			t.Errorf("tools = %v", out.Tools)
		}
	})

	t.Run("reply wrapped in prose", func(t *testing.T) {
		raw := "Here are the extracted skills:\n```json\n{\"skills\":[\"Python\"],\"technicalSkills\":[\"Python\"],\"softSkills\":[],\"tools\":[]}\n```"
		out, _ := parseExtractedSkills(raw)
		if out.Fallback {
			t.Fatal("unexpected fallback")
		}
		if !reflect.DeepEqual(out.TechnicalSkills, []string{"Python"}) {
			t.Errorf("technical = %v", out.TechnicalSkills)
		}
	})

	t.Run("snake_case keys accepted", func(t *testing.T) {
		out, _ := parseExtractedSkills(`{"skills":["Rust"],"technical_skills":["Rust"],"soft_skills":["Focus"],"tools":[]}`)
		if out.Fallback {
			t.Fatal("unexpected fallback")
		}
		if !reflect.DeepEqual(out.TechnicalSkills, []string{"Rust"}) {
			t.Errorf("technical = %v", out.TechnicalSkills)
		}
		if !reflect.DeepEqual(out.SoftSkills, []string{"Focus"}) {
			t.Errorf("soft = %v", out.SoftSkills)
		}
	})

	t.Run("missing arrays come back empty not nil", func(t *testing.T) {
		out, _ := parseExtractedSkills(`{"skills":["Go"]}`)
		if out.Tools == nil || out.SoftSkills == nil {
			t.Error("expected empty slices, got nil")
		}
	})

	t.Run("no JSON falls back to default set", func(t *testing.T) {
		out, reason := parseExtractedSkills("I am unable to comply.")
		if !out.Fallback {
			t.Fatal("expected fallback")
		}
		if reason == "" || out.FallbackReason == "" {
			t.Error("expected a fallback reason")
		}
		if len(out.Skills) == 0 || len(out.TechnicalSkills) == 0 {
			t.Error("fallback set must not be empty")
		}
	})

	t.Run("malformed JSON falls back", func(t *testing.T) {
		out, _ := parseExtractedSkills(`{"skills": [truncated`)
		if !out.Fallback {
			t.Fatal("expected fallback")
		}
	})
}

func TestExtractSkillsProviderError(t *testing.T) {
	wantErr := errors.New("upstream down")
	svc := NewExtractionService(&fakeProvider{err: wantErr}, testLogEntry())

	_, err := svc.ExtractSkills(context.Background(), "some cv text")
	if err == nil {
		t.Fatal("expected error when the provider fails")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestExtractSkillsTruncatesLongInput(t *testing.T) {
	long := make([]byte, cvTextLimit*2)
	for i := range long {
		long[i] = 'x'
	}

	fp := &fakeProvider{reply: `{"skills":[],"technicalSkills":[],"softSkills":[],"tools":[]}`}
	svc := NewExtractionService(fp, testLogEntry())

	if _, err := svc.ExtractSkills(context.Background(), string(long)); err != nil {
		t.Fatalf("ExtractSkills: %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", fp.calls)
	}
}

func TestExtractSkillsTruncatesOnRuneBoundary(t *testing.T) {
	// place a multibyte rune straddling the byte cap
	long := strings.Repeat("x", cvTextLimit-1) + strings.Repeat("é", 10)

	fp := &fakeProvider{reply: `{"skills":[],"technicalSkills":[],"softSkills":[],"tools":[]}`}
	svc := NewExtractionService(fp, testLogEntry())

	if _, err := svc.ExtractSkills(context.Background(), long); err != nil {
		t.Fatalf("ExtractSkills: %v", err)
	}
	if !utf8.ValidString(fp.prompt) {
		t.Error("prompt contains a split rune")
	}
}
