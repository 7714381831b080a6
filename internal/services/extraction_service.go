package services

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/skillatlas/skillatlas/internal/providers/llm"
)

// cvTextLimit bounds the prompt to the provider's practical input size.
const cvTextLimit = 3000

// ExtractedSkills is the structured output of the extraction adapter.
// Fallback marks that the provider's reply could not be parsed and the
// fixed default set was substituted; the caller still gets usable data.
type ExtractedSkills struct {
	Skills          []string `json:"skills"`
	TechnicalSkills []string `json:"technicalSkills"`
	SoftSkills      []string `json:"softSkills"`
	Tools           []string `json:"tools"`

	Fallback       bool   `json:"-"`
	FallbackReason string `json:"-"`
}

type ExtractionService interface {
	ExtractSkills(ctx context.Context, cvText string) (*ExtractedSkills, error)
}

type extractionService struct {
	provider llm.Provider
	log      *logrus.Entry
}

func NewExtractionService(provider llm.Provider, log *logrus.Entry) ExtractionService {
	return &extractionService{provider: provider, log: log}
}

func (s *extractionService) ExtractSkills(ctx context.Context, cvText string) (*ExtractedSkills, error) {
	const op = "ExtractionService.ExtractSkills"

	if len(cvText) > cvTextLimit {
		cut := cvTextLimit
		// never split a multibyte rune at the cap
		for cut > 0 && !utf8.RuneStart(cvText[cut]) {
			cut--
		}
		cvText = cvText[:cut]
	}

	raw, err := s.provider.Generate(ctx, extractionPrompt(cvText))
	if err != nil {
		// upstream failure is a real error; only parse failures fall back
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, reason := parseExtractedSkills(raw)
	if out.Fallback {
		s.log.WithFields(logrus.Fields{
			"op":     op,
			"reason": reason,
		}).Warn("skill extraction fell back to default set")
	}
	return out, nil
}

func extractionPrompt(cvText string) string {
	return `You are an expert career advisor and skill extraction specialist. Extract all skills from the CV text provided. Categorize them into technical skills, soft skills, and tools/technologies. Return ONLY a JSON object with these categories. Be comprehensive and identify both explicitly mentioned and implied skills.

Format your response as a valid JSON object:
{
  "skills": ["all skills combined"],
  "technicalSkills": ["programming languages, frameworks, databases, etc"],
  "softSkills": ["communication, leadership, problem-solving, etc"],
  "tools": ["specific tools, software, platforms"]
}

CV Text:
` + cvText + `

JSON Response:`
}

// parseExtractedSkills applies the brace-extraction policy: the first
// balanced JSON object in the reply, or the fixed fallback set. It never
// fails; the tagged result carries the reason instead.
func parseExtractedSkills(raw string) (*ExtractedSkills, string) {
	obj, ok := firstJSONObject(raw)
	if !ok {
		return fallbackSkills("no JSON object in provider response"), "no JSON object in provider response"
	}

	var parsed struct {
		Skills          []string `json:"skills"`
		TechnicalSkills []string `json:"technicalSkills"`
		TechnicalSnake  []string `json:"technical_skills"`
		SoftSkills      []string `json:"softSkills"`
		SoftSnake       []string `json:"soft_skills"`
		Tools           []string `json:"tools"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		reason := "invalid JSON object: " + err.Error()
		return fallbackSkills(reason), reason
	}

	technical := parsed.TechnicalSkills
	if len(technical) == 0 {
		technical = parsed.TechnicalSnake
	}
	soft := parsed.SoftSkills
	if len(soft) == 0 {
		soft = parsed.SoftSnake
	}

	return &ExtractedSkills{
		Skills:          orEmpty(parsed.Skills),
		TechnicalSkills: orEmpty(technical),
		SoftSkills:      orEmpty(soft),
		Tools:           orEmpty(parsed.Tools),
	}, ""
}

func fallbackSkills(reason string) *ExtractedSkills {
	return &ExtractedSkills{
		Skills:          []string{"JavaScript", "React", "Python", "Communication", "Problem-solving"},
		TechnicalSkills: []string{"JavaScript", "React", "Python", "Node.js", "SQL"},
		SoftSkills:      []string{"Communication", "Problem-solving", "Teamwork", "Leadership"},
		Tools:           []string{"VS Code", "Git", "Docker"},
		Fallback:        true,
		FallbackReason:  reason,
	}
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
