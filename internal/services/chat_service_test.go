package services

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/providers/llm"
	pgrepo "github.com/skillatlas/skillatlas/internal/repositories/postgres"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type recordingChatRepo struct {
	msgs []models.ChatMessage
}

func (r *recordingChatRepo) Insert(ctx context.Context, msg *models.ChatMessage) error {
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *recordingChatRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	return r.msgs, nil
}

func (r *recordingChatRepo) LatestN(ctx context.Context, userID string, n int) ([]models.ChatMessage, error) {
	if len(r.msgs) > n {
		return r.msgs[len(r.msgs)-n:], nil
	}
	return r.msgs, nil
}

type chatSkillRepo struct {
	pgrepo.SkillRepository
	owned []pgrepo.OwnedSkill
}

func (f *chatSkillRepo) UserSkills(ctx context.Context, userID string) ([]pgrepo.OwnedSkill, error) {
	return f.owned, nil
}

type chatRoadmapRepo struct {
	pgrepo.RoadmapRepository
}

func (f *chatRoadmapRepo) LatestByUser(ctx context.Context, userID string) (*models.Roadmap, error) {
	return nil, utils.ErrNotFound
}

func newChatFixture(p llm.Provider) (ChatService, *recordingChatRepo) {
	chats := &recordingChatRepo{}
	return NewChatService(p, chats, &chatSkillRepo{}, &chatRoadmapRepo{}, nil, testLogEntry()), chats
}

func msg(role, content string) models.ChatMessage {
	return models.ChatMessage{Role: role, Content: content}
}

func TestBuildChatPrompt(t *testing.T) {
	t.Run("includes persona and context", func(t *testing.T) {
		prompt := buildChatPrompt([]string{"Python", "SQL"}, "Data Scientist", nil, "How do I start?")

		if !strings.Contains(prompt, "You are SkillAtlas Assistant") {
			t.Error("missing persona preamble")
		}
		if !strings.Contains(prompt, "User's current skills: Python, SQL") {
			t.Error("missing skills line")
		}
		if !strings.Contains(prompt, "User's target role: Data Scientist") {
			t.Error("missing target role line")
		}
		if !strings.HasSuffix(prompt, "User: How do I start?\nAssistant:") {
			t.Errorf("prompt must end with the current message, got tail %q", prompt[len(prompt)-60:])
		}
	})

	t.Run("omits empty context lines", func(t *testing.T) {
		prompt := buildChatPrompt(nil, "", nil, "hello")
		if strings.Contains(prompt, "current skills") {
			t.Error("skills line should be omitted")
		}
		if strings.Contains(prompt, "target role") {
			t.Error("role line should be omitted")
		}
	})

	t.Run("drops current message from replayed history", func(t *testing.T) {
		history := []models.ChatMessage{
			msg(models.ChatRoleUser, "first question"),
			msg(models.ChatRoleAssistant, "first answer"),
			msg(models.ChatRoleUser, "second question"),
		}
		prompt := buildChatPrompt(nil, "", history, "second question")

		if got := strings.Count(prompt, "second question"); got != 1 {
			t.Errorf("current message appears %d times, want 1", got)
		}
		if !strings.Contains(prompt, "User: first question\nAssistant: first answer\n") {
			t.Error("earlier turns missing from prompt")
		}
	})

	t.Run("replays only the newest turns", func(t *testing.T) {
		var history []models.ChatMessage
		for i := 0; i < 10; i++ {
			history = append(history, msg(models.ChatRoleUser, "question "+string(rune('a'+i))))
			history = append(history, msg(models.ChatRoleAssistant, "answer "+string(rune('a'+i))))
		}
		prompt := buildChatPrompt(nil, "", history, "new question")

		if strings.Contains(prompt, "question a") {
			t.Error("oldest turn should have been trimmed")
		}
		if !strings.Contains(prompt, "answer j") {
			t.Error("newest turn should survive")
		}
		// trimmed history plus the current message line
		lines := 0
		for _, l := range strings.Split(prompt, "\n") {
			if strings.HasPrefix(l, "User: ") || strings.HasPrefix(l, "Assistant: ") {
				lines++
			}
		}
		if lines != chatPromptWindow+1 {
			t.Errorf("replayed lines = %d, want %d", lines, chatPromptWindow+1)
		}
	})
}

func TestChatSend(t *testing.T) {
	ctx := context.Background()

	t.Run("persists user message and reply", func(t *testing.T) {
		svc, repo := newChatFixture(&fakeProvider{reply: "Start with Python."})

		out, err := svc.Send(ctx, "u1", "Where do I begin?")
		if err != nil {
			t.Fatalf("Send: %v", err)
		}
		if out.Role != models.ChatRoleAssistant || out.Content != "Start with Python." {
			t.Errorf("reply = %+v", out)
		}
		if len(repo.msgs) != 2 {
			t.Fatalf("persisted %d messages, want 2", len(repo.msgs))
		}
		if repo.msgs[0].Role != models.ChatRoleUser || repo.msgs[0].Content != "Where do I begin?" {
			t.Errorf("first persisted message = %+v", repo.msgs[0])
		}
	})

	t.Run("user message survives provider failure", func(t *testing.T) {
		svc, repo := newChatFixture(&fakeProvider{err: errors.New("model unavailable")})

		_, err := svc.Send(ctx, "u1", "Where do I begin?")
		if !utils.IsCode(err, utils.CodeInternal) {
			t.Fatalf("err = %v, want INTERNAL", err)
		}
		if len(repo.msgs) != 1 {
			t.Fatalf("persisted %d messages, want 1", len(repo.msgs))
		}
		if repo.msgs[0].Role != models.ChatRoleUser {
			t.Errorf("surviving message role = %q, want user", repo.msgs[0].Role)
		}
	})
}

// chunkProvider streams a fixed set of chunks, all buffered up front.
type chunkProvider struct {
	chunks []string
}

func (p *chunkProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func (p *chunkProvider) StreamAnswer(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	out := make(chan string, len(p.chunks))
	errs := make(chan error, 1)
	for _, c := range p.chunks {
		out <- c
	}
	close(out)
	close(errs)
	return out, errs
}

func (p *chunkProvider) Close() error { return nil }

func TestSendStreamStopsWhenContextCancelled(t *testing.T) {
	chunks := make([]string, 200)
	for i := range chunks {
		chunks[i] = "chunk "
	}
	svc, _ := newChatFixture(&chunkProvider{chunks: chunks})

	baseline := runtime.NumGoroutine()
	ctx, cancel := context.WithCancel(context.Background())
	if _, _, err := svc.SendStream(ctx, "u1", "hello"); err != nil {
		cancel()
		t.Fatalf("SendStream: %v", err)
	}

	// read nothing, then cancel: the forwarding goroutine must exit
	// even though its output buffer is full
	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > baseline {
		if time.Now().After(deadline) {
			t.Fatalf("forwarding goroutine still running after cancel (%d goroutines, baseline %d)",
				runtime.NumGoroutine(), baseline)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
