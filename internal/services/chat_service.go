package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/providers/llm"
	pgrepo "github.com/skillatlas/skillatlas/internal/repositories/postgres"
	"github.com/skillatlas/skillatlas/internal/utils"
)

const (
	chatHistoryLimit = 20 // messages fetched as context
	chatPromptWindow = 6  // newest messages actually placed in the prompt
)

type ChatService interface {
	History(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error)
	// Send persists the user's message, asks the assistant, persists the
	// reply. If the provider fails the user message survives; nothing is
	// rolled back.
	Send(ctx context.Context, userID, content string) (*models.ChatMessage, error)
	// SendStream is the websocket variant: chunks arrive on the returned
	// channel and the full reply is persisted once the stream ends.
	SendStream(ctx context.Context, userID, content string) (<-chan string, <-chan error, error)
}

type chatService struct {
	provider llm.Provider
	chats    pgrepo.ChatRepository
	skills   pgrepo.SkillRepository
	roadmaps pgrepo.RoadmapRepository
	roles    pgrepo.RoleRepository
	log      *logrus.Entry
}

func NewChatService(provider llm.Provider, chats pgrepo.ChatRepository, skills pgrepo.SkillRepository, roadmaps pgrepo.RoadmapRepository, roles pgrepo.RoleRepository, log *logrus.Entry) ChatService {
	return &chatService{provider: provider, chats: chats, skills: skills, roadmaps: roadmaps, roles: roles, log: log}
}

func (s *chatService) History(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	const op = "ChatService.History"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	rows, err := s.chats.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list messages", err)
	}
	return rows, nil
}

func (s *chatService) Send(ctx context.Context, userID, content string) (*models.ChatMessage, error) {
	const op = "ChatService.Send"

	prompt, err := s.prepare(ctx, op, userID, content)
	if err != nil {
		return nil, err
	}

	reply, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		s.log.WithError(err).Error("assistant call failed")
		return nil, utils.E(utils.CodeInternal, op, "failed to get response from assistant", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = "I apologize, but I couldn't generate a response. Please try again."
	}

	return s.persistAssistant(ctx, op, userID, reply)
}

func (s *chatService) SendStream(ctx context.Context, userID, content string) (<-chan string, <-chan error, error) {
	const op = "ChatService.SendStream"

	prompt, err := s.prepare(ctx, op, userID, content)
	if err != nil {
		return nil, nil, err
	}

	chunks, errs := s.provider.StreamAnswer(ctx, prompt)

	out := make(chan string, 32)
	outErrs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(outErrs)

		var full strings.Builder
		for chunk := range chunks {
			full.WriteString(chunk)
			select {
			case out <- chunk:
			case <-ctx.Done():
				// consumer is gone; stop forwarding instead of
				// blocking on a channel nobody reads
				return
			}
		}
		if err, ok := <-errs; ok && err != nil {
			s.log.WithError(err).Error("assistant stream failed")
			outErrs <- utils.E(utils.CodeInternal, op, "failed to get response from assistant", err)
			return
		}
		reply := strings.TrimSpace(full.String())
		if reply == "" {
			return
		}
		if _, err := s.persistAssistant(ctx, op, userID, reply); err != nil {
			outErrs <- err
		}
	}()
	return out, outErrs, nil
}

// prepare persists the user's message and assembles the prompt from the
// recent history plus the user's skills and target role.
func (s *chatService) prepare(ctx context.Context, op, userID, content string) (string, error) {
	if userID == "" || content == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "message content is required", nil)
	}

	userMsg := &models.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      models.ChatRoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chats.Insert(ctx, userMsg); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to persist message", err)
	}

	history, err := s.chats.LatestN(ctx, userID, chatHistoryLimit)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to load history", err)
	}

	owned, err := s.skills.UserSkills(ctx, userID)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to load user skills", err)
	}
	skillNames := make([]string, 0, len(owned))
	for _, o := range owned {
		skillNames = append(skillNames, o.SkillName)
	}

	targetRole := ""
	if rm, err := s.roadmaps.LatestByUser(ctx, userID); err == nil {
		if role, err := s.roles.GetByID(ctx, rm.RoleID); err == nil {
			targetRole = role.Name
		}
	} else if !errors.Is(err, utils.ErrNotFound) {
		return "", utils.E(utils.CodeInternal, op, "failed to load roadmap", err)
	}

	return buildChatPrompt(skillNames, targetRole, history, content), nil
}

func (s *chatService) persistAssistant(ctx context.Context, op, userID, reply string) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      models.ChatRoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chats.Insert(ctx, msg); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist reply", err)
	}
	return msg, nil
}

// buildChatPrompt mirrors the assistant preamble: persona, user context,
// then the newest few history turns and the current message. The
// incoming history is chronological and already contains the current
// message as its newest entry.
func buildChatPrompt(skills []string, targetRole string, history []models.ChatMessage, userMessage string) string {
	var b strings.Builder
	b.WriteString("You are SkillAtlas Assistant, an AI career guidance expert. Help users explore career paths, understand skill requirements, and navigate their learning journey. Be encouraging, specific, and provide actionable advice.\n\n")

	if len(skills) > 0 {
		b.WriteString("User's current skills: " + strings.Join(skills, ", ") + "\n")
	}
	if targetRole != "" {
		b.WriteString("User's target role: " + targetRole + "\n")
	}
	b.WriteString("\nKeep responses concise, friendly, and focused on career development.\n\n")

	// drop the just-inserted current message from the replayed history
	if n := len(history); n > 0 && history[n-1].Role == models.ChatRoleUser && history[n-1].Content == userMessage {
		history = history[:n-1]
	}
	if len(history) > chatPromptWindow {
		history = history[len(history)-chatPromptWindow:]
	}
	for _, m := range history {
		if m.Role == models.ChatRoleUser {
			b.WriteString("User: ")
		} else {
			b.WriteString("Assistant: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}

	b.WriteString("User: " + userMessage + "\nAssistant:")
	return b.String()
}
