package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/models"
)

// skillbotSystemPrompt frames every conversation sent upstream
const skillbotSystemPrompt = "You are Skillbot, the support assistant for Skill Gateway, an online course platform. " +
	"Help learners with course access, payments, enrollment and lesson playback. " +
	"Be concise and friendly. If a question needs account-specific action, ask the learner to open a support ticket from their dashboard."

// historyLimit bounds how many prior turns are forwarded upstream
const historyLimit = 10

// ChatClient is the interface that wraps the upstream chat-completions call
type ChatClient interface {
	// Method Complete sends the conversation and returns the assistant
	// reply. Transport failures and upstream errors come back as errors.
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// skillbotService implements the AI support chat
type skillbotService struct {
	chat   ChatClient
	logger *zap.Logger
}

// NewSkillbotService creates a new skillbot service
func NewSkillbotService(chat ChatClient, logger *zap.Logger) *skillbotService {
	return &skillbotService{
		chat:   chat,
		logger: logger,
	}
}

// Reply answers one user message in the context of its bounded history
func (s *skillbotService) Reply(ctx context.Context, req *models.SkillbotRequest) (string, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return "", fmt.Errorf("%w: message is required", models.ErrValidation)
	}

	history := req.History
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	messages := make([]models.ChatMessage, 0, len(history)+2)
	messages = append(messages, models.ChatMessage{Role: "system", Content: skillbotSystemPrompt})
	for _, turn := range history {
		if turn.Role != "user" && turn.Role != "assistant" {
			continue
		}
		messages = append(messages, turn)
	}
	messages = append(messages, models.ChatMessage{Role: "user", Content: message})

	reply, err := s.chat.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to get skillbot reply: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("skillbot returned an empty reply")
	}

	return reply, nil
}
