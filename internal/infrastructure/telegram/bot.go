// Package telegram wires the bot commands to the domain usecases.
// Clean Architecture: Infrastructure layer, long polling transport.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/entities"
	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/usecases"
)

// snippetLen caps how much of a source chunk is shown under an answer.
const snippetLen = 80

// Bot serves /ask, /summarize and /help over Telegram long polling.
type Bot struct {
	api      *tgbotapi.BotAPI
	answerer *usecases.AnswerUseCase
	history  *usecases.History
}

// NewBot authenticates against the Telegram API and returns a ready bot.
func NewBot(token string, answerer *usecases.AnswerUseCase, history *usecases.History) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authenticating bot: %w", err)
	}
	log.Printf("[INFO] authorized as @%s", api.Self.UserName)

	return &Bot{
		api:      api,
		answerer: answerer,
		history:  history,
	}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			reply := b.respond(ctx, update.Message)
			if reply == "" {
				continue
			}
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, reply)
			if _, err := b.api.Send(msg); err != nil {
				log.Printf("[ERROR] sending reply: %v", err)
			}
		}
	}
}

// respond maps one command message to its reply text.
func (b *Bot) respond(ctx context.Context, msg *tgbotapi.Message) string {
	userID := msg.Chat.ID
	if msg.From != nil {
		userID = msg.From.ID
	}

	switch msg.Command() {
	case "ask":
		question := strings.TrimSpace(msg.CommandArguments())
		if question == "" {
			return "Usage: /ask <question>"
		}
		return b.handleAsk(ctx, userID, question)
	case "summarize":
		return b.handleSummarize(ctx, userID)
	case "help", "start":
		return helpText()
	default:
		return ""
	}
}

func (b *Bot) handleAsk(ctx context.Context, userID int64, question string) string {
	b.history.Add(userID, question)

	start := time.Now()
	ans, err := b.answerer.Ask(ctx, question)
	if err != nil {
		log.Printf("[ERROR] answering %q: %v", question, err)
		return "Something went wrong while answering. Try again in a moment."
	}
	return formatAnswer(ans, time.Since(start))
}

func (b *Bot) handleSummarize(ctx context.Context, userID int64) string {
	messages := b.history.Last(userID)
	if len(messages) == 0 {
		return "No recent questions to summarize yet. Ask something first with /ask."
	}

	summary, err := b.answerer.Summarize(ctx, messages)
	if err != nil {
		log.Printf("[ERROR] summarizing: %v", err)
		return "Something went wrong while summarizing. Try again in a moment."
	}
	return "📝 " + summary
}

// formatAnswer renders the answer text, its sources and the elapsed time.
func formatAnswer(ans *entities.Answer, elapsed time.Duration) string {
	if len(ans.Sources) == 0 {
		return "I couldn't find anything relevant in the knowledge base."
	}

	var sb strings.Builder
	sb.WriteString(ans.Text)
	sb.WriteString("\n")
	for _, src := range ans.Sources {
		sb.WriteString(fmt.Sprintf("\n📄 %s (score: %.2f)\n%s\n", src.Source, src.Score, snippet(src.Text)))
	}
	sb.WriteString(fmt.Sprintf("\n⏱️ %.1fs", elapsed.Seconds()))
	return sb.String()
}

// snippet shortens chunk text for display, cutting on runes so multibyte
// characters stay intact.
func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= snippetLen {
		return text
	}
	return string(runes[:snippetLen]) + "..."
}

func helpText() string {
	return strings.Join([]string{
		"🤖 Mini RAG Bot",
		"",
		"/ask <question> - answer from the indexed documents",
		"/summarize - summarize your recent questions",
		"/help - show this message",
	}, "\n")
}
