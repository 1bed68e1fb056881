package bot

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"ibraflix/internal/models"
	"ibraflix/internal/services"

	"github.com/sirupsen/logrus"
)

const helpMessage = `Welcome to Ibraflix!

/search <i>title</i> - search movies and shows
/trending - what's trending today
/details movie|tv <i>id</i> - title details
/add movie|tv <i>id</i> - add to your watchlist
/remove <i>id</i> - remove from your watchlist
/watchlist - show your watchlist
/clear - empty your watchlist`

type Handler struct {
	media       *services.MediaService
	logger      *logrus.Logger
	send        Sender
	ownerChatID int
}

// NewHandler builds the command handler. When ownerChatID is non-zero only
// that chat may change the watchlist.
func NewHandler(media *services.MediaService, logger *logrus.Logger, send Sender, ownerChatID int) *Handler {
	return &Handler{
		media:       media,
		logger:      logger,
		send:        send,
		ownerChatID: ownerChatID,
	}
}

func (h *Handler) ProcessMessage(ctx context.Context, update *models.Update) {
	if update.Message.Text == "" {
		return
	}

	userID := strconv.Itoa(update.Message.From.Id)
	chatID := strconv.Itoa(update.Message.Chat.Id)
	text := strings.TrimSpace(update.Message.Text)

	command := h.parseCommand(text, userID, chatID)
	h.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"command": command.Command,
		"args":    command.Args,
	}).Info("Processing command")

	switch command.Command {
	case "/start", "/help":
		h.sendMessage(ctx, command.ChatID, helpMessage)
	case "/search":
		h.handleSearch(ctx, command)
	case "/trending":
		h.handleTrending(ctx, command)
	case "/details":
		h.handleDetails(ctx, command)
	case "/add":
		h.handleAdd(ctx, command)
	case "/remove":
		h.handleRemove(ctx, command)
	case "/watchlist":
		h.sendMessage(ctx, command.ChatID, services.FormatWatchlistMessage(h.media.Watchlist().Items()))
	case "/clear":
		h.handleClear(ctx, command)
	default:
		h.sendMessage(ctx, command.ChatID, "Unknown command. Use /help to see available commands")
	}
}

func (h *Handler) parseCommand(text, userID, chatID string) models.BotCommand {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return models.BotCommand{UserID: userID, ChatID: chatID}
	}

	// group chats address commands as /cmd@botname
	command, _, _ := strings.Cut(parts[0], "@")

	return models.BotCommand{
		Command: strings.ToLower(command),
		Args:    parts[1:],
		UserID:  userID,
		ChatID:  chatID,
	}
}

func (h *Handler) handleSearch(ctx context.Context, cmd models.BotCommand) {
	if len(cmd.Args) == 0 {
		h.sendMessage(ctx, cmd.ChatID, "Please provide a title to search. Example: /search Dune")
		return
	}

	query := strings.Join(cmd.Args, " ")
	results := h.media.Search(ctx, query)
	h.sendMessage(ctx, cmd.ChatID, services.FormatMediaMessage(fmt.Sprintf("Results for %q", query), results))
}

func (h *Handler) handleTrending(ctx context.Context, cmd models.BotCommand) {
	resp, err := h.media.Client().Trending(ctx, models.KindAll, "day")
	if err != nil {
		h.logger.WithError(err).Error("Failed to load trending")
		h.sendMessage(ctx, cmd.ChatID, "Error occurred while loading trending titles. Please try again later.")
		return
	}
	h.sendMessage(ctx, cmd.ChatID, services.FormatMediaMessage("Trending Now", resp.Results))
}

func (h *Handler) handleDetails(ctx context.Context, cmd models.BotCommand) {
	kind, id, ok := h.kindAndID(ctx, cmd, "/details")
	if !ok {
		return
	}

	details, err := h.media.Details(ctx, kind, id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load details")
		h.sendMessage(ctx, cmd.ChatID, "Could not load that title.")
		return
	}
	h.sendMessage(ctx, cmd.ChatID, services.FormatDetailsMessage(details))
}

func (h *Handler) handleAdd(ctx context.Context, cmd models.BotCommand) {
	if !h.canEdit(ctx, cmd) {
		return
	}
	kind, id, ok := h.kindAndID(ctx, cmd, "/add")
	if !ok {
		return
	}

	store := h.media.Watchlist()
	if store.Contains(id) {
		h.sendMessage(ctx, cmd.ChatID, "Already in your watchlist.")
		return
	}

	details, err := h.media.Details(ctx, kind, id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load details for watchlist")
		h.sendMessage(ctx, cmd.ChatID, "Could not load that title.")
		return
	}

	store.Insert(ctx, details.Item)
	if !store.Contains(id) {
		h.sendMessage(ctx, cmd.ChatID, "Could not save your watchlist. Please try again later.")
		return
	}
	h.sendMessage(ctx, cmd.ChatID, fmt.Sprintf("Added <b>%s</b> to your watchlist (%d total).",
		html.EscapeString(details.Item.DisplayTitle()), store.Count()))
}

func (h *Handler) handleRemove(ctx context.Context, cmd models.BotCommand) {
	if !h.canEdit(ctx, cmd) {
		return
	}
	if len(cmd.Args) != 1 {
		h.sendMessage(ctx, cmd.ChatID, "Usage: /remove <id>")
		return
	}
	id, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		h.sendMessage(ctx, cmd.ChatID, "Usage: /remove <id>")
		return
	}

	store := h.media.Watchlist()
	store.Remove(ctx, id)
	if store.Contains(id) {
		h.sendMessage(ctx, cmd.ChatID, "Could not save your watchlist. Please try again later.")
		return
	}
	h.sendMessage(ctx, cmd.ChatID, fmt.Sprintf("Removed. %d left in your watchlist.", store.Count()))
}

func (h *Handler) handleClear(ctx context.Context, cmd models.BotCommand) {
	if !h.canEdit(ctx, cmd) {
		return
	}

	store := h.media.Watchlist()
	store.Clear(ctx)
	if store.Count() != 0 {
		h.sendMessage(ctx, cmd.ChatID, "Could not clear your watchlist. Please try again later.")
		return
	}
	h.sendMessage(ctx, cmd.ChatID, "Your watchlist is now empty.")
}

func (h *Handler) kindAndID(ctx context.Context, cmd models.BotCommand, name string) (models.MediaKind, int, bool) {
	usage := fmt.Sprintf("Usage: %s movie|tv <id>", name)
	if len(cmd.Args) != 2 {
		h.sendMessage(ctx, cmd.ChatID, usage)
		return "", 0, false
	}
	kind, err := models.ParseKind(cmd.Args[0])
	if err != nil {
		h.sendMessage(ctx, cmd.ChatID, usage)
		return "", 0, false
	}
	id, err := strconv.Atoi(cmd.Args[1])
	if err != nil || id <= 0 {
		h.sendMessage(ctx, cmd.ChatID, usage)
		return "", 0, false
	}
	return kind, id, true
}

func (h *Handler) canEdit(ctx context.Context, cmd models.BotCommand) bool {
	if h.ownerChatID == 0 || cmd.ChatID == strconv.Itoa(h.ownerChatID) {
		return true
	}
	h.logger.WithField("chat_id", cmd.ChatID).Warn("Rejected watchlist change from non-owner chat")
	h.sendMessage(ctx, cmd.ChatID, "Only the owner can change this watchlist.")
	return false
}

func (h *Handler) sendMessage(ctx context.Context, chatID, text string) {
	chatIDInt, err := strconv.Atoi(chatID)
	if err != nil {
		h.logger.WithError(err).Error("Invalid chat ID")
		return
	}

	if err := h.send(ctx, chatIDInt, text); err != nil {
		h.logger.WithError(err).Error("Failed to send message")
	}
}
