package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tray-check/internal/container"
	"tray-check/internal/domain/entity"
	"tray-check/internal/infrastructure/report"
)

const (
	msgStart = `👋 Привет! Я бот для проверки подносов по заказу.

🧾 Сначала пришлите заказ, потом фото подноса, и я скажу, всё ли на месте.

📋 Команды:
/order — ввести заказ
/rules — правила комплектации
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /order и затем заказ в формате JSON:
{"items": {"burger": 1, "fries": 1, "drink": 1, "nuggets": 1}}
2️⃣ Отправьте фото подноса
3️⃣ Вы получите результат: чего не хватает, что лишнее и какие правила нарушены

💡 Рекомендации:
• Снимайте поднос сверху
• Предметы не должны перекрывать друг друга
• Фото должно быть чётким`

	msgAwaitingOrder   = "🧾 Отправьте заказ в формате JSON: {\"items\": {\"burger\": 1, \"fries\": 1}}"
	msgOrderAccepted   = "✅ Заказ принят. Теперь отправьте фото подноса."
	msgBadOrder        = "⚠️ Не удалось разобрать заказ. Нужен JSON вида {\"items\": {\"burger\": 1}} с целыми неотрицательными количествами."
	msgCancelled       = "❌ Операция отменена. Отправьте /order для новой проверки."
	msgSendOrder       = "🧾 Сначала отправьте /order и заказ, затем фото подноса."
	msgSendPhoto       = "📸 Заказ уже есть, отправьте фото подноса."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgNoDetector      = "⚠️ Детектор не подключён, проверка недоступна."
)

// Bot представляет Telegram-бота
type Bot struct {
	api    *tgbotapi.BotAPI
	app    *container.Container
	logger *zap.Logger
	client *http.Client
}

// NewBot создаёт нового бота
func NewBot(token string, app *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	app.Logger.Info("authorized on account", zap.String("username", api.Self.UserName))

	return &Bot{
		api:    api,
		app:    app,
		logger: app.Logger,
		client: http.DefaultClient,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.logger.Error("get user", zap.Int64("user_id", msg.From.ID), zap.Error(err))
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		if user.Order == nil {
			b.sendMessage(msg.Chat.ID, msgSendOrder)
			return
		}
		b.handlePhoto(ctx, msg)
		return
	}

	if user.State == entity.StateAwaitingOrder && msg.Text != "" {
		b.handleOrder(ctx, msg)
		return
	}

	if user.Order != nil {
		b.sendMessage(msg.Chat.ID, msgSendPhoto)
		return
	}
	b.sendMessage(msg.Chat.ID, msgSendOrder)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	var err error
	switch msg.Command() {
	case "start":
		_, err = b.app.UserService.Cancel(ctx, userID, chatID)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "order":
		_, err = b.app.UserService.BeginOrder(ctx, userID, chatID)
		b.sendMessage(chatID, msgAwaitingOrder)

	case "rules":
		b.sendMessage(chatID, "📐 Правила комплектации:\n"+report.DescribeRules(b.app.CheckService.Rules()))

	case "cancel":
		_, err = b.app.UserService.Cancel(ctx, userID, chatID)
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}

	if err != nil {
		b.logger.Error("update user state", zap.String("command", msg.Command()), zap.Error(err))
	}
}

// handleOrder принимает JSON заказа
func (b *Bot) handleOrder(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.app.UserService.AcceptOrder(ctx, msg.From.ID, msg.Chat.ID, []byte(msg.Text))
	if err != nil {
		b.logger.Info("order rejected", zap.Int64("user_id", msg.From.ID), zap.Error(err))
		b.sendMessage(msg.Chat.ID, userMessage(err))
		return
	}

	b.logger.Debug("order accepted", zap.Int64("user_id", user.ID), zap.Any("items", user.Order.Items))
	b.sendMessage(msg.Chat.ID, msgOrderAccepted)
}

// handlePhoto проверяет фото подноса по заказу
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		b.logger.Error("download photo", zap.Error(err))
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	out, err := b.app.CheckService.CheckPhoto(ctx, msg.From.ID, msg.Chat.ID, imageData)
	if err != nil {
		b.logger.Error("check photo", zap.Int64("user_id", msg.From.ID), zap.Int("bytes", len(imageData)), zap.Error(err))
		b.sendMessage(msg.Chat.ID, userMessage(err))
		return
	}

	if len(out.Highlighted) > 0 {
		b.sendPhoto(msg.Chat.ID, out.Highlighted, out.Text)
		return
	}
	b.sendMessage(msg.Chat.ID, out.Text)
}

// userMessage переводит ошибку в сообщение для пользователя
func userMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		return msgBadOrder
	case errors.Is(err, entity.ErrOrderNotSet):
		return msgSendOrder
	case errors.Is(err, entity.ErrDetectorNotConfigured):
		return msgNoDetector
	default:
		return msgProcessingError
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendPhoto отправляет картинку с подписью
func (b *Bot) sendPhoto(chatID int64, data []byte, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "tray.jpg", Bytes: data})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Error("send photo", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
