package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"imgfilter/internal/container"
	"imgfilter/internal/domain/entity"
	"imgfilter/internal/logger"
)

const componentBot = "telegram"

const historyLimit = 5

const (
	msgStart = `👋 Привет! Я бот для поиска дефектов качества на изображениях.

🎨 Сейчас я умею находить постеризацию: заметные полосы на плавных переходах цвета.

📋 Команды:
/check — начать проверку изображения
/threshold <0..1> — личный порог срабатывания (/threshold reset — сбросить)
/invert — инвертировать порог
/history — последние проверки
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте изображение
2️⃣ Бот прогонит его через фильтры дефектов
3️⃣ Вы получите оценку каждого фильтра от 0 до 1 и вердикт

💡 Рекомендации:
• Отправляйте изображение файлом, чтобы Telegram не пережимал его
• Оценка выше порога означает дефект (ниже, если порог инвертирован)

📋 Команды:
/check — начать проверку
/threshold <0..1> — личный порог
/invert — инвертировать порог
/history — последние проверки
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте изображение для проверки."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendPhoto       = "📸 Пожалуйста, отправьте изображение для проверки."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgNoDefects       = "✅ Дефекты не обнаружены."
	msgDefectsFound    = "⚠️ Обнаружены дефекты."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое."
	msgBadThreshold    = "❓ Порог должен быть числом от 0 до 1, например /threshold 0.6"
	msgThresholdReset  = "↩️ Личный порог сброшен, используются пороги фильтров."
	msgNoHistory       = "🗂 История проверок пуста."
	msgNotImage        = "📎 Этот файл не похож на изображение."
)

// Bot представляет Telegram-бота
type Bot struct {
	api      *tgbotapi.BotAPI
	services *container.Container
	log      *logger.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, services *container.Container, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info(componentBot, "authorized", map[string]interface{}{"account": api.Self.UserName})

	return &Bot{
		api:      api,
		services: services,
		log:      log,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
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

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Фото приходит пережатым, документ приходит как есть
	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		b.handleImage(ctx, msg, photo.FileID, ".jpg")
		return
	}
	if msg.Document != nil {
		if !strings.HasPrefix(msg.Document.MimeType, "image/") {
			b.sendMessage(msg.Chat.ID, msgNotImage)
			return
		}
		b.handleImage(ctx, msg, msg.Document.FileID, filepath.Ext(msg.Document.FileName))
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	users := b.services.UserService
	userID, chatID := msg.From.ID, msg.Chat.ID

	var err error
	switch msg.Command() {
	case "start":
		_, err = users.Cancel(ctx, userID, chatID)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		_, err = users.BeginCheck(ctx, userID, chatID)
		b.sendMessage(chatID, msgAwaitingPhoto)

	case "threshold":
		b.handleThreshold(ctx, msg)

	case "invert":
		var th entity.Threshold
		th, err = users.ToggleInvert(ctx, userID, chatID)
		if err == nil {
			b.sendMessage(chatID, "🔁 Порог: "+describeThreshold(th))
		}

	case "history":
		b.handleHistory(ctx, msg)

	case "cancel":
		_, err = users.Cancel(ctx, userID, chatID)
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}

	if err != nil {
		b.log.Error(componentBot, err, map[string]interface{}{"command": msg.Command(), "user": userID})
	}
}

func (b *Bot) handleThreshold(ctx context.Context, msg *tgbotapi.Message) {
	users := b.services.UserService
	userID, chatID := msg.From.ID, msg.Chat.ID
	arg := strings.TrimSpace(msg.CommandArguments())

	switch arg {
	case "":
		user, err := users.Get(ctx, userID, chatID)
		if err != nil {
			b.log.Error(componentBot, err, map[string]interface{}{"user": userID})
			return
		}
		if user.Threshold == nil {
			b.sendMessage(chatID, "🎚 Используются пороги фильтров.")
			return
		}
		b.sendMessage(chatID, "🎚 Личный порог: "+describeThreshold(*user.Threshold))

	case "reset":
		if err := users.ResetThreshold(ctx, userID, chatID); err != nil {
			b.log.Error(componentBot, err, map[string]interface{}{"user": userID})
			return
		}
		b.sendMessage(chatID, msgThresholdReset)

	default:
		th, err := users.SetThreshold(ctx, userID, chatID, arg)
		if err != nil {
			b.sendMessage(chatID, msgBadThreshold)
			return
		}
		b.sendMessage(chatID, "🎚 Личный порог: "+describeThreshold(th))
	}
}

func (b *Bot) handleHistory(ctx context.Context, msg *tgbotapi.Message) {
	history, err := b.services.InspectionService.History(ctx, msg.From.ID, historyLimit)
	if err != nil {
		b.log.Error(componentBot, err, map[string]interface{}{"user": msg.From.ID})
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	b.sendMessage(msg.Chat.ID, formatHistory(history))
}

// handleImage скачивает изображение, прогоняет его через фильтры и отвечает результатом
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, fileID, ext string) {
	users := b.services.UserService
	userID, chatID := msg.From.ID, msg.Chat.ID

	if _, err := users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		b.log.Error(componentBot, err, map[string]interface{}{"user": userID})
	}
	defer func() {
		// Возвращаем в главное меню
		if _, err := users.Cancel(ctx, userID, chatID); err != nil {
			b.log.Error(componentBot, err, map[string]interface{}{"user": userID})
		}
	}()

	b.sendMessage(chatID, msgProcessing)

	path, err := b.downloadFile(fileID, ext)
	if err != nil {
		b.log.Error(componentBot, err, map[string]interface{}{"user": userID, "file": fileID})
		b.sendMessage(chatID, msgProcessingError)
		return
	}
	defer os.Remove(path)

	inspection, err := b.services.InspectionService.Inspect(ctx, userID, chatID, path, nil)
	if err != nil {
		b.log.Error(componentBot, err, map[string]interface{}{"user": userID, "file": fileID})
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	b.log.Info(componentBot, "image inspected", map[string]interface{}{
		"user":        userID,
		"has_defects": inspection.HasDefects,
		"positive":    inspection.Positive(),
	})
	b.sendMessage(chatID, formatInspection(inspection))
}

// downloadFile скачивает файл из Telegram во временный файл и возвращает его путь
func (b *Bot) downloadFile(fileID, ext string) (string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}

	resp, err := http.Get(file.Link(b.api.Token))
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp("", "imgfilter-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("read file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return tmp.Name(), nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error(componentBot, err, map[string]interface{}{"chat": chatID})
	}
}
