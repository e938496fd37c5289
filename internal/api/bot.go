package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "pcb-inspector/internal/application"
	"pcb-inspector/internal/container"
	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/infrastructure/manifest"
)

const (
	msgStart = `👋 Привет! Я проверяю печатные платы на отсутствующие компоненты.

Нужны три файла: фото эталонной платы, фото проверяемой платы и манифест компонентов (JSON или YAML).

📋 Команды:
/check — начать проверку платы
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото эталонной платы
2️⃣ Отправьте фото проверяемой платы, снятое с того же ракурса
3️⃣ Отправьте манифест: список {name, x, y, w, h}, координаты в долях от размера фото
4️⃣ Вы получите фото с разметкой и список отсутствующих компонентов

💡 Рекомендации:
• Отправляйте фото файлом, чтобы Telegram не сжимал их
• Размеры обоих фото должны совпадать
• Плата должна занимать кадр одинаково на обоих фото

📋 Команды:
/check — начать проверку
/cancel — отменить операцию`

	msgAwaitingReference = "📸 Отправьте фото эталонной платы."
	msgAwaitingCandidate = "📸 Эталон получен. Теперь отправьте фото проверяемой платы."
	msgAwaitingManifest  = "📄 Фото получено. Отправьте манифест компонентов (JSON или YAML)."
	msgExpectImage       = "📸 Здесь нужно фото платы (фото или файл-изображение)."
	msgExpectManifest    = "📄 Здесь нужен файл манифеста (JSON или YAML)."
	msgRestarted         = "🔄 Предыдущая проверка сброшена."
	msgCancelled         = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendCheck         = "Отправьте /check, чтобы начать проверку платы."
	msgUnknownCommand    = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing        = "⏳ Сравниваю платы..."
	msgBusy              = "⏳ Проверка уже идёт, подождите."
	msgFileTooLarge      = "⚠️ Файл слишком большой."
	msgInvalidImage      = "⚠️ Не удалось прочитать фото или их размеры различаются. Начните заново: /check"
	msgInvalidManifest   = "⚠️ Манифест не принят: %v\nИсправьте файл и отправьте его ещё раз."
	msgProcessingError   = "⚠️ Не удалось выполнить проверку. Попробуйте ещё раз: /check"
)

var errFileTooLarge = errors.New("file is too large")

// uploadKind что пользователь прислал в сообщении
type uploadKind int

const (
	uploadNone uploadKind = iota
	uploadImage
	uploadManifest
)

// upload файл из сообщения
type upload struct {
	kind     uploadKind
	fileID   string
	fileName string
	size     int
}

// Bot представляет Telegram-бота
type Bot struct {
	api          *tgbotapi.BotAPI
	users        *app.UserService
	inspections  *app.InspectionService
	maxFileBytes int
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, maxFileBytes int) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:          api,
		users:        c.UserService,
		inspections:  c.InspectionService,
		maxFileBytes: maxFileBytes,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// Посты каналов приходят без отправителя
	if msg.From == nil {
		return
	}

	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	up := uploadFromMessage(msg)

	switch user.State {
	case entity.StateAwaitingReference, entity.StateAwaitingCandidate:
		if up.kind != uploadImage {
			b.sendMessage(msg.Chat.ID, msgExpectImage)
			return
		}
		b.handleImage(ctx, msg, user, up)

	case entity.StateAwaitingManifest:
		if up.kind != uploadManifest {
			b.sendMessage(msg.Chat.ID, msgExpectManifest)
			return
		}
		b.handleManifest(ctx, msg, up)

	case entity.StateProcessing:
		b.sendMessage(msg.Chat.ID, msgBusy)

	default:
		b.sendMessage(msg.Chat.ID, msgSendCheck)
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		if _, err := b.inspections.Cancel(ctx, user.ID, msg.Chat.ID); err != nil {
			log.Printf("Error resetting user: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "check":
		if user.InCheck() {
			if _, err := b.inspections.Cancel(ctx, user.ID, msg.Chat.ID); err != nil {
				log.Printf("Error resetting session: %v", err)
			}
			b.sendMessage(msg.Chat.ID, msgRestarted)
		}
		if _, err := b.users.BeginCheck(ctx, user.ID, msg.Chat.ID); err != nil {
			log.Printf("Error starting check: %v", err)
			return
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingReference)

	case "cancel":
		if _, err := b.inspections.Cancel(ctx, user.ID, msg.Chat.ID); err != nil {
			log.Printf("Error cancelling check: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleImage принимает эталон или проверяемое фото в зависимости от состояния
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, user *entity.User, up upload) {
	data, err := b.downloadFile(up)
	if err != nil {
		b.replyDownloadError(msg.Chat.ID, err)
		return
	}

	if user.State == entity.StateAwaitingReference {
		if _, err := b.inspections.AcceptReferencePhoto(ctx, user.ID, msg.Chat.ID, data); err != nil {
			log.Printf("Error accepting reference: %v", err)
			b.sendMessage(msg.Chat.ID, msgProcessingError)
			return
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingCandidate)
		return
	}

	if _, err := b.inspections.AcceptCandidatePhoto(ctx, user.ID, msg.Chat.ID, data); err != nil {
		log.Printf("Error accepting candidate: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	b.sendMessage(msg.Chat.ID, msgAwaitingManifest)
}

// handleManifest разбирает манифест и запускает проверку
func (b *Bot) handleManifest(ctx context.Context, msg *tgbotapi.Message, up upload) {
	data, err := b.downloadFile(up)
	if err != nil {
		b.replyDownloadError(msg.Chat.ID, err)
		return
	}

	m, err := manifest.ParseFile(up.fileName, data)
	if err != nil {
		log.Printf("Rejected manifest %q: %v", up.fileName, err)
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgInvalidManifest, err))
		return
	}

	b.sendMessage(msg.Chat.ID, msgProcessing)

	out, err := b.inspections.ProcessManifest(ctx, msg.From.ID, msg.Chat.ID, m)
	if err != nil {
		log.Printf("Error inspecting board: %v", err)
		if errors.Is(err, entity.ErrInvalidImage) {
			b.sendMessage(msg.Chat.ID, msgInvalidImage)
			return
		}
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	log.Printf("Inspection done: %d checked, %d missing, %d skipped",
		len(out.Result.Components), len(out.Result.Missing), len(out.Result.Skipped))

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "result.jpg", Bytes: out.Annotated})
	photo.Caption = formatCaption(out.Result)
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
	b.sendMessage(msg.Chat.ID, formatReport(out.Result))
}

// uploadFromMessage находит в сообщении фото или документ
func uploadFromMessage(msg *tgbotapi.Message) upload {
	if len(msg.Photo) > 0 {
		// Берём файл с максимальным разрешением
		p := msg.Photo[len(msg.Photo)-1]
		return upload{kind: uploadImage, fileID: p.FileID, fileName: "photo.jpg", size: p.FileSize}
	}

	if d := msg.Document; d != nil {
		kind := uploadManifest
		if strings.HasPrefix(d.MimeType, "image/") {
			kind = uploadImage
		}
		return upload{kind: kind, fileID: d.FileID, fileName: d.FileName, size: d.FileSize}
	}

	return upload{kind: uploadNone}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(up upload) ([]byte, error) {
	if up.size > b.maxFileBytes {
		return nil, errFileTooLarge
	}

	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: up.fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, int64(b.maxFileBytes)+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) > b.maxFileBytes {
		return nil, errFileTooLarge
	}

	return data, nil
}

func (b *Bot) replyDownloadError(chatID int64, err error) {
	log.Printf("Error downloading file: %v", err)
	if errors.Is(err, errFileTooLarge) {
		b.sendMessage(chatID, msgFileTooLarge)
		return
	}
	b.sendMessage(chatID, msgProcessingError)
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
