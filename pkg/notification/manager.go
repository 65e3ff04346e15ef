package notification

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"
	"github.com/rs/zerolog/log"

	"motogpanalytics/pkg/ingest"
	"motogpanalytics/pkg/pubsub"
)

// Manager forwards ingestion events to the configured Telegram chats. It
// subscribes to the ingestion topic and runs until the exit channel fires.
type Manager struct {
	ctx     context.Context
	bot     *tgbotapi.BotAPI
	chatIDs []int64
	events  *pubsub.PubSub[ingest.Event]
}

func NewManager(ctx context.Context, bot *tgbotapi.BotAPI, chatIDs []int64, events *pubsub.PubSub[ingest.Event]) *Manager {
	return &Manager{
		ctx:     ctx,
		bot:     bot,
		chatIDs: chatIDs,
		events:  events,
	}
}

func (m *Manager) Start(exitChan <-chan bool) {
	ingestedChan := m.events.Subscribe(ingest.TopicSessionIngested)
	for {
		select {
		case <-exitChan:
			return
		case event := <-ingestedChan:
			if err := m.sendNotification(event); err != nil {
				log.Error().Err(err).Str("session", event.SessionID).Msg("failed to send notification")
			}
		}
	}
}

func (m *Manager) sendNotification(event ingest.Event) error {
	if len(m.chatIDs) == 0 {
		return nil
	}

	tg := &Telegram{}
	tg.SetClient(m.bot)
	tg.AddReceivers(m.chatIDs...)

	n := notify.NewWithServices(tg)
	return n.Send(m.ctx, "Timing sheet ingested:", event.String())
}
