package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/lockievisual/studio-portal/internal/events"
)

// TelegramSender is the subset of the bot API the notifier needs.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// StaffNotifier pushes booking and contact events to the studio's staff
// chats so nobody has to keep the admin dashboard open.
type StaffNotifier struct {
	sender  TelegramSender
	chatIDs []int64
	logger  *zerolog.Logger
}

func NewStaffNotifier(sender TelegramSender, chatIDs []int64, logger *zerolog.Logger) *StaffNotifier {
	return &StaffNotifier{
		sender:  sender,
		chatIDs: chatIDs,
		logger:  logger,
	}
}

// Subscribe attaches the notifier to the event bus. Only events that
// need a human reaction go to staff chats.
func (n *StaffNotifier) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventBookingCreated, n.onBooking("New booking"))
	bus.Subscribe(events.EventBookingCancelled, n.onBooking("Booking cancelled"))
	bus.Subscribe(events.EventContactSubmitted, n.onContact)
}

func (n *StaffNotifier) onBooking(headline string) events.Handler {
	return func(evt events.Event) {
		payload, ok := evt.Payload.(events.BookingEvent)
		if !ok {
			return
		}
		text := fmt.Sprintf("%s #%s\nService: %s\nClient: %s (%s)",
			headline, payload.BookingID, payload.ServiceName, payload.ClientName, payload.ClientEmail)
		if !payload.BookingDate.IsZero() {
			text += fmt.Sprintf("\nDate: %s", payload.BookingDate.Format("2006-01-02"))
		}
		n.broadcast(text)
	}
}

func (n *StaffNotifier) onContact(evt events.Event) {
	payload, ok := evt.Payload.(events.ContactEvent)
	if !ok {
		return
	}
	n.broadcast(fmt.Sprintf("New contact message\nFrom: %s (%s)\nSubject: %s",
		payload.Name, payload.Email, payload.Subject))
}

func (n *StaffNotifier) broadcast(text string) {
	for _, chatID := range n.chatIDs {
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := n.sender.Send(msg); err != nil {
			n.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send staff notification")
		}
	}
}
