package domain

import "time"

// Channel is a delivery channel name
type Channel string

// supported channels
const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelTelegram Channel = "telegram"
	ChannelApp      Channel = "app"
)

// AllChannels lists supported channels in dispatch order
var AllChannels = []Channel{ChannelEmail, ChannelSMS, ChannelWhatsApp, ChannelTelegram, ChannelApp}

// Valid reports whether the channel is supported
func (c Channel) Valid() bool {
	for _, ch := range AllChannels {
		if c == ch {
			return true
		}
	}
	return false
}

// DefaultNotificationInterval in minutes
const DefaultNotificationInterval = 60

// UserChannelConfig is the subscription and contact configuration of a user
type UserChannelConfig struct {
	UserID                      string     `json:"userId"`
	Categories                  []string   `json:"categories"`
	Channels                    []Channel  `json:"channels"`
	Email                       string     `json:"email,omitempty"`
	Phone                       string     `json:"phone,omitempty"`
	TelegramChatID              string     `json:"telegramChatId,omitempty"`
	NotificationIntervalMinutes int        `json:"notificationIntervalMinutes"`
	LastNotificationSentAt      *time.Time `json:"lastNotificationSentAt,omitempty"`
}

// Destination returns the contact address for a channel, empty if not configured.
// In-app push is addressed by the user id itself.
func (u *UserChannelConfig) Destination(ch Channel) string {
	switch ch {
	case ChannelEmail:
		return u.Email
	case ChannelSMS, ChannelWhatsApp:
		return u.Phone
	case ChannelTelegram:
		return u.TelegramChatID
	case ChannelApp:
		return u.UserID
	default:
		return ""
	}
}

// IsDue reports whether the user's notification interval has elapsed at now
func (u *UserChannelConfig) IsDue(now time.Time) bool {
	if u.LastNotificationSentAt == nil {
		return true
	}
	interval := time.Duration(u.NotificationIntervalMinutes) * time.Minute
	return now.Sub(*u.LastNotificationSentAt) >= interval
}
