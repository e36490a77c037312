package channel

import (
	"context"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdrop/pkg/dispatch"
	"github.com/umputun/newsdrop/pkg/domain"
)

// Log is a dry-run adapter, it only logs messages of a channel
type Log struct {
	ch domain.Channel
}

// NewLog makes a log adapter for a channel
func NewLog(ch domain.Channel) *Log {
	return &Log{ch: ch}
}

// Channel returns the channel this adapter stands for
func (l *Log) Channel() domain.Channel { return l.ch }

// Send logs the message and returns the record id as reference
func (l *Log) Send(_ context.Context, msg dispatch.Message) (string, error) {
	lgr.Printf("[INFO] %s to %s (user %s, record %s): %s", l.ch, msg.Destination, msg.UserID, msg.RecordID, msg.Subject)
	return msg.RecordID, nil
}
