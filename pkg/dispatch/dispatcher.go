// Package dispatch fans a delivery out to the user's enabled channels and aggregates per-channel results.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/pkg/metrics"
)

// DefaultSendTimeout limits a single channel send
const DefaultSendTimeout = 10 * time.Second

var (
	// ErrNoAdapter is reported for an enabled channel without a configured adapter
	ErrNoAdapter = errors.New("no adapter for channel")
	// ErrNoDestination is reported for an enabled channel without a contact address
	ErrNoDestination = errors.New("no destination for channel")
)

// Message is what an adapter sends to a single destination
type Message struct {
	Destination string
	Subject     string
	Body        string
	Link        string
	UserID      string
	RecordID    string // ledger record the message belongs to, used for reaction correlation
}

// Adapter sends messages over a single channel. Send returns an optional external message reference.
type Adapter interface {
	Channel() domain.Channel
	Send(ctx context.Context, msg Message) (ref string, err error)
}

// ChannelResult is the result of one channel send
type ChannelResult struct {
	Channel domain.Channel
	Ref     string
	Err     error
}

// Outcome aggregates results of all attempted channels, in the user's channel order
type Outcome struct {
	Results []ChannelResult
}

// Sent returns channels delivered successfully
func (o Outcome) Sent() []domain.Channel {
	var res []domain.Channel
	for _, r := range o.Results {
		if r.Err == nil {
			res = append(res, r.Channel)
		}
	}
	return res
}

// Failed returns channels failed to deliver
func (o Outcome) Failed() []domain.Channel {
	var res []domain.Channel
	for _, r := range o.Results {
		if r.Err != nil {
			res = append(res, r.Channel)
		}
	}
	return res
}

// Attempted returns all channels a send was tried on
func (o Outcome) Attempted() []domain.Channel {
	res := make([]domain.Channel, len(o.Results))
	for i, r := range o.Results {
		res[i] = r.Channel
	}
	return res
}

// Status is SENT if any channel succeeded, FAILED otherwise, including when nothing was attempted
func (o Outcome) Status() domain.DeliveryStatus {
	if len(o.Sent()) > 0 {
		return domain.StatusSent
	}
	return domain.StatusFailed
}

// MessageRef returns the first non-empty reference of a successful send
func (o Outcome) MessageRef() string {
	for _, r := range o.Results {
		if r.Err == nil && r.Ref != "" {
			return r.Ref
		}
	}
	return ""
}

// Refs returns references of successful sends keyed by channel, nil if no channel returned one
func (o Outcome) Refs() map[domain.Channel]string {
	var res map[domain.Channel]string
	for _, r := range o.Results {
		if r.Err != nil || r.Ref == "" {
			continue
		}
		if res == nil {
			res = map[domain.Channel]string{}
		}
		res[r.Channel] = r.Ref
	}
	return res
}

// Dispatcher sends records to users through registered adapters
type Dispatcher struct {
	adapters map[domain.Channel]Adapter
	timeout  time.Duration
}

// New makes a dispatcher with the given adapters, the last adapter wins for a duplicated channel
func New(timeout time.Duration, adapters ...Adapter) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	res := &Dispatcher{adapters: map[domain.Channel]Adapter{}, timeout: timeout}
	for _, a := range adapters {
		res.adapters[a.Channel()] = a
	}
	return res
}

// Channels returns channels with a registered adapter
func (d *Dispatcher) Channels() []domain.Channel {
	var res []domain.Channel
	for _, ch := range domain.AllChannels {
		if _, ok := d.adapters[ch]; ok {
			res = append(res, ch)
		}
	}
	return res
}

// Dispatch sends the record to every enabled channel of the user concurrently.
// A failure of one channel never prevents sends on the others.
func (d *Dispatcher) Dispatch(ctx context.Context, user domain.UserChannelConfig, rec domain.DeliveryRecord) Outcome {
	channels := uniqueChannels(user.Channels)
	results := make([]ChannelResult, len(channels))

	var g errgroup.Group
	for i, ch := range channels {
		results[i].Channel = ch
		g.Go(func() error {
			ref, err := d.send(ctx, ch, user, rec)
			results[i].Ref, results[i].Err = ref, err
			metrics.RecordChannelSend(string(ch), err == nil)
			if err != nil {
				lgr.Printf("[WARN] %s send failed, user %s, record %s, article %s: %v",
					ch, user.UserID, rec.ID, rec.ArticleFingerprint, err)
				return nil
			}
			lgr.Printf("[DEBUG] %s sent to user %s, record %s, ref %q", ch, user.UserID, rec.ID, ref)
			return nil
		})
	}
	_ = g.Wait() // sends never return errors, failures are kept in results

	return Outcome{Results: results}
}

func (d *Dispatcher) send(ctx context.Context, ch domain.Channel, user domain.UserChannelConfig, rec domain.DeliveryRecord) (string, error) {
	adapter, ok := d.adapters[ch]
	if !ok {
		return "", fmt.Errorf("%s: %w", ch, ErrNoAdapter)
	}
	dest := user.Destination(ch)
	if dest == "" {
		return "", fmt.Errorf("%s: %w", ch, ErrNoDestination)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	msg := Message{Destination: dest, Subject: rec.Subject, Body: rec.Message, UserID: user.UserID, RecordID: rec.ID}
	ref, err := adapter.Send(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("send %s to %s: %w", ch, dest, err)
	}
	return ref, nil
}

func uniqueChannels(channels []domain.Channel) []domain.Channel {
	res := make([]domain.Channel, 0, len(channels))
	seen := map[domain.Channel]bool{}
	for _, ch := range channels {
		if seen[ch] {
			continue
		}
		seen[ch] = true
		res = append(res, ch)
	}
	return res
}
