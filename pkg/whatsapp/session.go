package whatsapp

import (
	"context"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3" // session store driver
	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"

	"go-portfolio-backend/pkg/logger"
)

// Session wraps the whatsmeow client with a sqlite-backed credential store.
// It implements Sender.
type Session struct {
	client *whatsmeow.Client
}

func NewSession(ctx context.Context, storePath string) (*Session, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", storePath)
	container, err := sqlstore.New(ctx, "sqlite3", dsn, waLog.Noop)
	if err != nil {
		return nil, fmt.Errorf("whatsapp store: %w", err)
	}
	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("whatsapp device: %w", err)
	}
	return &Session{client: whatsmeow.NewClient(device, waLog.Noop)}, nil
}

// Start connects the session and drives the dispatcher's state transitions.
// When no stored credentials exist, a pairing QR code is rendered to the
// terminal for the operator. Pairing is a one-time step per session lifetime,
// or until the credentials expire.
func (s *Session) Start(ctx context.Context, d *Dispatcher) error {
	s.client.AddEventHandler(func(evt interface{}) {
		switch evt.(type) {
		case *events.Connected:
			d.markReady()
		case *events.LoggedOut:
			d.markFailed()
		}
	})

	if s.client.Store.ID == nil {
		// GetQRChannel must be requested before connecting.
		qrChan, err := s.client.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("whatsapp qr channel: %w", err)
		}
		if err := s.client.Connect(); err != nil {
			return fmt.Errorf("whatsapp connect: %w", err)
		}
		go func() {
			for evt := range qrChan {
				switch evt.Event {
				case "code":
					d.markAwaitingAuth()
					qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
				case "timeout":
					logger.Log.Warn("whatsapp pairing code expired before being scanned")
				}
			}
		}()
		return nil
	}

	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("whatsapp connect: %w", err)
	}
	return nil
}

func (s *Session) SendText(ctx context.Context, chatID, text string) error {
	jid, err := sendJID(chatID)
	if err != nil {
		return err
	}
	_, err = s.client.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: proto.String(text),
	})
	return err
}

// sendJID parses a chat identifier into a sendable JID. Chat IDs use the
// legacy c.us recipient convention, which whatsmeow does not accept as a send
// target, so the legacy user server is translated to the modern one here.
func sendJID(chatID string) (types.JID, error) {
	jid, err := types.ParseJID(chatID)
	if err != nil {
		return types.EmptyJID, fmt.Errorf("parse chat id: %w", err)
	}
	if jid.Server == types.LegacyUserServer {
		jid = types.NewJID(jid.User, types.DefaultUserServer)
	}
	return jid, nil
}

func (s *Session) Close() {
	s.client.Disconnect()
}
