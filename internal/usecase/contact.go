package usecase

import (
	"context"
	"fmt"

	"go-portfolio-backend/internal/domain"
)

type contactUsecase struct {
	email       domain.EmailNotifier
	chat        domain.ChatNotifier
	chatDestNum string
}

// NewContactUsecase creates the contact relay. chatDestNum is the configured
// WhatsApp destination, passed through to the chat channel at dispatch time.
func NewContactUsecase(email domain.EmailNotifier, chat domain.ChatNotifier, chatDestNum string) domain.ContactUsecase {
	return &contactUsecase{
		email:       email,
		chat:        chat,
		chatDestNum: chatDestNum,
	}
}

// Handle relays a submission already validated at the boundary. Email is
// dispatched first and fully awaited because its outcome decides the reply;
// the WhatsApp notification is awaited too (no orphaned work) but its outcome
// is discarded.
func (uc *contactUsecase) Handle(ctx context.Context, req *domain.ContactRequest) domain.ContactResult {
	sent := uc.email.Send(ctx, req)

	uc.chat.Notify(ctx, uc.chatDestNum, renderChatMessage(req))

	if sent {
		return domain.ContactResult{Success: true, Data: domain.ContactSuccessReply}
	}
	return domain.ContactResult{Success: false, Data: domain.ContactFailureReply}
}

// renderChatMessage builds the fixed plain-text notification body.
func renderChatMessage(req *domain.ContactRequest) string {
	return fmt.Sprintf(
		"New Contact Form Submission\n\nFrom: %s\n\nEmail: %s\n\nSubject: %s\n\nMessage:\n%s",
		req.Name, req.Email, req.Subject, req.Message,
	)
}
