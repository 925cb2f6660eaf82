package domain

import "context"

// ContactRequest represents a contact form submission. It lives for one relay
// invocation and is never persisted.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ContactResult is the consolidated relay outcome. Data carries one of the
// two canonical reply strings; there is no third variant.
type ContactResult struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
}

const (
	ContactSuccessReply = "Thank you for your message! I'll get back to you soon."
	ContactFailureReply = "Something went wrong. Please try again later."
)

// ContactUsecase defines the interface for the contact-submission relay
type ContactUsecase interface {
	// Handle dispatches a validated submission through both channels and
	// returns the consolidated result. It never returns an error; transport
	// failures degrade to the failure reply.
	Handle(ctx context.Context, req *ContactRequest) ContactResult
}

// EmailNotifier is the primary channel. Its boolean is the sole determinant
// of the user-visible outcome.
type EmailNotifier interface {
	Send(ctx context.Context, req *ContactRequest) bool
}

// ChatNotifier is the advisory channel. It has no result type at all:
// delivery failures are a local concern of the implementation and must never
// reach the relay.
type ChatNotifier interface {
	Notify(ctx context.Context, phoneNumber, message string)
}
