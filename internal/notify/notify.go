// Package notify delivers best-effort, human-readable notifications.
// Delivery failures are the caller's to log and swallow; nothing in here
// retries, and nothing here may fail the operation that triggered it.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// BorrowRequested describes a new borrow request for the list's owner.
type BorrowRequested struct {
	OwnerName     string
	OwnerEmail    string
	RequesterName string
	ItemName      string
	ListName      string
	Message       string
}

// Notifier delivers notifications to users.
type Notifier interface {
	BorrowRequested(ctx context.Context, n BorrowRequested) error
}

// Discard drops every notification. Used when mail is not configured.
type Discard struct{}

// BorrowRequested implements Notifier by doing nothing.
func (Discard) BorrowRequested(context.Context, BorrowRequested) error { return nil }

// SMTP delivers notifications through a plain SMTP server.
type SMTP struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// BorrowRequested mails the list owner about a new borrow request.
func (s *SMTP) BorrowRequested(ctx context.Context, n BorrowRequested) error {
	subject := fmt.Sprintf("%s wants to borrow %q", n.RequesterName, n.ItemName)

	var body strings.Builder
	fmt.Fprintf(&body, "%s wants to borrow %q from your list %q.\r\n",
		n.RequesterName, n.ItemName, n.ListName)
	if n.Message != "" {
		fmt.Fprintf(&body, "\r\nMessage: %s\r\n", n.Message)
	}
	body.WriteString("\r\nLog in to Rallebola to approve or reject this request.\r\n")

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s <%s>\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		s.FromName, s.FromAddress, n.OwnerName, n.OwnerEmail, subject, body.String())

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	if err := smtp.SendMail(addr, auth, s.FromAddress, []string{n.OwnerEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("sending borrow notification: %w", err)
	}
	return nil
}
