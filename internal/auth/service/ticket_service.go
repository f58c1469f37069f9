package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/famcare/auth-service/internal/auth/domain"
	autherror "github.com/famcare/auth-service/internal/errors"
	"github.com/google/uuid"
)

const ticketTokenBytes = 32

// TicketService issues and consumes single-use, time-boxed tickets for email
// verification and password reset. The raw ticket value is returned to the
// caller exactly once; the store keeps only its SHA-256 digest.
//
// Issuing a new ticket leaves earlier unconsumed tickets of the same purpose
// valid; whichever ticket is consumed first wins.
type TicketService struct {
	tickets domain.TicketRepository
}

func NewTicketService(tickets domain.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

func (s *TicketService) Issue(ctx context.Context, accountID int64, purpose domain.TicketPurpose,
	ttl time.Duration) (string, error) {
	value, err := newOpaqueToken(ticketTokenBytes)
	if err != nil {
		return "", err
	}

	now := time.Now()
	ticket := &domain.Ticket{
		ID:        uuid.NewString(),
		AccountID: accountID,
		TokenHash: hashTicketValue(value),
		Purpose:   purpose,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		Consumed:  false,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return "", err
	}

	return value, nil
}

// Consume atomically spends the ticket matching the raw value and purpose and
// returns the owning account id. A purpose mismatch leaves the ticket
// untouched; an expired ticket is marked consumed anyway so retries cannot
// extend its life.
func (s *TicketService) Consume(ctx context.Context, value string, purpose domain.TicketPurpose) (int64, error) {
	ticket, err := s.tickets.GetByTokenHash(ctx, hashTicketValue(value))
	if err != nil {
		return 0, err
	}
	if ticket == nil {
		return 0, autherror.ErrTicketNotFound
	}

	if ticket.Purpose != purpose {
		return 0, autherror.ErrTicketPurposeMismatch
	}

	won, err := s.tickets.ConsumeIfUnconsumed(ctx, ticket.ID)
	if err != nil {
		return 0, err
	}
	if !won {
		return 0, autherror.ErrTicketNotFound
	}

	if time.Now().After(ticket.ExpiresAt) {
		return 0, autherror.ErrTicketExpired
	}

	return ticket.AccountID, nil
}

func hashTicketValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
