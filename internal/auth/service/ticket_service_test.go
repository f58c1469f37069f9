package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/famcare/auth-service/internal/auth/domain"
	"github.com/famcare/auth-service/internal/auth/service"
	autherror "github.com/famcare/auth-service/internal/errors"
	"github.com/famcare/auth-service/internal/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func sha256Hex(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func TestTicketService_Issue_StoresDigestOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	s := service.NewTicketService(mockTickets)

	var created *domain.Ticket

	mockTickets.EXPECT().Create(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, ticket *domain.Ticket) { created = ticket }).
		Return(nil)

	value, err := s.Issue(context.Background(), 5, domain.PurposePasswordReset, time.Hour)

	assert.NoError(t, err)
	assert.Len(t, value, 64)

	assert.NotNil(t, created)
	assert.Equal(t, int64(5), created.AccountID)
	assert.Equal(t, domain.PurposePasswordReset, created.Purpose)
	assert.NotEqual(t, value, created.TokenHash)
	assert.Equal(t, sha256Hex(value), created.TokenHash)
	assert.False(t, created.Consumed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), created.ExpiresAt, 5*time.Second)
}

func TestTicketService_Consume_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	s := service.NewTicketService(mockTickets)

	ticket := &domain.Ticket{
		ID:        "ticket-id",
		AccountID: 5,
		TokenHash: sha256Hex("raw-value"),
		Purpose:   domain.PurposePasswordReset,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	mockTickets.EXPECT().GetByTokenHash(gomock.Any(), sha256Hex("raw-value")).Return(ticket, nil)
	mockTickets.EXPECT().ConsumeIfUnconsumed(gomock.Any(), "ticket-id").Return(true, nil)

	accountID, err := s.Consume(context.Background(), "raw-value", domain.PurposePasswordReset)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), accountID)
}

func TestTicketService_Consume_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	s := service.NewTicketService(mockTickets)

	mockTickets.EXPECT().GetByTokenHash(gomock.Any(), gomock.Any()).Return(nil, nil)

	accountID, err := s.Consume(context.Background(), "unknown", domain.PurposePasswordReset)

	assert.Zero(t, accountID)
	assert.ErrorIs(t, err, autherror.ErrTicketNotFound)
}

func TestTicketService_Consume_PurposeMismatchLeavesTicketUnspent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	s := service.NewTicketService(mockTickets)

	ticket := &domain.Ticket{
		ID:        "ticket-id",
		AccountID: 5,
		Purpose:   domain.PurposeEmailVerify,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	// No ConsumeIfUnconsumed expectation: a mismatched ticket must not be spent.
	mockTickets.EXPECT().GetByTokenHash(gomock.Any(), gomock.Any()).Return(ticket, nil)

	accountID, err := s.Consume(context.Background(), "raw-value", domain.PurposePasswordReset)

	assert.Zero(t, accountID)
	assert.ErrorIs(t, err, autherror.ErrTicketPurposeMismatch)
}

func TestTicketService_Consume_AlreadyConsumed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	s := service.NewTicketService(mockTickets)

	ticket := &domain.Ticket{
		ID:        "ticket-id",
		AccountID: 5,
		Purpose:   domain.PurposePasswordReset,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	mockTickets.EXPECT().GetByTokenHash(gomock.Any(), gomock.Any()).Return(ticket, nil)
	mockTickets.EXPECT().ConsumeIfUnconsumed(gomock.Any(), "ticket-id").Return(false, nil)

	accountID, err := s.Consume(context.Background(), "raw-value", domain.PurposePasswordReset)

	assert.Zero(t, accountID)
	assert.ErrorIs(t, err, autherror.ErrTicketNotFound)
}

func TestTicketService_Consume_ExpiredIsSpentAnyway(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	s := service.NewTicketService(mockTickets)

	ticket := &domain.Ticket{
		ID:        "ticket-id",
		AccountID: 5,
		Purpose:   domain.PurposePasswordReset,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	// An expired ticket still gets marked consumed so it cannot be retried.
	mockTickets.EXPECT().GetByTokenHash(gomock.Any(), gomock.Any()).Return(ticket, nil)
	mockTickets.EXPECT().ConsumeIfUnconsumed(gomock.Any(), "ticket-id").Return(true, nil)

	accountID, err := s.Consume(context.Background(), "raw-value", domain.PurposePasswordReset)

	assert.Zero(t, accountID)
	assert.ErrorIs(t, err, autherror.ErrTicketExpired)
}
