package service

import (
	"context"
	"log"
	"time"

	"github.com/famcare/auth-service/internal/auth/domain"
)

// Sweeper periodically deletes expired refresh tokens and tickets. It owns
// only rows past their expiry; live state transitions never go through it.
type Sweeper struct {
	refreshTokens domain.RefreshTokenRepository
	tickets       domain.TicketRepository
	interval      time.Duration
}

func NewSweeper(refreshTokens domain.RefreshTokenRepository, tickets domain.TicketRepository,
	interval time.Duration) *Sweeper {
	return &Sweeper{
		refreshTokens: refreshTokens,
		tickets:       tickets,
		interval:      interval,
	}
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	now := time.Now()

	if n, err := s.refreshTokens.DeleteExpired(ctx, now); err != nil {
		log.Printf("warn: failed to sweep expired refresh tokens: %v", err)
	} else if n > 0 {
		log.Printf("swept %d expired refresh tokens", n)
	}

	if n, err := s.tickets.DeleteExpired(ctx, now); err != nil {
		log.Printf("warn: failed to sweep expired tickets: %v", err)
	} else if n > 0 {
		log.Printf("swept %d expired tickets", n)
	}
}
