// internal/service/assignment_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"settleflow/internal/repository"
	"settleflow/internal/util"

	"github.com/rs/zerolog"
)

// AssignmentService resolves the race where multiple fulfillers try to claim
// the same unassigned, confirmed order. The mutual exclusion lives in the
// repository's conditional write; this layer only translates its outcome
// into errors a caller can act on. It must never be reimplemented as a
// read-then-write, which would reintroduce the race.
type AssignmentService interface {
	// Claim assigns the order to the fulfiller. Exactly one of any set of
	// concurrent callers succeeds; the rest get ErrAlreadyClaimed.
	Claim(ctx context.Context, orderID, fulfillerID string) error
	// Release undoes the fulfiller's own claim, returning the order to the
	// confirmed state so another fulfiller can take it.
	Release(ctx context.Context, orderID, fulfillerID string) error
	// Complete records the fulfillment-completion signal for an in-progress
	// order.
	Complete(ctx context.Context, orderID string) error
}

type assignmentService struct {
	dbExecutor repository.DBExecutor
	orderRepo  repository.OrderRepository
	logger     zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(dbExecutor repository.DBExecutor, orderRepo repository.OrderRepository, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		dbExecutor: dbExecutor,
		orderRepo:  orderRepo,
		logger:     logger.With().Str("component", "assignment").Logger(),
	}
}

// Claim performs the atomic claim and classifies a lost race.
func (s *assignmentService) Claim(ctx context.Context, orderID, fulfillerID string) error {
	if orderID == "" || fulfillerID == "" {
		return util.ErrInvalidInput
	}

	claimed, err := s.orderRepo.ClaimOrder(ctx, s.dbExecutor, orderID, fulfillerID)
	if err != nil {
		return fmt.Errorf("claim: %w", err)
	}
	if claimed {
		s.logger.Info().Str("order_id", orderID).Str("fulfiller_id", fulfillerID).Msg("order claimed")
		return nil
	}

	// Zero rows can mean a missing order or a lost race; one read tells the
	// caller which.
	if _, err := s.orderRepo.GetOrderByID(ctx, s.dbExecutor, orderID); err != nil {
		if errors.Is(err, util.ErrOrderNotFound) {
			return util.ErrOrderNotFound
		}
		return fmt.Errorf("claim: %w", err)
	}
	return fmt.Errorf("claim: order %s: %w", orderID, util.ErrAlreadyClaimed)
}

// Release clears the fulfiller's own claim.
func (s *assignmentService) Release(ctx context.Context, orderID, fulfillerID string) error {
	if orderID == "" || fulfillerID == "" {
		return util.ErrInvalidInput
	}

	released, err := s.orderRepo.ReleaseOrder(ctx, s.dbExecutor, orderID, fulfillerID)
	if err != nil {
		return fmt.Errorf("release: %w", err)
	}
	if released {
		s.logger.Info().Str("order_id", orderID).Str("fulfiller_id", fulfillerID).Msg("order claim released")
		return nil
	}

	if _, err := s.orderRepo.GetOrderByID(ctx, s.dbExecutor, orderID); err != nil {
		if errors.Is(err, util.ErrOrderNotFound) {
			return util.ErrOrderNotFound
		}
		return fmt.Errorf("release: %w", err)
	}
	return fmt.Errorf("release: order %s is not held by fulfiller %s: %w", orderID, fulfillerID, util.ErrInvalidInput)
}

// Complete moves an in-progress order to its terminal state.
func (s *assignmentService) Complete(ctx context.Context, orderID string) error {
	if orderID == "" {
		return util.ErrInvalidInput
	}

	completed, err := s.orderRepo.CompleteOrder(ctx, s.dbExecutor, orderID)
	if err != nil {
		return fmt.Errorf("complete: %w", err)
	}
	if completed {
		s.logger.Info().Str("order_id", orderID).Msg("order completed")
		return nil
	}

	if _, err := s.orderRepo.GetOrderByID(ctx, s.dbExecutor, orderID); err != nil {
		if errors.Is(err, util.ErrOrderNotFound) {
			return util.ErrOrderNotFound
		}
		return fmt.Errorf("complete: %w", err)
	}
	return fmt.Errorf("complete: order %s is not in progress: %w", orderID, util.ErrInvalidInput)
}
