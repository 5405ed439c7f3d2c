package waitlist

import (
	"context"
	"strings"

	"github.com/storytimehq/storytime-api/internal/log"
	"github.com/storytimehq/storytime-api/internal/mailer"
	"github.com/storytimehq/storytime-api/pkg/constants"
	apperrors "github.com/storytimehq/storytime-api/pkg/errors"
)

type WaitlistService interface {
	// Subscribe adds an email to the waitlist and dispatches a welcome email.
	// A failed dispatch never voids the insert: the subscription is already
	// durable by the time the email is attempted.
	Subscribe(ctx context.Context, req *SubscribeRequest) (*SubscribeResponse, error)

	// ListPaginated returns one window of entries with pagination metadata.
	// Out-of-range page and limit values are clamped, never rejected.
	ListPaginated(ctx context.Context, page, limit int) (*PaginatedEntriesResponse, error)

	// ListAll returns up to the first 1000 entries, newest first.
	ListAll(ctx context.Context) ([]EntryResponse, error)
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	mailer     mailer.Mailer
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, mailService mailer.Mailer) WaitlistService {
	return &waitlistService{logger: logger, repository: repository, mailer: mailService}
}

func (s *waitlistService) Subscribe(ctx context.Context, req *SubscribeRequest) (*SubscribeResponse, error) {
	logger := log.FromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Subscribe received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	// Binding only rejects the empty string, so a whitespace-only name
	// would otherwise reach the store.
	if strings.TrimSpace(req.Name) == "" {
		logger.Info("Waitlist signup rejected for blank name", "email", req.Email)
		return nil, apperrors.NewInvalidRequestError("name must not be blank", nil)
	}

	// Fast-path duplicate detection. The unique index remains the arbiter:
	// two concurrent signups can both pass this check, and the loser of the
	// insert race gets the same conflict error.
	existing, err := s.repository.FindEntryByEmail(ctx, req.Email)
	if err != nil {
		logger.Error("Failed to check for existing waitlist entry", "error", err)
		return nil, err
	}
	if existing != nil {
		logger.Info("Duplicate waitlist signup rejected", "email", req.Email)
		return nil, newDuplicateEmailError(nil)
	}

	entry, err := s.repository.CreateEntry(ctx, ToWaitlistEntryModel(req))
	if err != nil {
		logger.Error("Failed to create waitlist entry", "error", err)
		return nil, err
	}

	if err := s.mailer.SendWelcome(ctx, entry.Email, entry.Name); err != nil {
		logger.Warn("Welcome email dispatch failed; subscription kept", "email", entry.Email, "error", err)
	}

	response := ToSubscribeResponse(entry)
	return &response, nil
}

func (s *waitlistService) ListPaginated(ctx context.Context, page, limit int) (*PaginatedEntriesResponse, error) {
	logger := log.FromContext(ctx, s.logger)

	page, limit = clampWindow(page, limit)

	entries, total, err := s.repository.Paginate(ctx, page, limit)
	if err != nil {
		logger.Error("Failed to paginate waitlist entries", "page", page, "limit", limit, "error", err)
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return &PaginatedEntriesResponse{
		Entries: ToEntryResponses(entries),
		Pagination: PaginationMeta{
			Page:        page,
			Limit:       limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	}, nil
}

func (s *waitlistService) ListAll(ctx context.Context) ([]EntryResponse, error) {
	logger := log.FromContext(ctx, s.logger)

	entries, _, err := s.repository.Paginate(ctx, constants.DefaultPage, constants.MaxPageSize)
	if err != nil {
		logger.Error("Failed to fetch waitlist entries", "error", err)
		return nil, err
	}

	return ToEntryResponses(entries), nil
}

func clampWindow(page, limit int) (int, int) {
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	return page, limit
}
