package contact

import (
	"context"

	"github.com/storytimehq/storytime-api/internal/log"
	"github.com/storytimehq/storytime-api/internal/mailer"
	apperrors "github.com/storytimehq/storytime-api/pkg/errors"
)

type ContactService interface {
	// SubmitMessage forwards a contact-form submission to the team inbox and
	// sends the submitter a confirmation. Nothing is persisted: if the team
	// notification cannot be delivered the submission is lost, so that
	// failure fails the request. The confirmation is best-effort.
	SubmitMessage(ctx context.Context, req *ContactRequest) error
}

type contactService struct {
	logger *log.Logger
	mailer mailer.Mailer
}

func NewContactService(logger *log.Logger, mailService mailer.Mailer) ContactService {
	return &contactService{logger: logger, mailer: mailService}
}

func (s *contactService) SubmitMessage(ctx context.Context, req *ContactRequest) error {
	logger := log.FromContext(ctx, s.logger)

	if req == nil {
		logger.Error("SubmitMessage received empty request")
		return apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	if err := s.mailer.SendContactNotification(ctx, req.Name, req.Email, req.Message); err != nil {
		logger.Error("Failed to deliver contact notification", "error", err)
		return apperrors.NewDispatchError("unable to deliver your message right now, please try again later", err)
	}

	if err := s.mailer.SendContactConfirmation(ctx, req.Name, req.Email); err != nil {
		logger.Warn("Contact confirmation email failed; submission already delivered", "email", req.Email, "error", err)
	}

	return nil
}
