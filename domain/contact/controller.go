package contact

import (
	"time"

	"github.com/storytimehq/storytime-api/config/router"
	"github.com/storytimehq/storytime-api/internal/log"
	"github.com/storytimehq/storytime-api/internal/mailer"
	apperrors "github.com/storytimehq/storytime-api/pkg/errors"
	"github.com/storytimehq/storytime-api/pkg/ratelimit"
)

func NewContactController(
	logger *log.Logger,
	mailService mailer.Mailer,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"ContactController",
		"v1",
		"/contact",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewContactService(logger, mailService)

			rs.AddPostHandler(c, createContactRateLimiter(), "", submitMessageHandler(service))
		},
	)
}

func createContactRateLimiter() ratelimit.RateLimiter {
	// Tighter than the waitlist cap: every accepted request costs two
	// outbound emails.
	const contactRequestsPerMinute = 10

	config := &ratelimit.RateLimitConfig{
		Requests: contactRequestsPerMinute,
		Window:   time.Minute,
		Redis:    nil,
		Logger:   nil,
	}

	return ratelimit.NewRateLimiter(config)
}

func submitMessageHandler(service ContactService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req ContactRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", apperrors.ErrorTypeInvalidRequest)
		}

		if err := service.SubmitMessage(ctx.Request.Context(), &req); err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				apperrors.ErrorDetail(err),
			)
		}

		return router.OKResult(nil, "Thanks for reaching out! We'll get back to you soon.")
	}
}
