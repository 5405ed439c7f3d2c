package waitlist

import (
	"strconv"
	"time"

	"github.com/storytimehq/storytime-api/config/router"
	"github.com/storytimehq/storytime-api/internal/log"
	"github.com/storytimehq/storytime-api/internal/mailer"
	"github.com/storytimehq/storytime-api/pkg/constants"
	apperrors "github.com/storytimehq/storytime-api/pkg/errors"
	"github.com/storytimehq/storytime-api/pkg/ratelimit"
	"gorm.io/gorm"
)

func NewWaitlistController(
	db *gorm.DB,
	logger *log.Logger,
	mailService mailer.Mailer,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"WaitlistController",
		"v1",
		"/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewWaitlistRepository(db)
			service := NewWaitlistService(logger, repository, mailService)

			subscribeLimiter := createSubscribeRateLimiter()

			rs.AddPostHandler(c, subscribeLimiter, "subscribe", subscribeHandler(service))
			rs.AddGetHandler(c, nil, "emails", listEmailsHandler(service))
			rs.AddGetHandler(c, nil, "emails/paginated", listEmailsPaginatedHandler(service))
		},
	)
}

func createSubscribeRateLimiter() ratelimit.RateLimiter {
	const subscribeRequestsPerMinute = 30

	config := &ratelimit.RateLimitConfig{
		Requests: subscribeRequestsPerMinute,
		Window:   time.Minute,
		Redis:    nil, // in-memory is enough for a per-instance signup cap
		Logger:   nil,
	}

	return ratelimit.NewRateLimiter(config)
}

func subscribeHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SubscribeRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", apperrors.ErrorTypeInvalidRequest)
		}

		response, err := service.Subscribe(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				apperrors.ErrorDetail(err),
			)
		}

		return router.CreatedResult(response, "Successfully joined the waitlist")
	}
}

func listEmailsHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.ListAll(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				apperrors.ErrorDetail(err),
			)
		}

		return router.OKResult(response, "Waitlist entries retrieved successfully")
	}
}

func listEmailsPaginatedHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		page := queryInt(ctx, "page", constants.DefaultPage)
		limit := queryInt(ctx, "limit", constants.DefaultPageSize)

		response, err := service.ListPaginated(ctx.Request.Context(), page, limit)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				apperrors.ErrorDetail(err),
			)
		}

		return router.OKResult(response, "Waitlist entries retrieved successfully")
	}
}

// queryInt reads an integer query parameter, falling back to def on absent
// or non-numeric values. Out-of-range numbers are left for the service to
// clamp.
func queryInt(ctx *router.RequestContext, name string, def int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return def
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return parsed
}
