package router

import (
	"net/http"
	"strconv"

	"github.com/storytimehq/storytime-api/internal/log"
)

func GetLogger(ctx *RequestContext) *log.Logger {
	return log.FromContext(ctx.Request.Context(), nil)
}

func OKResult(data any, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
	}
}

func CreatedResult(data any, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusCreated,
		Data:       data,
		Message:    message,
	}
}

func TooManyRequestsResult(data RateLimitResponse) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusTooManyRequests,
		Message:    "Too Many Requests",
		Error:      data,
	}
}

func BadRequestResult(message string, errorPayload any) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Error:      errorPayload,
	}
}

func NotFoundResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusNotFound,
		Message:    message,
		Error:      "NOT_FOUND",
	}
}

func ConflictResult(message string, errorPayload any) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusConflict,
		Message:    message,
		Error:      errorPayload,
	}
}

func InternalServerErrorResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Error:      "INTERNAL_SERVER_ERROR",
	}
}

func ErrorResult(statusCode int, message string, errorPayload any) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Message:    message,
		Error:      errorPayload,
	}
}

func ParseIDParam(ctx *RequestContext, paramName string) (uint, *ServiceResult) {
	logger := GetLogger(ctx)

	idParam := ctx.Param(paramName)
	id, err := strconv.ParseUint(idParam, 10, 32)

	if err != nil {
		logger.Error("Invalid ID parameter", "param", paramName, "value", idParam, "error", err)
		return 0, BadRequestResult("Invalid ID parameter", nil)
	}

	return uint(id), nil
}
