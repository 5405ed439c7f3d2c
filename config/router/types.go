package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ServiceResult is what every handler returns. StatusCode drives the HTTP
// response status; the serialized body always carries the four-field
// envelope {status, data, message, error}.
type ServiceResult struct {
	StatusCode int
	Data       any
	Message    string
	Error      any
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) ToJSON() gin.H {
	status := StatusError
	if result.IsSuccess() {
		status = StatusSuccess
	}

	return gin.H{
		"status":  status,
		"data":    result.Data,
		"message": result.Message,
		"error":   result.Error,
	}
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
