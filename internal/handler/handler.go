package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/config"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
	"go.uber.org/zap"
)

// Handlers is the handler collection wired once at startup.
type Handlers struct {
	Auth      *AuthHandler
	Project   *ProjectHandler
	Progress  *ProgressHandler
	Dimension *DimensionHandler
	Method    *MethodHandler
	Report    *ReportHandler
	File      *FileHandler
}

// NewHandlers creates the handler collection.
func NewHandlers(svc *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc.Auth, cfg),
		Project:   NewProjectHandler(svc.Project, svc.Export),
		Progress:  NewProgressHandler(svc.Progress),
		Dimension: NewDimensionHandler(svc.Dimension),
		Method:    NewMethodHandler(svc.Method),
		Report:    NewReportHandler(svc.Report),
		File:      NewFileHandler(svc.Storage),
	}
}

// Response is the JSON envelope of every endpoint. The message is
// human-readable; there is no structured error code beyond the envelope code.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope; the HTTP status is code/100.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a validation failure with an itemized message.
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Unauthorized writes an authentication failure.
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// NotFound writes a missing-resource failure.
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict writes a duplicate-resource failure.
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// InternalError writes an infrastructure failure. The cause is logged
// server-side only; the envelope message stays generic.
func InternalError(c *gin.Context, message string, err error) {
	if err != nil {
		zap.L().Error(message,
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
	Error(c, 50000, message)
}

// GetUserID reads the authenticated user ID set by the JWT middleware.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetUsername reads the authenticated username set by the JWT middleware.
func GetUsername(c *gin.Context) string {
	username, _ := c.Get("username")
	if u, ok := username.(string); ok {
		return u
	}
	return ""
}
