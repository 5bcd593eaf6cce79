// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/catalogadmin/backend/internal/errs"
	"github.com/catalogadmin/backend/internal/i18n"
)

const (
	ContextKeyAdminID   = "admin_id"
	ContextKeyLang      = "lang"
	ContextKeyRequestID = "request_id"
)

type APIError struct {
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIError{
		Message: message,
		Code:    code,
		Details: details,
	})
}

// AbortWithError writes the error body and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	HandleError(c, err)
	c.Abort()
}

// HandleError maps a service error onto an HTTP status and a localized message.
// Unclassified errors are logged and reported with a generic message.
func HandleError(c *gin.Context, err error) {
	e := errs.As(err)
	lang := GetLangFromContext(c)

	entry := logrus.WithFields(logrus.Fields{
		"request_id": c.GetString(ContextKeyRequestID),
		"path":       c.Request.URL.Path,
		"kind":       e.Kind,
	})
	if e.Err != nil {
		entry = entry.WithError(e.Err)
	}
	if e.Status() >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	message := i18n.T(lang, e.Key, e.Args...)
	if e.Kind == errs.KindInternal {
		message = i18n.T(lang, i18n.KeyInternalError)
	}
	ErrorResponse(c, e.Status(), string(e.Kind), message, e.Details)
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get(ContextKeyLang); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return i18n.DefaultLang
}

func GetAdminIDFromContext(c *gin.Context) (string, bool) {
	if adminID, exists := c.Get(ContextKeyAdminID); exists {
		if adminIDStr, ok := adminID.(string); ok && adminIDStr != "" {
			return adminIDStr, true
		}
	}
	return "", false
}
