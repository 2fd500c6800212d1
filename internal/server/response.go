package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/caption-qa/internal/apperr"
)

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func (s *implServer) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "Request failed: %v", err)
	}
	c.JSON(status, errorEnvelope{
		Error: apiError{
			Message: err.Error(),
			Code:    string(apperr.CodeOf(err)),
		},
	})
}

func (s *implServer) respondBadRequest(c *gin.Context, err error) {
	s.respondError(c, apperr.Wrap(err, apperr.CodeValidation, "invalid request body"))
}
