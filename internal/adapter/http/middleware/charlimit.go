package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/pkg/apiresponse"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 500
)

type lengthCheckedPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CharacterLimitMiddleware rejects bodies whose title or description exceed
// the fixed character budgets before the payload reaches binding. The body is
// restored for downstream handlers. Unparseable bodies pass through so the
// handler can report the binding failure itself.
func CharacterLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusBadRequest,
				apiresponse.Error(apiresponse.MsgInvalidTaskPayload, GetLang(c)),
			)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		var payload lengthCheckedPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			c.Next()
			return
		}

		if payload.Title != nil && len([]rune(*payload.Title)) > MaxTitleLength {
			c.AbortWithStatusJSON(
				http.StatusUnprocessableEntity,
				apiresponse.LengthError(apiresponse.MsgTitleTooLong, GetLang(c), len([]rune(*payload.Title))),
			)
			return
		}

		if payload.Description != nil && len([]rune(*payload.Description)) > MaxDescriptionLength {
			c.AbortWithStatusJSON(
				http.StatusUnprocessableEntity,
				apiresponse.LengthError(apiresponse.MsgDescriptionTooLong, GetLang(c), len([]rune(*payload.Description))),
			)
			return
		}

		c.Next()
	}
}
