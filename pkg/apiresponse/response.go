// Package apiresponse defines the one JSON envelope every endpoint emits:
// a success flag, a translated message, and an operation-appropriate payload.
package apiresponse

import (
	"taskboard/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
)

// Envelope is the canonical response body. Exactly one of Task, Tasks or
// Statistics is set on success; Errors is set only for validation failures.
type Envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Task       any                 `json:"task,omitempty"`
	Tasks      any                 `json:"tasks,omitempty"`
	Count      *int                `json:"count,omitempty"`
	Statistics any                 `json:"statistics,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	// CurrentLength accompanies character-limit rejections only.
	CurrentLength *int `json:"current_length,omitempty"`
}

// Success builds a bare success envelope (delete, for instance, has no payload).
func Success(msgKey, lang string) Envelope {
	return Envelope{Success: true, Message: Translate(msgKey, lang)}
}

// Task wraps a single resource.
func Task(msgKey, lang string, task any) Envelope {
	e := Success(msgKey, lang)
	e.Task = task
	return e
}

// Collection wraps a list plus its count.
func Collection(msgKey, lang string, tasks any, count int) Envelope {
	e := Success(msgKey, lang)
	e.Tasks = tasks
	e.Count = &count
	return e
}

// Stats wraps aggregate statistics.
func Stats(msgKey, lang string, stats any) Envelope {
	e := Success(msgKey, lang)
	e.Statistics = stats
	return e
}

// Error builds a failure envelope with a translated message.
func Error(msgKey, lang string) Envelope {
	return Envelope{Success: false, Message: Translate(msgKey, lang)}
}

// ValidationError carries the field-keyed error mapping for 422 responses.
func ValidationError(lang string, errors map[string][]string) Envelope {
	e := Error(MsgValidationFailed, lang)
	e.Errors = errors
	return e
}

// LengthError reports a character-budget rejection with the offending length.
func LengthError(msgKey, lang string, currentLength int) Envelope {
	e := Error(msgKey, lang)
	e.CurrentLength = &currentLength
	return e
}

// Translate retrieves the translated message, falling back to the key itself.
func Translate(msgKey, lang string) string {
	l := i18n.NewLocalizer(translator.Translator, lang, "en")
	m := i18n.LocalizeConfig{}
	m.MessageID = msgKey
	msg, err := l.Localize(&m)
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
