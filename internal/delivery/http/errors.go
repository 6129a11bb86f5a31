package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/pkg/i18n"
	"github.com/mutugading/goapps-backend/services/uom/pkg/logger"
	"github.com/mutugading/goapps-backend/services/uom/pkg/response"
)

// ErrorTranslator turns errors into the uniform error payload, resolving
// messages in the caller's language.
type ErrorTranslator struct {
	resolver *i18n.Resolver
}

// NewErrorTranslator creates a translator backed by resolver.
func NewErrorTranslator(resolver *i18n.Resolver) *ErrorTranslator {
	return &ErrorTranslator{resolver: resolver}
}

// Middleware renders the last error a handler attached with c.Error, unless
// the handler already wrote a response.
func (t *ErrorTranslator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		t.Render(c, c.Errors.Last().Err)
	}
}

// Render writes the payload for err.
func (t *ErrorTranslator) Render(c *gin.Context, err error) {
	tag := t.language(c)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		t.write(c, http.StatusBadRequest, shared.KindInvalidData, t.validationDetail(tag, validationErrs))
		return
	}

	if errors.Is(err, errDecode) {
		t.write(c, http.StatusBadRequest, shared.KindInvalidData, t.resolver.Message(tag, i18n.KeyBodyInvalid))
		return
	}

	var appErr *shared.Error
	if !errors.As(shared.Normalize(err), &appErr) {
		appErr = shared.Unexpected(err)
	}

	event := logger.FromContext(c.Request.Context()).Warn()
	if response.StatusFor(appErr.Kind) >= http.StatusInternalServerError {
		event = logger.FromContext(c.Request.Context()).Error()
	}
	event.Err(err).Str("path", c.Request.URL.Path).Int("code", appErr.Kind.Code()).Msg("Request failed")

	t.write(c, response.StatusFor(appErr.Kind), appErr.Kind, t.detail(tag, appErr))
}

// Describe returns the localized message for err without writing a response.
func (t *ErrorTranslator) Describe(c *gin.Context, err error) string {
	tag := t.language(c)
	var appErr *shared.Error
	if !errors.As(shared.Normalize(err), &appErr) {
		return err.Error()
	}
	detail := t.detail(tag, appErr)
	if detail == "" {
		return t.resolver.Message(tag, appErr.Kind.MessageKey())
	}
	return detail
}

// Abort stops the chain with a payload for kind and an explicit HTTP status.
func (t *ErrorTranslator) Abort(c *gin.Context, status int, kind shared.Kind, key string, args ...string) {
	t.write(c, status, kind, t.resolver.Message(t.language(c), key, args...))
	c.Abort()
}

func (t *ErrorTranslator) write(c *gin.Context, status int, kind shared.Kind, detail string) {
	message := t.resolver.Message(t.language(c), kind.MessageKey())
	c.JSON(status, response.NewError(kind, message, detail, c.Request.URL.Path))
}

func (t *ErrorTranslator) language(c *gin.Context) language.Tag {
	return t.resolver.Match(c.GetHeader("Accept-Language"))
}

func (t *ErrorTranslator) detail(tag language.Tag, err *shared.Error) string {
	if err.Key != "" {
		return t.resolver.Message(tag, err.Key, err.Args...)
	}
	return err.Detail
}

// validationDetail lists every failed field, e.g. "name: must not be blank".
func (t *ErrorTranslator) validationDetail(tag language.Tag, errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, t.resolver.Message(tag, i18n.KeyFieldRequired, fe.Field()))
		case "notblank":
			parts = append(parts, t.resolver.Message(tag, i18n.KeyFieldNotBlank, fe.Field()))
		case "max":
			parts = append(parts, t.resolver.Message(tag, i18n.KeyFieldMax, fe.Field(), fe.Param()))
		default:
			parts = append(parts, t.resolver.Message(tag, i18n.KeyFieldInvalid, fe.Field()))
		}
	}
	return strings.Join(parts, ", ")
}

// errDecode marks request bodies that could not be decoded.
var errDecode = errors.New("request body could not be decoded")

// bindJSON decodes and validates the body into obj. Decoding failures are
// wrapped with errDecode; validation failures are returned as is.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	var validationErrs validator.ValidationErrors
	if err == nil || errors.As(err, &validationErrs) {
		return err
	}
	return fmt.Errorf("%w: %w", errDecode, err)
}
