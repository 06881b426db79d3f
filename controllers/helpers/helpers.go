package helpers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gookit/validate"
	"github.com/samber/lo"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/services/api_service"
	"github.com/zsmartex/tradedesk/services/order_entry_service"
	"github.com/zsmartex/tradedesk/services/session_service"
	"github.com/zsmartex/tradedesk/services/settings_service"
	"github.com/zsmartex/tradedesk/services/token_sale_service"
	"github.com/zsmartex/tradedesk/types"
)

var (
	AuthzInvalidSession = "authz.invalid_session"
	RecordNotFound      = "record.not_found"
	BackendUnavailable  = "server.backend_unavailable"
	ServerInternalError = "server.internal_error"
	InvalidMessageBody  = "server.method.invalid_message_body"
	InvalidQuery        = "server.method.invalid_query"
)

type Errors struct {
	Errors []string `json:"errors"`
}

func (e Errors) Size() int {
	return len(e.Errors)
}

func Vaildate(payload interface{}, err_src *Errors) {
	v := validate.Struct(payload)
	if !v.Validate() {
		for _, errs := range v.Errors.All() {
			for _, err := range errs {
				err_src.Errors = append(err_src.Errors, err)
			}
		}
	}
}

// VaildateMessage builds the messages of a payload, mapping the built-in
// rules and any custom rule names to "<prefix>.invalid_<field>".
func VaildateMessage(prefix string, rules ...string) map[string]string {
	invalid_message := prefix + ".invalid_{field}"

	ms := validate.MS{
		"required": prefix + ".missing_{field}",
		"in":       invalid_message,
		"email":    invalid_message,
		"minLen":   invalid_message,
		"maxLen":   invalid_message,
		"uint":     invalid_message,
	}
	for _, rule := range rules {
		ms[rule] = invalid_message
	}

	return ms
}

// Errors whose message is already a translation key the client can show.
var unprocessable = []error{
	session_service.ErrEmailTaken,
	settings_service.ErrUnsupportedVersion,
	order_entry_service.ErrNoAsset,
	order_entry_service.ErrInvalidAmount,
	order_entry_service.ErrInvalidPrice,
	order_entry_service.ErrInvalidStopPrice,
	order_entry_service.ErrInvalidSide,
	order_entry_service.ErrInvalidType,
	order_entry_service.ErrInvalidTimeForce,
	order_entry_service.ErrSubmitInFlight,
	token_sale_service.ErrWalletNotConnected,
	token_sale_service.ErrSaleNotActive,
	token_sale_service.ErrNonPositive,
	token_sale_service.ErrBelowMinimum,
	token_sale_service.ErrLimitExceeded,
	token_sale_service.ErrSoldOut,
	token_sale_service.ErrAllocationsSum,
	token_sale_service.ErrNoPrice,
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// ErrorStatus maps a service error to an HTTP status and its translation key.
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, session_service.ErrInvalidSession),
		errors.Is(err, session_service.ErrInvalidCredentials),
		errors.Is(err, api_service.ErrNoUser):
		return 401, rootCause(err).Error()
	case types.IsNotFound(err):
		return 404, RecordNotFound
	case types.IsTemporary(err):
		return 503, BackendUnavailable
	case types.IsInvalid(err):
		return 422, rootCause(err).Error()
	}

	if known, ok := lo.Find(unprocessable, func(e error) bool { return errors.Is(err, e) }); ok {
		return 422, known.Error()
	}

	return 500, ServerInternalError
}

func ResponseError(c *fiber.Ctx, err error) error {
	var verr *settings_service.ValidationError
	if errors.As(err, &verr) {
		return c.Status(422).JSON(Errors{Errors: verr.Errors})
	}

	status, key := ErrorStatus(err)
	if status == 500 {
		config.Logger.WithError(err).WithField("path", c.Path()).Error("request failed")
	}

	return c.Status(status).JSON(Errors{Errors: []string{key}})
}
