package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

// RequestValidator checks request bodies against their validate tags and
// renders the first failure as a readable message.
type RequestValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewRequestValidator() (*RequestValidator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register validation translations: %w", err)
	}

	return &RequestValidator{
		validate:   validate,
		translator: trans,
	}, nil
}

// Bind parses the JSON body into v and validates it. The returned error is
// a *fiber.Error with status 400.
func (rv *RequestValidator) Bind(c *fiber.Ctx, v interface{}) error {
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := rv.validate.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, validationErrors[0].Translate(rv.translator))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return nil
}
