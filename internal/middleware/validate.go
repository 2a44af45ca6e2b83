package middleware

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const validatedBodyKey = "validatedBody"

var validate = validator.New()

// ValidateBody parses the request body into a fresh T, validates it and
// stores it for the handler. An empty body is accepted when allowEmpty is set.
func ValidateBody[T any](allowEmpty bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(T)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(body); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error":   "invalid request body",
					"details": err.Error(),
				})
			}
		} else if !allowEmpty {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "request body is required",
			})
		}

		if err := validate.Struct(body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "validation failed",
				"details": describe(err),
			})
		}

		c.Locals(validatedBodyKey, body)
		return c.Next()
	}
}

// Body returns the value stored by ValidateBody.
func Body[T any](c *fiber.Ctx) *T {
	body, _ := c.Locals(validatedBodyKey).(*T)
	return body
}

// Validate checks any struct against its validate tags.
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%s", describe(err))
	}
	return nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	var details strings.Builder
	for _, e := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch e.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", e.Field()))
		case "min":
			details.WriteString(fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
		case "max":
			details.WriteString(fmt.Sprintf("%s must be at most %s", e.Field(), e.Param()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", e.Field(), e.Tag()))
		}
	}
	return details.String()
}
