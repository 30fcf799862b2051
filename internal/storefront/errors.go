package storefront

import (
	"errors"
	"fmt"
)

// ErrUserErrors matches any UserErrors value with errors.Is.
var ErrUserErrors = errors.New("storefront user errors")

// StatusError reports an HTTP error status from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("storefront returned status %d", e.StatusCode)
}

// GraphQLError carries the top-level errors of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	if len(e.Messages) == 0 {
		return "graphql error"
	}
	return e.Messages[0]
}

// UserError is a validation problem reported by a cart mutation.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// UserErrors is the non-empty userErrors list of a cart mutation. Its message
// is the first entry's message.
type UserErrors []UserError

func (e UserErrors) Error() string {
	if len(e) == 0 {
		return ErrUserErrors.Error()
	}
	return e[0].Message
}

// Is reports whether target is ErrUserErrors.
func (e UserErrors) Is(target error) bool {
	return target == ErrUserErrors
}
