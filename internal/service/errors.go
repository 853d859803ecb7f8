package service

import (
	"fmt"
	"strings"

	"go-sales-crm/pkg/validator"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInterviewNotFound = errors.New("interview not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrForbidden         = errors.New("forbidden")

	// ErrSaleDerivationFailed marks the case where an interview update was
	// saved but the sale it should have produced was not.
	ErrSaleDerivationFailed = errors.New("interview updated but failed to create sale record")
)

// ValidationError is returned before any write when input is rejected.
type ValidationError struct {
	Message string
	Fields  []*validator.ErrorResponse
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("Validation failed: %s", strings.Join(parts, "; "))
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// validate runs the struct validator and wraps its findings.
func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// IsValidation reports whether err came from input validation.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// storeErr maps a missing row to notFound and wraps anything else with op.
func storeErr(err error, notFound error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return errors.Wrap(err, op)
}
