package usecase

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
)

// amountTolerance absorbs client side rounding of monetary values.
const amountTolerance = 0.01

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// NormalizeCode trims and upper-cases a user supplied access code.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidCodeFormat reports whether code is 8 uppercase letters or digits.
func ValidCodeFormat(code string) bool {
	return codePattern.MatchString(code)
}

// validate is shared by every use case; it caches struct metadata and is safe for concurrent use.
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	return v
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// validEmail reports whether s is a bare e-mail address, without a display name.
func validEmail(s string) bool {
	if strings.ContainsAny(s, "<> ") {
		return false
	}
	return validate.Var(s, "required,email") == nil
}

// OrderValidator checks order payloads before anything is sent.
type OrderValidator struct {
	validate *validator.Validate
}

func NewOrderValidator() *OrderValidator {
	return &OrderValidator{validate: validate}
}

// Validate returns *errors.ValidationError listing every violation in field order, or nil.
func (v *OrderValidator) Validate(order *model.OrderSubmission) error {
	if order == nil {
		return &domainErrors.ValidationError{Violations: []domainErrors.Violation{{Field: "body", Reason: "is required"}}}
	}

	var violations []domainErrors.Violation

	if err := v.validate.Struct(order); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate order: %w", err)
		}
		for _, fe := range fieldErrs {
			violations = append(violations, domainErrors.Violation{Field: fieldPath(fe), Reason: reason(fe)})
		}
	}

	violations = append(violations, checkAmounts(order)...)

	if len(violations) > 0 {
		slices.SortStableFunc(violations, func(a, b domainErrors.Violation) int {
			return cmp.Compare(orderFieldRank(a.Field), orderFieldRank(b.Field))
		})
		return &domainErrors.ValidationError{Violations: violations}
	}
	return nil
}

// orderFields maps each top-level JSON field of an order to its declaration index.
var orderFields = func() map[string]int {
	t := reflect.TypeFor[model.OrderSubmission]()
	ranks := make(map[string]int, t.NumField())
	for i := range t.NumField() {
		ranks[jsonName(t.Field(i))] = i
	}
	return ranks
}()

// orderFieldRank orders violation paths like "items[2].total" by their top-level field.
func orderFieldRank(path string) int {
	top := path
	if i := strings.IndexAny(path, ".["); i >= 0 {
		top = path[:i]
	}
	if rank, ok := orderFields[top]; ok {
		return rank
	}
	return len(orderFields)
}

func checkAmounts(order *model.OrderSubmission) []domainErrors.Violation {
	if len(order.Items) == 0 {
		return nil
	}

	var (
		violations []domainErrors.Violation
		ordered    bool
		sum        float64
	)
	for i, item := range order.Items {
		if item.Quantity > 0 {
			ordered = true
		}
		if math.Abs(item.Total-float64(item.Quantity)*item.UnitPrice) > amountTolerance {
			violations = append(violations, domainErrors.Violation{
				Field:  fmt.Sprintf("items[%d].total", i),
				Reason: "must equal quantity times unit price",
			})
		}
		sum += item.Total
	}

	if !ordered {
		violations = append(violations, domainErrors.Violation{Field: "items", Reason: "must contain at least one product with a positive quantity"})
	}
	if math.Abs(order.Subtotal-sum) > amountTolerance {
		violations = append(violations, domainErrors.Violation{Field: "subtotal", Reason: "must equal the sum of line totals"})
	}
	return violations
}

// fieldPath turns "OrderSubmission.items[0].quantity" into "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}
