package calculator

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Field names one input of the wizard.
type Field string

const (
	FieldRevenue Field = "revenue"
	FieldCost    Field = "cost"
	FieldEmail   Field = "email"
)

// ParseField maps a wire name to a Field.
func ParseField(name string) (Field, error) {
	switch f := Field(name); f {
	case FieldRevenue, FieldCost, FieldEmail:
		return f, nil
	default:
		return "", ErrUnknownField
	}
}

// FieldFor returns the field collected at step s, if any.
func FieldFor(s Step) (Field, bool) {
	switch s {
	case StepRevenue:
		return FieldRevenue, true
	case StepCost:
		return FieldCost, true
	case StepContact:
		return FieldEmail, true
	default:
		return "", false
	}
}

// FormData holds what the user has entered so far.
type FormData struct {
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Email   string  `json:"email"`
}

// ROI returns revenue minus cost.
func (d FormData) ROI() float64 {
	return d.Revenue - d.Cost
}

// Entry is the record handed to a Recorder on submission.
type Entry struct {
	Email   string  `json:"email"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	ROI     float64 `json:"roi"`
}

// Entry builds the submission record for d.
func (d FormData) Entry() Entry {
	return Entry{
		Email:   d.Email,
		Revenue: d.Revenue,
		Cost:    d.Cost,
		ROI:     d.ROI(),
	}
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount converts user input to an amount. Leading whitespace is
// skipped and the longest numeric prefix is used ("12abc" is 12). Input
// with no numeric prefix, or that overflows, yields 0.
func ParseAmount(s string) float64 {
	m := numericPrefix.FindString(strings.TrimLeft(s, " \t\n\r\f\v"))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseAmountStrict is like ParseAmount but rejects anything that is not
// entirely a finite number.
func ParseAmountStrict(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotANumber
	}
	return f, nil
}

func amountOf(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		return ParseAmount(v), nil
	default:
		return 0, ErrInvalidValue
	}
}
