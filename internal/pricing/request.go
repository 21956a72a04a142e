// internal/pricing/request.go
package pricing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"hw-quote/internal/domain"
	val "hw-quote/internal/validator"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidRequest = errors.New("invalid calculation request")

// Request is the body of a price calculation call.
type Request struct {
	Selections       []SelectionInput `json:"selections" validate:"dive"`
	DiscountID       *string          `json:"discountId"`
	SpecialReduction Amount           `json:"specialReduction"`
}

type SelectionInput struct {
	Category *string  `json:"category" validate:"required"`
	ItemID   ItemRef  `json:"itemId"`
	Quantity *float64 `json:"quantity" validate:"required"`
}

// ItemRef remembers whether "itemId" was present at all: the key is
// mandatory, but null or "" are valid and mean "nothing selected".
type ItemRef struct {
	ID  string
	Set bool
}

func (r *ItemRef) UnmarshalJSON(b []byte) error {
	r.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		r.ID = ""
		return nil
	}
	return json.Unmarshal(b, &r.ID)
}

func (r ItemRef) MarshalJSON() ([]byte, error) {
	if !r.Set {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// Amount accepts a JSON number or a numeric string. An absent value is zero.
type Amount struct {
	Value float64
	Set   bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	a.Set = true
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		a.Value = x
		return nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("specialReduction %q is not a number", x)
		}
		a.Value = f
		return nil
	}
	return fmt.Errorf("specialReduction must be a number, got %s", string(b))
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value)
}

func init() {
	val.Validate.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(SelectionInput)
		if !in.ItemID.Set {
			sl.ReportError(in.ItemID, "itemId", "ItemID", "required", "")
		}
	}, SelectionInput{})
}

// Input is a validated request.
type Input struct {
	Selections       []domain.Selection
	DiscountID       string
	SpecialReduction float64
}

// Validate checks the request shape and converts it into calculator input.
// Every failure wraps ErrInvalidRequest.
func (r Request) Validate() (Input, error) {
	if err := val.Struct(r); err != nil {
		return Input{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	in := Input{
		Selections:       make([]domain.Selection, 0, len(r.Selections)),
		SpecialReduction: r.SpecialReduction.Value,
	}
	if r.DiscountID != nil {
		in.DiscountID = *r.DiscountID
	}
	for _, s := range r.Selections {
		in.Selections = append(in.Selections, domain.Selection{
			Category: *s.Category,
			ItemID:   s.ItemID.ID,
			Quantity: *s.Quantity,
		})
	}
	return in, nil
}

// DecodeRequest parses a JSON body. Type errors are contract violations.
func DecodeRequest(body []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return req, nil
}
