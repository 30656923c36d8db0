package validate_test

import (
	"testing"

	"github.com/tyabelawras/api/pkg/validate"
)

type orderPayload struct {
	CustomerName    string  `json:"customerName"    validate:"required,min=1,max=100"`
	CustomerPhone   string  `json:"customerPhone"   validate:"required,phone"`
	DeliveryAddress string  `json:"deliveryAddress" validate:"required,min=1,max=200"`
	DeliveryFee     float64 `json:"deliveryFee"     validate:"gte=0"`
	Notes           string  `json:"notes"           validate:"nullable,max=1000"`
	Status          string  `json:"status"          validate:"required,in=pending,in_delivery,delivered,cancelled"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(orderPayload{
		CustomerName:    "Amine B.",
		CustomerPhone:   "0551234567",
		DeliveryAddress: "Cite 500 logements, Batna",
		DeliveryFee:     150,
		Notes:           "",
		Status:          "pending",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(orderPayload{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["customerName"]; !ok {
		t.Error("expected customerName to be required")
	}
	if _, ok := errs["customerPhone"]; !ok {
		t.Error("expected customerPhone to be required")
	}
}

func TestPhoneRule(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"required,phone"`
	}
	valid := []string{"0551234567", "0661234567", "0771234567", "+213551234567"}
	for _, p := range valid {
		if errs := validate.Struct(in{Phone: p}); validate.HasErrors(errs) {
			t.Errorf("expected %q to pass, got: %v", p, errs)
		}
	}
	invalid := []string{"055123456", "0451234567", "1234567890", "+21355123456789"}
	for _, p := range invalid {
		if errs := validate.Struct(in{Phone: p}); !validate.HasErrors(errs) {
			t.Errorf("expected %q to fail", p)
		}
	}
}

// in= params contain commas; the rule splitter must not cut them apart.
func TestInRuleMultiValue(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=pending,in_delivery,delivered,cancelled"`
	}
	for _, s := range []string{"pending", "in_delivery", "delivered", "cancelled"} {
		if errs := validate.Struct(in{Status: s}); validate.HasErrors(errs) {
			t.Errorf("expected status %q to pass, got: %v", s, errs)
		}
	}
	if errs := validate.Struct(in{Status: "shipped"}); !validate.HasErrors(errs) {
		t.Error("expected unknown status to fail")
	}
}

func TestInFollowedByAnotherRule(t *testing.T) {
	type in struct {
		Kind string `json:"kind" validate:"required,in=html,text,max=10"`
	}
	if errs := validate.Struct(in{Kind: "html"}); validate.HasErrors(errs) {
		t.Errorf("expected html to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Kind: "pdf"}); !validate.HasErrors(errs) {
		t.Error("expected pdf to fail the in rule")
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Rating int `json:"rating" validate:"required,integer,gte=1,lte=5"`
	}
	if errs := validate.Struct(in{Rating: 6}); !validate.HasErrors(errs) {
		t.Error("expected rating 6 to fail")
	}
	if errs := validate.Struct(in{Rating: 3}); validate.HasErrors(errs) {
		t.Errorf("expected rating 3 to pass, got: %v", errs)
	}
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Qty float64 `json:"qty" validate:"required,between=1,99"`
	}
	if errs := validate.Struct(in{Qty: 150}); !validate.HasErrors(errs) {
		t.Error("expected qty > 99 to fail")
	}
	if errs := validate.Struct(in{Qty: 12}); validate.HasErrors(errs) {
		t.Errorf("expected qty 12 to pass: %v", errs)
	}
}

// Tags on slice element structs must run per element, with the index in
// the error key.
func TestSliceElementRules(t *testing.T) {
	type line struct {
		MenuItem uint `json:"menuItem" validate:"required"`
		Quantity int  `json:"quantity" validate:"required,gte=1"`
	}
	type cart struct {
		Items []line `json:"items" validate:"required"`
	}

	errs := validate.Struct(cart{Items: []line{
		{MenuItem: 1, Quantity: 2},
		{MenuItem: 2, Quantity: -3},
	}})
	if _, ok := errs["items.1.quantity"]; !ok {
		t.Errorf("expected items.1.quantity error, got: %v", errs)
	}
	if _, ok := errs["items.0.quantity"]; ok {
		t.Error("valid element must not produce an error")
	}

	errs = validate.Struct(cart{Items: []line{{MenuItem: 1, Quantity: 0}}})
	if _, ok := errs["items.0.quantity"]; !ok {
		t.Errorf("expected zero quantity to fail, got: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Image string `json:"image" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{Image: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Image: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); !validate.HasErrors(errs) {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "client@tyabelawras.com"}); validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestMaxStringLength(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,max=5"`
	}
	if errs := validate.Struct(in{Name: "abcdef"}); !validate.HasErrors(errs) {
		t.Error("expected 6-char name to fail max=5")
	}
	if errs := validate.Struct(in{Name: "abc"}); validate.HasErrors(errs) {
		t.Errorf("expected 3-char name to pass: %v", errs)
	}
}
