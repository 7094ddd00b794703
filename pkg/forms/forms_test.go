package forms

import (
	"math"
	"testing"
)

func TestRequired(t *testing.T) {
	v := Required()
	tests := []struct {
		value any
		ok    bool
	}{
		{nil, false},
		{"", false},
		{"   ", false},
		{"x", true},
		{0, true},
	}
	for _, tt := range tests {
		if err := v.Validate(tt.value); (err == nil) != tt.ok {
			t.Errorf("Required(%v) err = %v, want ok=%v", tt.value, err, tt.ok)
		}
	}
	if v.Message() != "This field is required" {
		t.Errorf("unexpected default message %q", v.Message())
	}
	if Required("Fill me").Message() != "Fill me" {
		t.Error("message override ignored")
	}
}

func TestPositive(t *testing.T) {
	v := Positive("too small")
	tests := []struct {
		value any
		ok    bool
	}{
		{1.0, true},
		{0.01, true},
		{5000, true},
		{"12", true},
		{0.0, false},
		{-5.0, false},
		{math.NaN(), false},
		{math.Inf(1), false},
		{"abc", false},
		{nil, false},
	}
	for _, tt := range tests {
		if err := v.Validate(tt.value); (err == nil) != tt.ok {
			t.Errorf("Positive(%v) err = %v, want ok=%v", tt.value, err, tt.ok)
		}
	}
	if v.Message() != "too small" {
		t.Errorf("Message() = %q", v.Message())
	}
}

func TestEmail(t *testing.T) {
	v := Email()
	valid := []string{"a@b.co", "user.name+tag@example.com", "x@y.z", "jos\u00e9@caf\u00e9.fr"}
	invalid := []string{
		"", "plain", "a@b", "a b@c.d", "@b.co", "a@.", "a@@b.co",
		"a\u00a0b@c.com", "a\vb@c.com", "a@b.c\u2028om", "a\u3000@b.com",
		"a@b\ufeff.com", "a\u2009b@c.com", "a@b.c\u1680",
	}

	for _, s := range valid {
		if err := v.Validate(s); err != nil {
			t.Errorf("Email(%q) = %v, want nil", s, err)
		}
	}
	for _, s := range invalid {
		if err := v.Validate(s); err == nil {
			t.Errorf("Email(%q) passed, want error", s)
		}
	}
}

func TestErrorsValidate(t *testing.T) {
	errs := Errors{}

	if !errs.Validate("revenue", 10.0, Positive("bad revenue")) {
		t.Error("expected revenue to pass")
	}
	if errs.Validate("email", "", Required("need email"), Email("bad email")) {
		t.Error("expected email to fail")
	}
	if got := errs.Get("email"); got != "need email" {
		t.Errorf("first failing validator should win, got %q", got)
	}
	if errs.Has("revenue") {
		t.Error("revenue should have no error")
	}
	if errs.Empty() {
		t.Error("errors should not be empty")
	}
	if f := errs.Fields(); len(f) != 1 || f[0] != "email" {
		t.Errorf("Fields() = %v", f)
	}
}

func TestErrorsClone(t *testing.T) {
	errs := Errors{"cost": "x"}
	c := errs.Clone()
	c.Add("cost", "y")
	if errs.Get("cost") != "x" {
		t.Error("clone shares storage with original")
	}

	var nilErrs Errors
	if nilErrs.Clone() == nil {
		t.Error("clone of nil should be an empty map")
	}
}

func TestCustom(t *testing.T) {
	v := Custom(func(any) error { return ErrRequired }, "custom")
	if v.Validate(1) == nil || v.Message() != "custom" {
		t.Error("custom validator not applied")
	}
}

func TestField(t *testing.T) {
	f := Field{Name: "cost", Error: "oops"}
	if !f.HasError() || f.ID() != "field-cost" {
		t.Errorf("unexpected field helpers: %v %q", f.HasError(), f.ID())
	}
}
