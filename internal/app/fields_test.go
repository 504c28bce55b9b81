package app_test

import (
	"errors"
	"testing"

	"fiche_client/internal/app"
	"fiche_client/internal/domain"
)

func TestUpdateField_NumericCoercion(t *testing.T) {
	c := app.NewFormController(&fakeMedia{}, nil)

	cases := []struct {
		in   any
		want float64
	}{
		{"abc", 0},
		{"", 0},
		{"1500000", 1500000},
		{"12,5", 12.5},
		{"-3", 0},
		{nil, 0},
		{true, 0},
		{4200.0, 4200},
	}
	for _, tc := range cases {
		if err := c.UpdateField("budgetMax", tc.in); err != nil {
			t.Fatalf("UpdateField(%v): %v", tc.in, err)
		}
		if got := c.Profile().BudgetMax; got != tc.want {
			t.Errorf("budgetMax from %#v = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, in := range []any{"trois", "1e30", 1e300, "9999999999999999999999", float64(1 << 40)} {
		if err := c.UpdateField("bedrooms", 5); err != nil {
			t.Fatal(err)
		}
		if err := c.UpdateField("bedrooms", in); err != nil {
			t.Fatalf("UpdateField(%v): %v", in, err)
		}
		if got := c.Profile().Bedrooms; got != 0 {
			t.Errorf("bedrooms from %#v = %d, want 0", in, got)
		}
	}

	if err := c.UpdateField("stars", "4,0"); err != nil {
		t.Fatal(err)
	}
	if got := c.Profile().Stars; got != 4 {
		t.Fatalf("stars = %d, want 4", got)
	}
}

func TestUpdateField_PreservesOtherFields(t *testing.T) {
	c := app.NewFormController(&fakeMedia{}, nil)
	before := c.Profile()

	if err := c.UpdateField("firstName", "Yasmine"); err != nil {
		t.Fatal(err)
	}
	after := c.Profile()
	if after.FirstName != "Yasmine" {
		t.Fatalf("firstName = %q", after.FirstName)
	}
	after.FirstName = before.FirstName
	if after.City != before.City || after.Bedrooms != before.Bedrooms || after.Phone != before.Phone {
		t.Fatalf("other fields changed: %+v", after)
	}
}

func TestUpdateField_Checkbox(t *testing.T) {
	c := app.NewFormController(&fakeMedia{}, nil)
	for _, v := range []any{true, "on", "true"} {
		_ = c.UpdateField("pool", false)
		if err := c.UpdateField("pool", v); err != nil {
			t.Fatal(err)
		}
		if !c.Profile().Pool {
			t.Errorf("pool from %#v should be true", v)
		}
	}
	_ = c.UpdateField("urgent", "off")
	if c.Profile().Urgent {
		t.Error("urgent from off should be false")
	}
}

func TestUpdateField_ClosedLists(t *testing.T) {
	c := app.NewFormController(&fakeMedia{}, nil)

	if err := c.UpdateField("propertyType", "Villa"); err != nil {
		t.Fatal(err)
	}
	if err := c.UpdateField("transactionType", "Location"); err != nil {
		t.Fatal(err)
	}
	if err := c.UpdateField("city", "Meknès"); err != nil {
		t.Fatal(err)
	}

	for field, bad := range map[string]string{
		"propertyType":    "Château",
		"transactionType": "",
		"city":            "Paris",
	} {
		err := c.UpdateField(field, bad)
		if !errors.Is(err, domain.ErrInvalidValue) {
			t.Errorf("%s=%q: err %v, want ErrInvalidValue", field, bad, err)
		}
	}

	p := c.Profile()
	if p.PropertyType != domain.PropertyVilla || p.TransactionType != domain.TransactionRental || p.City != "Meknès" {
		t.Fatalf("rejected values leaked into profile: %+v", p)
	}
}

func TestUpdateField_Unknown(t *testing.T) {
	c := app.NewFormController(&fakeMedia{}, nil)
	if err := c.UpdateField("media", "x"); !errors.Is(err, domain.ErrUnknownField) {
		t.Fatalf("err %v, want ErrUnknownField", err)
	}
}
