// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Field is a free-text form value. It accepts JSON strings and numbers
// (browsers send numberToServe either way) and is trimmed on decode.
type Field string

func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected text, got %s", data)
		}
		*f = Field(n.String())
	}
	return nil
}

// Flag is a checkbox value. It accepts booleans, numbers and strings;
// any non-empty string is true, "false" included.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(x)
	case float64:
		*f = x != 0
	case string:
		*f = x != ""
	default:
		return fmt.Errorf("expected a flag, got %s", data)
	}
	return nil
}

// mailShape is a conservative local@domain.tld check.
var mailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Inquiry is a contact form submission.
type Inquiry struct {
	EventStartDate   Field `json:"eventStartDate" validate:"max=64"`
	EventStartTime   Field `json:"eventStartTime" validate:"max=64"`
	EventEndTime     Field `json:"eventEndTime" validate:"max=64"`
	NumberToServe    Field `json:"numberToServe" validate:"max=64"`
	OrganizationName Field `json:"organizationName" validate:"max=200"`
	ServingAddress   Field `json:"servingAddress" validate:"max=300"`
	City             Field `json:"city" validate:"max=100"`
	State            Field `json:"state" validate:"max=100"`
	Zip              Field `json:"zip" validate:"max=20"`
	ContactName      Field `json:"contactName" validate:"required,max=200"`
	ContactPhone     Field `json:"contactPhone" validate:"required,max=64"`
	EventPhone       Field `json:"eventPhone" validate:"max=64"`
	ContactEmail     Field `json:"contactEmail" validate:"required,max=254,mailshape"`
	HasVolunteers    Flag  `json:"hasVolunteers"`
	IsFundraiser     Flag  `json:"isFundraiser"`
	TypeOfFundraiser Field `json:"typeOfFundraiser" validate:"max=100"`
	TypeOfBreakfast  Field `json:"typeOfBreakfast" validate:"max=100"`
	TypeOfMenusNMore Field `json:"typeOfMenusNMore" validate:"max=100"`
	WhereDidYouHear  Field `json:"whereDidYouHear" validate:"max=100"`
	Message          Field `json:"message" validate:"max=5000"`
}

// Subject returns the notification subject line.
func (q *Inquiry) Subject() string {
	date := string(q.EventStartDate)
	if date == "" {
		date = "TBD"
	}
	return "New Event Inquiry - " + string(q.ContactName) + " - " + date
}

// Selectable options offered by the contact form.
var (
	FundraiserTypes = []string{"Original Chris Cakes", "Hot Dog Bash", "Coney Night", "Spaghetti Dinner"}
	BreakfastTypes  = []string{
		"Easy Breezy", "Cakes and Eggs", "Top Cake", "Chris Cakes Deluxe", "Big Chris",
		"French Toast Lite", "French Toast and Eggs", "Biscuits and Gravy",
	}
	MenusNMoreTypes = []string{
		"Box Lunches", "Dogs N More", "Coneys N More", "Taco Bar/ Nacho Bar", "Brats N More",
		"Burgers N More", "Burgers N Dogs", "Burgers N Brats", "Grill Chicken N More",
		"Pasta N More", "BBQ N More",
	}
	ReferralSources = []string{"Word of Mouth", "Google", "Facebook", "Twitter", "Other"}
)
