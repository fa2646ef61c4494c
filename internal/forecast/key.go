package forecast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Day selects which of the two forecast days a request targets.
type Day int

const (
	DayToday    Day = 0
	DayTomorrow Day = 1
)

// Key addresses one cached forecast slot. Location is a place identifier
// as understood by the provider (ASCII letters only, like the original
// place_id values); Hour is a wall-clock hour 0..23.
type Key struct {
	Location string `json:"location" validate:"required,alpha"`
	Day      Day    `json:"day" validate:"oneof=0 1"`
	Hour     int    `json:"hour" validate:"gte=0,lte=23"`
}

// Normalize returns the canonical form of the key. Two keys are equal
// iff their normalized fields are equal.
func (k Key) Normalize() Key {
	k.Location = strings.ToLower(strings.TrimSpace(k.Location))
	return k
}

// Validate checks the normalized key and reports the failure as a
// classified domain error.
func (k Key) Validate() error {
	if err := validate.Struct(k); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "Hour" {
					return Errf(KindInvalidHour, "hour %d outside 0..23", k.Hour)
				}
			}
		}
		return Errf(KindInvalidLocation, "invalid key: %v", err)
	}
	return nil
}

// Slug is the storage key used by the on-disk cache. Note: it carries no
// calendar date, so a slot cached on one day is served unchanged on any
// later day. This mirrors the original behavior.
func (k Key) Slug() string {
	return fmt.Sprintf("%s_%d_%d", k.Location, k.Day, k.Hour)
}
