package batch

import (
	"fmt"

	"github.com/angelmondragon/blindquote/internal/quote"
)

// Field names a string property of a line item that batch operations may set.
type Field string

const (
	FieldFabric   Field = "fabric"
	FieldColor    Field = "color"
	FieldLocation Field = "location"
	FieldOver     Field = "over"
	FieldOI       Field = "oi"
	FieldLR       Field = "lr"
	FieldDual     Field = "dual"
	FieldWinder   Field = "winder"
	FieldMotor    Field = "motor"
)

var validFields = []Field{
	FieldFabric,
	FieldColor,
	FieldLocation,
	FieldOver,
	FieldOI,
	FieldLR,
	FieldDual,
	FieldWinder,
	FieldMotor,
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return string(f)
}

// IsValid reports whether the value is a known Field.
func (f Field) IsValid() bool {
	for _, candidate := range validFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseField converts raw input into a Field.
func ParseField(value string) (Field, error) {
	for _, candidate := range validFields {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid batch field %q", value)
}

// ref returns the address of the field on item, or nil for an unknown field.
func (f Field) ref(item *quote.LineItem) *string {
	switch f {
	case FieldFabric:
		return &item.Fabric
	case FieldColor:
		return &item.Color
	case FieldLocation:
		return &item.Location
	case FieldOver:
		return &item.Over
	case FieldOI:
		return &item.OI
	case FieldLR:
		return &item.LR
	case FieldDual:
		return &item.Dual
	case FieldWinder:
		return &item.Winder
	case FieldMotor:
		return &item.Motor
	}
	return nil
}
