package enums

import "fmt"

// FabricType is the categorical fabric code carried on a line item.
type FabricType string

const (
	FabricTypeB1 FabricType = "B1"
	FabricTypeB2 FabricType = "B2"
	FabricTypeB3 FabricType = "B3"
	FabricTypeB4 FabricType = "B4"
	FabricTypeB5 FabricType = "B5"
	FabricTypeSN FabricType = "SN"
	FabricTypeLF FabricType = "LF"
)

var validFabricTypes = []FabricType{
	FabricTypeB1,
	FabricTypeB2,
	FabricTypeB3,
	FabricTypeB4,
	FabricTypeB5,
	FabricTypeSN,
	FabricTypeLF,
}

// lightFilterEligible is the allow-list for Light-Filter application.
var lightFilterEligible = []FabricType{
	FabricTypeB2,
	FabricTypeB3,
	FabricTypeB4,
}

// String implements fmt.Stringer.
func (f FabricType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FabricType.
func (f FabricType) IsValid() bool {
	for _, candidate := range validFabricTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// LightFilterEligible reports whether Light-Filter may be applied to the type.
func (f FabricType) LightFilterEligible() bool {
	for _, candidate := range lightFilterEligible {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFabricType converts raw input into a FabricType.
func ParseFabricType(value string) (FabricType, error) {
	for _, candidate := range validFabricTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fabric type %q", value)
}
