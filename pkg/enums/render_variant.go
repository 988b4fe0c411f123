package enums

import "fmt"

// RenderVariant selects which HTML quote template is produced.
type RenderVariant string

const (
	RenderVariantPrint RenderVariant = "print"
	RenderVariantGmail RenderVariant = "gmail"
)

var validRenderVariants = []RenderVariant{
	RenderVariantPrint,
	RenderVariantGmail,
}

// String implements fmt.Stringer.
func (r RenderVariant) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RenderVariant.
func (r RenderVariant) IsValid() bool {
	for _, candidate := range validRenderVariants {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRenderVariant converts raw input into a RenderVariant.
func ParseRenderVariant(value string) (RenderVariant, error) {
	for _, candidate := range validRenderVariants {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid render variant %q", value)
}
