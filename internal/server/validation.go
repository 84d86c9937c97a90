package server

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/francedirectjp-art/astro-medical-system/internal/common/errors"
)

// maxBodyBytes caps request bodies well above any legitimate payload.
const maxBodyBytes = 64 << 10

// birthInputSchema validates the standard request shape shared by all three
// diagnosis endpoints. Year bounds are intentionally absent: out-of-range
// years reach the ephemeris and surface as EPHEMERIS_UNAVAILABLE.
const birthInputSchema = `{
  "type": "object",
  "required": ["name", "year", "month", "day", "hour", "minute", "region"],
  "properties": {
    "name":   {"type": "string", "minLength": 1, "maxLength": 100},
    "year":   {"type": "integer"},
    "month":  {"type": "integer", "minimum": 1, "maximum": 12},
    "day":    {"type": "integer", "minimum": 1, "maximum": 31},
    "hour":   {"type": "integer", "minimum": 0, "maximum": 23},
    "minute": {"type": "integer", "minimum": 0, "maximum": 59},
    "region": {"type": "string", "minLength": 1}
  }
}`

var birthInputLoader = gojsonschema.NewStringLoader(birthInputSchema)

// validateBirthInput checks the raw JSON body against the schema before it
// is decoded into a BirthInput.
func validateBirthInput(body []byte) error {
	result, err := gojsonschema.Validate(birthInputLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apperrors.NewInvalidInputError("request body is not valid JSON")
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, e := range result.Errors() {
		details = append(details, e.String())
	}
	return apperrors.NewInvalidInputError(strings.Join(details, "; "))
}
