package extend

// Processor run config constants for the passport extraction pipeline.
const (
	configType    = "EXTRACT"
	baseProcessor = "extraction_performance"
	baseVersion   = "4.2.0"
)

// PassportFieldNames lists every field the passport schema requires, in the
// order they appear on the identity page.
var PassportFieldNames = []string{
	"sex", "type", "height", "surname", "eye_color", "residence",
	"given_names", "nationality", "country_code", "date_of_birth",
	"date_of_issue", "date_of_expiry", "place_of_birth",
	"passport_number", "holder_signature", "issuing_authority",
	"machine_readable_zone",
}

// BuildPassportJSONSchema returns the extraction schema as a generic map.
// It is sent to the vendor as the structured-output constraint and also used
// locally to validate what comes back.
func BuildPassportJSONSchema() map[string]any {
	props := map[string]any{
		"sex":                   stringProp("The gender or sex of the passport holder as indicated in the document. May be represented as 'M', 'F', or other designations."),
		"type":                  stringProp("The document type code, usually a single letter such as 'P' for passport."),
		"height":                stringProp("The height of the passport holder as recorded in the document, in meters, centimeters, or feet/inches."),
		"surname":               stringProp("The family name of the passport holder as it appears on the document. This is the primary legal surname for identification."),
		"eye_color":             stringProp("The color of the passport holder's eyes as stated in the document, as a color name or code."),
		"residence":             stringProp("The address or place of residence of the passport holder, possibly including street, city, postal code, and country."),
		"given_names":           stringProp("The given names (first and middle names) of the passport holder, possibly separated by spaces or commas."),
		"nationality":           stringProp("The official nationality or citizenship of the passport holder as stated on the document."),
		"country_code":          stringProp("The three-letter issuing-country code, typically ISO 3166-1 alpha-3."),
		"date_of_birth":         dateProp("The birth date of the passport holder as recorded in the passport."),
		"date_of_issue":         dateProp("The date on which the passport was issued, the official start of the document's validity."),
		"date_of_expiry":        dateProp("The date on which the passport expires, the last date the document is valid for travel."),
		"place_of_birth":        stringProp("The city, region, or country where the passport holder was born, as stated in the document."),
		"passport_number":       stringProp("The unique identifier assigned to this passport, possibly containing letters and numbers."),
		"holder_signature":      stringProp("The signature of the passport holder as it appears on the document."),
		"issuing_authority":     stringProp("The name of the authority or agency that issued the passport."),
		"machine_readable_zone": stringProp("The MRZ text at the bottom of the identity page: two or three lines of letters, numbers, and chevrons ('<')."),
	}

	required := make([]any, 0, len(PassportFieldNames))
	for _, name := range PassportFieldNames {
		required = append(required, name)
	}

	return map[string]any{
		"type":                 "object",
		"required":             required,
		"properties":           props,
		"additionalProperties": false,
	}
}

func stringProp(description string) map[string]any {
	return map[string]any{
		"type":        []any{"string", "null"},
		"description": description,
	}
}

func dateProp(description string) map[string]any {
	return map[string]any{
		"type":        []any{"string", "null"},
		"description": description,
		"extend:type": "date",
	}
}
