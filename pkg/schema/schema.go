// Package schema validates canonical building records against the fixed
// building rule set.
package schema

// Rule names identify which constraint a violation broke.
const (
	RuleRequired = "required"
	RuleType     = "type"
	RuleRange    = "range"
	RuleEnum     = "enum"
	RulePositive = "positive"
)

// PropertyDefinition describes the constraints on one field.
type PropertyDefinition struct {
	Type       string                        `json:"type"`
	Properties map[string]PropertyDefinition `json:"properties,omitempty"`
	Required   []string                      `json:"required,omitempty"`
	Items      *PropertyDefinition           `json:"items,omitempty"`
	Enum       []string                      `json:"enum,omitempty"`
	Min        *int                          `json:"min,omitempty"`
	Max        *int                          `json:"max,omitempty"`
	Positive   bool                          `json:"positive,omitempty"`
}

// Schema is the rule set for one record shape.
type Schema struct {
	Properties map[string]PropertyDefinition `json:"properties"`
	Required   []string                      `json:"required"`
}

func intPtr(n int) *int { return &n }

func str() PropertyDefinition { return PropertyDefinition{Type: "string"} }

func strList() PropertyDefinition {
	return PropertyDefinition{Type: "array", Items: &PropertyDefinition{Type: "string"}}
}

// BuildingSchema is the canonical rule set for a BuildingRecord. The five
// component scores are bounded integers; floor plan types are a closed enum;
// every floor plan area must be positive.
var BuildingSchema = Schema{
	Required: []string{"id", "name", "scores"},
	Properties: map[string]PropertyDefinition{
		"id":   str(),
		"name": str(),
		"location": {
			Type: "object",
			Properties: map[string]PropertyDefinition{
				"address":      str(),
				"city":         str(),
				"state":        str(),
				"zipCode":      str(),
				"neighborhood": str(),
				"coordinates":  {Type: "object"},
			},
		},
		"overview": {
			Type: "object",
			Properties: map[string]PropertyDefinition{
				"tagline":     str(),
				"description": str(),
				"keyFeatures": {
					Type: "array",
					Items: &PropertyDefinition{
						Type: "object",
						Properties: map[string]PropertyDefinition{
							"title":       str(),
							"description": str(),
							"icon":        str(),
						},
					},
				},
			},
		},
		"pricing": {
			Type: "object",
			Properties: map[string]PropertyDefinition{
				"studioRange":     str(),
				"oneBedRange":     str(),
				"twoBedRange":     str(),
				"threeBedRange":   str(),
				"currentSpecials": strList(),
				"moveInCosts": {
					Type: "object",
					Properties: map[string]PropertyDefinition{
						"deposit": str(),
						"fees":    strList(),
					},
				},
			},
		},
		"floorPlans": {
			Type: "array",
			Items: &PropertyDefinition{
				Type:     "object",
				Required: []string{"type", "sqFt"},
				Properties: map[string]PropertyDefinition{
					"type":         {Type: "string", Enum: []string{"studio", "1bed", "2bed", "3bed"}},
					"name":         str(),
					"sqFt":         {Type: "integer", Positive: true},
					"price":        str(),
					"availability": str(),
					"features":     strList(),
					"imageUrl":     str(),
				},
			},
		},
		"amenities": {
			Type: "array",
			Items: &PropertyDefinition{
				Type: "object",
				Properties: map[string]PropertyDefinition{
					"category": str(),
					"items": {
						Type: "array",
						Items: &PropertyDefinition{
							Type: "object",
							Properties: map[string]PropertyDefinition{
								"name":        str(),
								"icon":        str(),
								"description": str(),
							},
						},
					},
				},
			},
		},
		"scores": {
			Type:     "object",
			Required: []string{"value", "quiet", "management", "amenities", "location"},
			Properties: map[string]PropertyDefinition{
				"value":      {Type: "integer", Min: intPtr(1), Max: intPtr(5)},
				"quiet":      {Type: "integer", Min: intPtr(1), Max: intPtr(5)},
				"management": {Type: "integer", Min: intPtr(1), Max: intPtr(5)},
				"amenities":  {Type: "integer", Min: intPtr(1), Max: intPtr(5)},
				"location":   {Type: "integer", Min: intPtr(1), Max: intPtr(5)},
			},
		},
		"reviews": {
			Type: "object",
			Properties: map[string]PropertyDefinition{
				"pros":               strList(),
				"cons":               strList(),
				"managementFeedback": str(),
				"noiseLevels":        str(),
				"overallLiving":      str(),
				"petFriendliness":    str(),
			},
		},
		"contact": {
			Type: "object",
			Properties: map[string]PropertyDefinition{
				"phone":           str(),
				"email":           str(),
				"officeHours":     str(),
				"virtualTourUrl":  str(),
				"scheduleTourUrl": str(),
			},
		},
		"media": {
			Type: "object",
			Properties: map[string]PropertyDefinition{
				"heroImage":      str(),
				"galleryImages":  strList(),
				"virtualTourUrl": str(),
				"videoUrl":       str(),
			},
		},
		"seo": {
			Type: "object",
			Properties: map[string]PropertyDefinition{
				"title":        str(),
				"description":  str(),
				"keywords":     strList(),
				"canonicalUrl": str(),
			},
		},
	},
}
