package models

// LocationType classifies the setting a viewer is browsing from or for.
type LocationType string

const (
	LocationUrban      LocationType = "urban"
	LocationSuburban   LocationType = "suburban"
	LocationWaterfront LocationType = "waterfront"
	LocationOther      LocationType = "other"
)

// Audience classifies the viewer segment.
type Audience string

const (
	AudienceYoungProfessional Audience = "youngProfessional"
	AudienceFamily            Audience = "family"
	AudienceRetiree           Audience = "retiree"
	AudienceGeneral           Audience = "general"
)

// ViewerContext carries the personalization inputs for one render. Both fields
// are optional; Normalize fills in the defaults.
type ViewerContext struct {
	LocationType LocationType `json:"location_type,omitempty"`
	Audience     Audience     `json:"audience,omitempty"`
}

// Normalize returns a copy with absent or unknown values replaced by the
// defaults (other/general).
func (v ViewerContext) Normalize() ViewerContext {
	switch v.LocationType {
	case LocationUrban, LocationSuburban, LocationWaterfront:
	default:
		v.LocationType = LocationOther
	}
	switch v.Audience {
	case AudienceYoungProfessional, AudienceFamily, AudienceRetiree:
	default:
		v.Audience = AudienceGeneral
	}
	return v
}

// FeatureHighlight is one personalized feature block surfaced by the selector.
type FeatureHighlight struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// VariantSet is the overlay the personalization selector produces. Zero-value
// fields mean "no override"; the renderer falls through to the record's own
// overview content.
type VariantSet struct {
	Tagline    string             `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Highlights []FeatureHighlight `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// IsZero reports whether the overlay overrides nothing.
func (v VariantSet) IsZero() bool {
	return v.Tagline == "" && len(v.Highlights) == 0
}
