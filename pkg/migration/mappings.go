package migration

// ValueKind controls how a mapped legacy value is coerced before assignment.
type ValueKind string

const (
	// KindString passes the value through as a normalized string.
	KindString ValueKind = "string"
	// KindList splits a delimited legacy string into a list.
	KindList ValueKind = "list"
	// KindInt parses the value into an integer after normalization.
	KindInt ValueKind = "int"
	// KindRaw assigns the value as-is (lists and objects the legacy system
	// already shaped correctly).
	KindRaw ValueKind = "raw"
)

// FieldMapping maps one canonical field to the legacy keys that may carry it.
// The first legacy path present on the input wins.
type FieldMapping struct {
	Canonical   string
	Legacy      []string
	Kind        ValueKind
	Normalizers []string
	Required    bool
}

// buildingMappings is the fixed migration table from heterogeneous legacy
// records to the canonical building schema. Order matters only for audit
// output; each canonical field is independent.
var buildingMappings = []FieldMapping{
	{Canonical: "id", Legacy: []string{"id", "slug", "propertyId", "property_id"}, Kind: KindString, Normalizers: []string{"trim", "nslug"}},
	{Canonical: "name", Legacy: []string{"name", "propertyName", "property_name", "building_name", "title"}, Kind: KindString, Normalizers: []string{"collapse_whitespace"}, Required: true},

	{Canonical: "location.address", Legacy: []string{"location.address", "address", "street_address", "addr1"}, Kind: KindString, Normalizers: []string{"collapse_whitespace"}},
	{Canonical: "location.city", Legacy: []string{"location.city", "city"}, Kind: KindString, Normalizers: []string{"collapse_whitespace"}},
	{Canonical: "location.state", Legacy: []string{"location.state", "state", "region"}, Kind: KindString, Normalizers: []string{"trim"}},
	{Canonical: "location.zipCode", Legacy: []string{"location.zipCode", "zip", "zip_code", "postal_code"}, Kind: KindString, Normalizers: []string{"nzip"}},
	{Canonical: "location.neighborhood", Legacy: []string{"location.neighborhood", "neighborhood", "district"}, Kind: KindString, Normalizers: []string{"collapse_whitespace"}},
	{Canonical: "location.coordinates", Legacy: []string{"location.coordinates", "coordinates", "geo"}, Kind: KindRaw},

	{Canonical: "overview.tagline", Legacy: []string{"overview.tagline", "tagline", "headline", "marketing_headline"}, Kind: KindString, Normalizers: []string{"collapse_whitespace"}},
	{Canonical: "overview.description", Legacy: []string{"overview.description", "description", "summary", "about"}, Kind: KindString, Normalizers: []string{"trim"}},
	{Canonical: "overview.keyFeatures", Legacy: []string{"overview.keyFeatures", "keyFeatures", "key_features", "highlights"}, Kind: KindRaw},

	{Canonical: "pricing.studioRange", Legacy: []string{"pricing.studioRange", "studio_price", "price_studio", "studioRent"}, Kind: KindString, Normalizers: []string{"nprice_range"}},
	{Canonical: "pricing.oneBedRange", Legacy: []string{"pricing.oneBedRange", "one_bed_price", "price_1br", "oneBedRent"}, Kind: KindString, Normalizers: []string{"nprice_range"}},
	{Canonical: "pricing.twoBedRange", Legacy: []string{"pricing.twoBedRange", "two_bed_price", "price_2br", "twoBedRent"}, Kind: KindString, Normalizers: []string{"nprice_range"}},
	{Canonical: "pricing.threeBedRange", Legacy: []string{"pricing.threeBedRange", "three_bed_price", "price_3br", "threeBedRent"}, Kind: KindString, Normalizers: []string{"nprice_range"}},
	{Canonical: "pricing.currentSpecials", Legacy: []string{"pricing.currentSpecials", "specials", "current_specials", "promotions"}, Kind: KindList},
	{Canonical: "pricing.moveInCosts.deposit", Legacy: []string{"pricing.moveInCosts.deposit", "deposit", "security_deposit"}, Kind: KindString, Normalizers: []string{"ncurrency"}},
	{Canonical: "pricing.moveInCosts.fees", Legacy: []string{"pricing.moveInCosts.fees", "fees", "move_in_fees"}, Kind: KindList},

	{Canonical: "floorPlans", Legacy: []string{"floorPlans", "floor_plans", "units", "unit_mix"}, Kind: KindRaw},
	{Canonical: "amenities", Legacy: []string{"amenities", "amenity_groups", "features"}, Kind: KindRaw},

	{Canonical: "scores.value", Legacy: []string{"scores.value", "ratings.value", "value_rating"}, Kind: KindInt},
	{Canonical: "scores.quiet", Legacy: []string{"scores.quiet", "ratings.quiet", "ratings.noise", "noise_rating"}, Kind: KindInt},
	{Canonical: "scores.management", Legacy: []string{"scores.management", "ratings.management", "management_rating"}, Kind: KindInt},
	{Canonical: "scores.amenities", Legacy: []string{"scores.amenities", "ratings.amenities", "amenities_rating"}, Kind: KindInt},
	{Canonical: "scores.location", Legacy: []string{"scores.location", "ratings.location", "location_rating"}, Kind: KindInt},

	{Canonical: "reviews.pros", Legacy: []string{"reviews.pros", "pros"}, Kind: KindList},
	{Canonical: "reviews.cons", Legacy: []string{"reviews.cons", "cons"}, Kind: KindList},
	{Canonical: "reviews.managementFeedback", Legacy: []string{"reviews.managementFeedback", "management_feedback"}, Kind: KindString, Normalizers: []string{"trim"}},
	{Canonical: "reviews.noiseLevels", Legacy: []string{"reviews.noiseLevels", "noise_levels"}, Kind: KindString, Normalizers: []string{"trim"}},
	{Canonical: "reviews.overallLiving", Legacy: []string{"reviews.overallLiving", "overall_living"}, Kind: KindString, Normalizers: []string{"trim"}},
	{Canonical: "reviews.petFriendliness", Legacy: []string{"reviews.petFriendliness", "pet_friendliness", "pets"}, Kind: KindString, Normalizers: []string{"trim"}},

	{Canonical: "contact.phone", Legacy: []string{"contact.phone", "phone", "leasing_phone"}, Kind: KindString, Normalizers: []string{"nphone"}},
	{Canonical: "contact.email", Legacy: []string{"contact.email", "email", "leasing_email"}, Kind: KindString, Normalizers: []string{"nemail"}},
	{Canonical: "contact.officeHours", Legacy: []string{"contact.officeHours", "office_hours", "hours"}, Kind: KindString, Normalizers: []string{"collapse_whitespace"}},
	{Canonical: "contact.virtualTourUrl", Legacy: []string{"contact.virtualTourUrl", "virtual_tour", "virtual_tour_url"}, Kind: KindString, Normalizers: []string{"trim"}},
	{Canonical: "contact.scheduleTourUrl", Legacy: []string{"contact.scheduleTourUrl", "schedule_tour", "tour_booking_url"}, Kind: KindString, Normalizers: []string{"trim"}},

	{Canonical: "media.heroImage", Legacy: []string{"media.heroImage", "hero_image", "main_image"}, Kind: KindString, Normalizers: []string{"trim"}},
	{Canonical: "media.galleryImages", Legacy: []string{"media.galleryImages", "gallery", "images"}, Kind: KindRaw},
	{Canonical: "media.virtualTourUrl", Legacy: []string{"media.virtualTourUrl"}, Kind: KindString, Normalizers: []string{"trim"}},
	{Canonical: "media.videoUrl", Legacy: []string{"media.videoUrl", "video", "video_url"}, Kind: KindString, Normalizers: []string{"trim"}},

	{Canonical: "seo.title", Legacy: []string{"seo.title", "meta_title"}, Kind: KindString, Normalizers: []string{"collapse_whitespace"}},
	{Canonical: "seo.description", Legacy: []string{"seo.description", "meta_description"}, Kind: KindString, Normalizers: []string{"trim"}},
	{Canonical: "seo.keywords", Legacy: []string{"seo.keywords", "meta_keywords", "keywords"}, Kind: KindList},
	{Canonical: "seo.canonicalUrl", Legacy: []string{"seo.canonicalUrl", "canonical_url", "page_url"}, Kind: KindString, Normalizers: []string{"trim"}},
}

// floorPlanItemMappings maps the keys inside one legacy floor plan entry.
var floorPlanItemMappings = []FieldMapping{
	{Canonical: "type", Legacy: []string{"type", "unit_type", "plan_type"}, Kind: KindString, Normalizers: []string{"lowercase", "trim"}},
	{Canonical: "name", Legacy: []string{"name", "plan_name", "unit_name"}, Kind: KindString, Normalizers: []string{"collapse_whitespace"}},
	{Canonical: "sqFt", Legacy: []string{"sqFt", "sq_ft", "sqft", "square_feet", "area"}, Kind: KindInt, Normalizers: []string{"nsqft"}},
	{Canonical: "price", Legacy: []string{"price", "rent", "monthly_rent"}, Kind: KindString, Normalizers: []string{"nprice_range"}},
	{Canonical: "availability", Legacy: []string{"availability", "available", "available_date"}, Kind: KindString, Normalizers: []string{"trim"}},
	{Canonical: "features", Legacy: []string{"features", "unit_features"}, Kind: KindList},
	{Canonical: "imageUrl", Legacy: []string{"imageUrl", "image", "image_url", "floorplan_image"}, Kind: KindString, Normalizers: []string{"trim"}},
}

// legacyFloorPlanTypes folds legacy unit type spellings into the canonical enum.
var legacyFloorPlanTypes = map[string]string{
	"studio":     "studio",
	"efficiency": "studio",
	"1br":        "1bed",
	"1bd":        "1bed",
	"one bed":    "1bed",
	"1bed":       "1bed",
	"2br":        "2bed",
	"2bd":        "2bed",
	"two bed":    "2bed",
	"2bed":       "2bed",
	"3br":        "3bed",
	"3bd":        "3bed",
	"three bed":  "3bed",
	"3bed":       "3bed",
}
