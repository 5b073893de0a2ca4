package types

// NutritionRequest is the nutrition search form
type NutritionRequest struct {
	Search string `form:"search"`
}

// AutocompleteRequest carries the recipe name fragment typed so far
type AutocompleteRequest struct {
	Query string `form:"query"`
}

// RecommendationRequest is the recommendation form
type RecommendationRequest struct {
	RecipeName string `form:"recipe-name"`
}

// FilterRequest is the recipe filter form. Checkbox fields hold the submitted
// value, or "" when the box was unchecked.
type FilterRequest struct {
	Category     string `form:"category"`
	DietType     string `form:"diet-type"`
	Ingredients  string `form:"ingredients"`
	ServingOne   string `form:"serving-one"`
	ServingTwo   string `form:"serving-two"`
	ServingCrowd string `form:"serving-crowd"`
	QuickAndEasy string `form:"quick-and-easy"`
}

// FilterCriteria is what the filter endpoint is queried with
type FilterCriteria struct {
	Category     string
	DietType     string
	Ingredients  string
	ServingOne   bool
	ServingTwo   bool
	ServingCrowd bool
	QuickAndEasy bool
}

// Criteria converts the submitted form into filter criteria. Values are passed through untrimmed.
func (r FilterRequest) Criteria() FilterCriteria {
	return FilterCriteria{
		Category:     r.Category,
		DietType:     r.DietType,
		Ingredients:  r.Ingredients,
		ServingOne:   Checked(r.ServingOne),
		ServingTwo:   Checked(r.ServingTwo),
		ServingCrowd: Checked(r.ServingCrowd),
		QuickAndEasy: Checked(r.QuickAndEasy),
	}
}

// Checked reports whether a submitted checkbox value means checked
func Checked(v string) bool {
	return v == "on" || v == "true"
}

// ModalClickRequest is a click on the page. Target is the id of the clicked element.
type ModalClickRequest struct {
	Target string `json:"target" form:"target"`
}

// ActivityQuery selects recent search activity
type ActivityQuery struct {
	Limit int    `form:"limit"`
	Kind  string `form:"kind"`
}
