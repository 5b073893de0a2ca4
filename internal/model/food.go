package model

// Photo holds the image URLs attached to a food by the nutrition API
type Photo struct {
	Thumb   string `json:"thumb"`
	HighRes string `json:"highres"`
}

// AltMeasure is an alternate serving size for a food
type AltMeasure struct {
	ServingWeight float64 `json:"serving_weight"`
	Measure       string  `json:"measure"`
	Qty           float64 `json:"qty"`
}

// FoodItem represents one element of the nutrition API "foods" sequence.
// Optional nutrients are pointers so an absent field can be told apart from zero.
type FoodItem struct {
	FoodName           string       `json:"food_name"`
	ServingQty         float64      `json:"serving_qty"`
	ServingUnit        string       `json:"serving_unit"`
	ServingWeightGrams *float64     `json:"serving_weight_grams"`
	Calories           float64      `json:"nf_calories"`
	TotalFat           float64      `json:"nf_total_fat"`
	TotalCarbohydrate  float64      `json:"nf_total_carbohydrate"`
	Protein            float64      `json:"nf_protein"`
	DietaryFiber       *float64     `json:"nf_dietary_fiber"`
	Potassium          *float64     `json:"nf_potassium"`
	Sodium             *float64     `json:"nf_sodium"`
	Iron               *float64     `json:"nf_iron"`
	Calcium            *float64     `json:"nf_calcium"`
	Zinc               *float64     `json:"nf_zinc"`
	AltMeasures        []AltMeasure `json:"alt_measures"`
	Photo              *Photo       `json:"photo"`
}

// ImageURL returns the high resolution photo URL, or "" when the food has none
func (f FoodItem) ImageURL() string {
	if f.Photo == nil {
		return ""
	}
	return f.Photo.HighRes
}

// AggregateNutrition is the running sum of the primary macros across one response
type AggregateNutrition struct {
	Calories float64 `json:"calories"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
}

// Add accumulates a food's macros into the aggregate
func (a *AggregateNutrition) Add(f FoodItem) {
	a.Calories += f.Calories
	a.Fat += f.TotalFat
	a.Carbs += f.TotalCarbohydrate
	a.Protein += f.Protein
}

// Aggregate sums the macros of every food in a response
func Aggregate(foods []FoodItem) AggregateNutrition {
	var total AggregateNutrition
	for _, f := range foods {
		total.Add(f)
	}
	return total
}

// Float returns a pointer to v. Handy for building foods with optional nutrients.
func Float(v float64) *float64 {
	return &v
}
