package models

// Category names for the default taxonomy. Kept as constants so classifier
// rules and tests never drift from the taxonomy spelling.
const (
	CategoryHousing        = "housing"
	CategoryUtilities      = "utilities"
	CategoryGroceries      = "groceries"
	CategoryDining         = "dining"
	CategoryTransportation = "transportation"
	CategoryEntertainment  = "entertainment"
	CategoryShopping       = "shopping"
	CategoryHealth         = "health"
	CategoryEducation      = "education"
	CategoryTravel         = "travel"
	CategoryPersonal       = "personal"
	CategoryIncome         = "income"
	CategoryInvestments    = "investments"
	CategoryDebt           = "debt"
	CategoryInsurance      = "insurance"
	CategoryTaxes          = "taxes"
	CategoryGiftsDonations = "gifts_donations"
	CategoryBusiness       = "business"
	CategoryOther          = "other"
)

// Recurrence frequencies emitted by the recurring-expense detector.
const (
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)
