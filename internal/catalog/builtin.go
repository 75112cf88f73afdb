package catalog

// Builtin returns the default reference panel: complete blood count, basic
// metabolic and lipid panels, plus common alias names for blood sugar tests.
// Deployments with their own panel load a YAML seed file instead.
func Builtin() *Catalog {
	c, err := New(builtinEntries)
	if err != nil {
		panic(err)
	}
	return c
}

var builtinEntries = []Entry{
	{
		CanonicalName:   "hemoglobin",
		Unit:            "g/dL",
		RefLow:          12.0,
		RefHigh:         15.0,
		ExplanationLow:  "is lower than the normal range, which may relate to anemia or nutritional issues.",
		ExplanationHigh: "is higher than the normal range, which can occur due to dehydration or other conditions.",
	},
	{
		CanonicalName:   "wbc",
		Unit:            "/uL",
		RefLow:          4000,
		RefHigh:         11000,
		ExplanationLow:  "count is lower than the normal range, which can reduce the body's ability to fight infection.",
		ExplanationHigh: "count is higher than the normal range, which may be linked to infection or inflammation.",
	},
	{
		CanonicalName:   "platelets",
		Unit:            "/uL",
		RefLow:          150000,
		RefHigh:         450000,
		ExplanationLow:  "count is lower than the normal range, which may increase bleeding risk.",
		ExplanationHigh: "count is higher than the normal range, which may increase the risk of clotting.",
	},
	{
		CanonicalName:   "rbc",
		Unit:            "million/uL",
		RefLow:          4.2,
		RefHigh:         5.4,
		ExplanationLow:  "count is lower than the normal range, which may indicate anemia or blood loss.",
		ExplanationHigh: "count is higher than the normal range, which may relate to dehydration or other conditions.",
	},
	{
		CanonicalName:   "glucose",
		Unit:            "mg/dL",
		RefLow:          70,
		RefHigh:         100,
		ExplanationLow:  "level is lower than the normal range, which may indicate hypoglycemia.",
		ExplanationHigh: "level is higher than the normal range, which may indicate a risk of diabetes.",
	},
	{
		CanonicalName:   "creatinine",
		Unit:            "mg/dL",
		RefLow:          0.6,
		RefHigh:         1.3,
		ExplanationLow:  "level is lower than the normal range, which is usually not a cause for concern.",
		ExplanationHigh: "level is higher than the normal range, which may indicate issues with kidney function.",
	},
	{
		CanonicalName:   "bun",
		Unit:            "mg/dL",
		RefLow:          7,
		RefHigh:         20,
		ExplanationLow:  "level is lower than the normal range, which is usually not a cause for concern.",
		ExplanationHigh: "level (Blood Urea Nitrogen) is higher than the normal range, which may relate to kidney function or dehydration.",
	},
	{
		CanonicalName:   "sodium",
		Unit:            "mEq/L",
		RefLow:          135,
		RefHigh:         145,
		ExplanationLow:  "level is lower than the normal range, which can be caused by various conditions including fluid loss.",
		ExplanationHigh: "level is higher than the normal range, often related to dehydration.",
	},
	{
		CanonicalName:   "potassium",
		Unit:            "mEq/L",
		RefLow:          3.5,
		RefHigh:         5.0,
		ExplanationLow:  "level is lower than the normal range, which can affect muscle and heart function.",
		ExplanationHigh: "level is higher than the normal range, which can also impact heart function.",
	},
	{
		CanonicalName:   "cholesterol",
		Unit:            "mg/dL",
		RefLow:          125,
		RefHigh:         200,
		ExplanationLow:  "level is lower than the normal range, which is rarely a concern.",
		ExplanationHigh: "level is higher than the normal range, which may increase the risk of heart disease.",
	},
	{
		CanonicalName:   "triglycerides",
		Unit:            "mg/dL",
		RefLow:          0,
		RefHigh:         150,
		ExplanationLow:  "level is within the normal range.",
		ExplanationHigh: "level is higher than the normal range, which is a risk factor for heart disease.",
	},
	{
		CanonicalName:   "blood sugar (fasting)",
		Unit:            "mg/dL",
		RefLow:          70,
		RefHigh:         100,
		ExplanationLow:  "level is lower than the normal range for a fasting test, which can cause dizziness or weakness.",
		ExplanationHigh: "level is higher than the normal range for a fasting test, which may indicate a risk of diabetes.",
	},
	{
		CanonicalName:   "blood sugar (postprandial)",
		Unit:            "mg/dL",
		RefLow:          70,
		RefHigh:         140,
		ExplanationLow:  "level is lower than the normal range after a meal, which can cause fatigue.",
		ExplanationHigh: "level is higher than the normal range after a meal, which may indicate impaired glucose tolerance.",
	},
}
