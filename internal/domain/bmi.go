package domain

// ComputeBMI returns weight (kg) over height (cm, converted to metres)
// squared, rounded to one decimal. A non-positive height yields 0.
func ComputeBMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	h := heightCm / 100.0
	return Round1(weightKg / (h * h))
}

// BMICategory maps a BMI value to its WHO band.
func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
