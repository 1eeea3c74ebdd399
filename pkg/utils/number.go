package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// Ratio devolve zero quando o denominador é zero
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
