package reedsolomon

// findErrorLocations runs a Chien search over every nonzero field element
// and returns the error locators X_k, i.e. the inverses of the roots of
// errorLocator. The number of distinct roots must equal the locator degree.
func findErrorLocations(errorLocator *Poly) ([]int, error) {
	field := errorLocator.field
	numErrors := errorLocator.Degree()
	if numErrors == 0 {
		return nil, uncorrectable("chien", "error locator has no roots")
	}

	result := make([]int, 0, numErrors)
	// a degree k polynomial has at most k roots, so stop once all are found
	for i := 1; i < field.size && len(result) < numErrors; i++ {
		if errorLocator.EvaluateAt(i) != 0 {
			continue
		}
		inverse, err := field.Inverse(i)
		if err != nil {
			return nil, err
		}
		result = append(result, inverse)
	}
	if len(result) != numErrors {
		return nil, uncorrectable("chien", "found %d roots for a locator of degree %d", len(result), numErrors)
	}
	return result, nil
}

// findErrorMagnitudes applies Forney's algorithm:
//
//	e_k = X_k^(1-b) * omega(X_k^-1) / sigma'(X_k^-1)
//
// where b is the field generator base.
func findErrorMagnitudes(errorLocator, errorEvaluator *Poly, errorLocations []int) ([]int, error) {
	field := errorLocator.field
	derivative := errorLocator.Derivative()

	result := make([]int, len(errorLocations))
	for i, location := range errorLocations {
		xiInverse, err := field.Inverse(location)
		if err != nil {
			return nil, err
		}
		denominator := derivative.EvaluateAt(xiInverse)
		if denominator == 0 {
			return nil, uncorrectable("forney", "sigma'(X^-1) is zero for locator %d", location)
		}
		magnitude, err := field.Divide(errorEvaluator.EvaluateAt(xiInverse), denominator)
		if err != nil {
			return nil, err
		}
		logX, err := field.Log(location)
		if err != nil {
			return nil, err
		}
		result[i] = field.Multiply(magnitude, field.Exp(logX*(1-field.generatorBase)))
	}
	return result, nil
}
