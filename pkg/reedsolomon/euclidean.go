package reedsolomon

// runEuclideanAlgorithm solves the key equation sigma(x)*S(x) = omega(x)
// mod x^twoS by running the extended Euclidean algorithm on a = x^twoS and
// b = S(x), stopping as soon as the remainder degree drops below R.
//
// Only the last two remainder/cofactor pairs are kept. The returned locator
// is normalized so that sigma(0) == 1, and omega is scaled by the same factor.
//
// R must be twoS/2 (integer division); it fixes the correction capacity.
func runEuclideanAlgorithm(a, b *Poly, R int) (sigma, omega *Poly, err error) {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	field := a.field
	rLast := a
	r := b
	tLast := field.zero
	t := field.one

	for r.Degree() >= R {
		rLastLast := rLast
		tLastLast := tLast
		rLast = r
		tLast = t

		if rLast.IsZero() {
			return nil, nil, uncorrectable("euclidean", "remainder r_{i-1} vanished before reaching degree %d", R)
		}

		// divide rLastLast by rLast, accumulating the quotient in q
		r = rLastLast
		q := field.zero
		dltInverse, err := field.Inverse(rLast.Coefficient(rLast.Degree()))
		if err != nil {
			return nil, nil, err
		}
		for r.Degree() >= rLast.Degree() && !r.IsZero() {
			degreeDiff := r.Degree() - rLast.Degree()
			scale := field.Multiply(r.Coefficient(r.Degree()), dltInverse)
			monomial, err := field.BuildMonomial(degreeDiff, scale)
			if err != nil {
				return nil, nil, err
			}
			q = q.add(monomial)
			r = r.add(rLast.multiplyByMonomial(degreeDiff, scale))
		}

		t = q.multiply(tLast).add(tLastLast)

		if r.Degree() >= rLast.Degree() && !r.IsZero() {
			return nil, nil, uncorrectable("euclidean", "division failed to reduce polynomial of degree %d", r.Degree())
		}
	}

	sigmaTildeAtZero := t.Coefficient(0)
	if sigmaTildeAtZero == 0 {
		return nil, nil, uncorrectable("euclidean", "sigma(0) is zero")
	}

	inverse, err := field.Inverse(sigmaTildeAtZero)
	if err != nil {
		return nil, nil, err
	}
	return t.MultiplyScalar(inverse), r.MultiplyScalar(inverse), nil
}
