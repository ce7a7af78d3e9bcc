package usecase

// Derived-ratio arithmetic over optional numbers. Nil is the explicit
// "unknown" marker: any formula with an unknown operand yields unknown,
// never zero or a guessed default.

func ptr(v float64) *float64 { return &v }

// sub returns a-b, unknown if either operand is unknown.
func sub(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	return ptr(*a - *b)
}

// div returns num/den, unknown if either operand is unknown or den is zero.
func div(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	return ptr(*num / *den)
}

// divPos returns num/den only when den is a known positive number. A
// non-positive denominator yields unknown rather than a negative or
// infinite multiple.
func divPos(num, den *float64) *float64 {
	if num == nil || den == nil || *den <= 0 {
		return nil
	}
	return ptr(*num / *den)
}

// firstKnown returns the first non-nil value, or nil.
func firstKnown(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
