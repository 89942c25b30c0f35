package utils

func Map[A any, B any](input []A, mapper func(A) B) []B {
	output := make([]B, len(input))
	for i, item := range input {
		output[i] = mapper(item)
	}
	return output
}

func Contains[A comparable](input []A, item A) bool {
	for _, i := range input {
		if i == item {
			return true
		}
	}
	return false
}

func ContainsAny[A comparable](input []A, items []A) bool {
	for _, item := range items {
		if Contains(input, item) {
			return true
		}
	}
	return false
}

func Closer(c interface{ Close() error }) func() {
	return func() {
		_ = c.Close()
	}
}
