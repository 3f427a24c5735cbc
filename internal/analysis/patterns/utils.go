package patterns

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minIndex(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	idx := 0
	for i, v := range values[1:] {
		if v < values[idx] {
			idx = i + 1
		}
	}
	return idx
}

func maxIndex(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	idx := 0
	for i, v := range values[1:] {
		if v > values[idx] {
			idx = i + 1
		}
	}
	return idx
}
