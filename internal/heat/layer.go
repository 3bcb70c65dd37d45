package heat

import "math"

// Layer is one time level of a field.
type Layer []float64

func (l Layer) Clone() Layer {
	c := make(Layer, len(l))
	copy(c, l)
	return c
}

func (l Layer) IsValid() bool {
	for _, v := range l {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (l Layer) Max() float64 {
	m := math.Inf(-1)
	for _, v := range l {
		m = math.Max(m, v)
	}
	return m
}

func (l Layer) MaxAbs() float64 {
	m := 0.0
	for _, v := range l {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

func (l Layer) Norm() float64 {
	sum := 0.0
	for _, v := range l {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (l Layer) Sub(other Layer) Layer {
	result := make(Layer, len(l))
	for i := range l {
		if i < len(other) {
			result[i] = l[i] - other[i]
		} else {
			result[i] = l[i]
		}
	}
	return result
}
