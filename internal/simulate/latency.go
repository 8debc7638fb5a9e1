package simulate

import "time"

// LatencySampler draws response delays in milliseconds.
type LatencySampler interface {
	Sample() float64
}

// ExGaussian samples the sum of a normal and an exponential component,
// clamped to Floor.
type ExGaussian struct {
	Mean float64
	SD   float64
	// Rate is the rate of the exponential component, in 1/ms.
	Rate  float64
	Floor float64
	Rand  Rand
}

// DefaultLatency returns the sampler used for simulated typing delays.
func DefaultLatency(rng Rand) ExGaussian {
	return ExGaussian{Mean: 750, SD: 200, Rate: 0.01, Floor: 0.01, Rand: rng}
}

// Sample draws one delay.
func (dist ExGaussian) Sample() float64 {
	value := dist.Mean + dist.SD*dist.Rand.NormFloat64()
	if dist.Rate > 0 {
		value += dist.Rand.ExpFloat64() / dist.Rate
	}
	if value < dist.Floor {
		value = dist.Floor
	}
	return value
}

// millis converts a delay in milliseconds to a duration.
func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
