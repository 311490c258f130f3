package solver

import "math"

// ROIMetric is a projected gain paired with what it costs
type ROIMetric struct {
	Gain float64
	Cost float64
}

// Calculate returns gain per unit of cost. A free purchase with a positive
// gain ranks above everything; a free purchase with no gain is worth 0.
func (m ROIMetric) Calculate() float64 {
	if m.Cost <= 0 {
		if m.Gain > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return m.Gain / m.Cost
}

// PrestigeMultiplier is the production bonus granted by prestige levels.
// Each level adds 1%; negative levels are treated as zero.
func PrestigeMultiplier(level int) float64 {
	if level < 0 {
		level = 0
	}
	return 1 + float64(level)*0.01
}
