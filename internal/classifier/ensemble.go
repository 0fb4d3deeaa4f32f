package classifier

import (
	"math"

	"github.com/mehrguard/qrguard/internal/models"
)

// Predict combines the three sub-models into a phishing probability in [0,1].
// Evaluation order is fixed, so identical inputs produce bit-identical
// output regardless of concurrent execution.
func Predict(fv models.FeatureVector, w *ModelWeights) float64 {
	pLogistic := w.Logistic.predict(fv)
	pStumps := predictStumps(fv, w.Stumps)

	overrideFloor, overrideFired := evaluateOverrides(fv, w.Overrides)
	pOverride := 0.5 // neutral when no override fires
	if overrideFired {
		pOverride = overrideFloor
	}

	p := w.Blend.Logistic*pLogistic + w.Blend.Stumps*pStumps + w.Blend.Overrides*pOverride

	// Override stumps are near-certain indicators: they floor the blended
	// probability rather than merely contributing to the average.
	if overrideFired && overrideFloor > p {
		p = overrideFloor
	}

	return clamp01(p)
}

// predict evaluates the logistic sub-model.
func (m LogisticModel) predict(fv models.FeatureVector) float64 {
	z := m.Bias
	for i, weight := range m.Weights {
		z += weight * fv[i]
	}
	return sigmoid(z)
}

// predictStumps sums the weak learners' leaf outputs and squashes the margin
// into a probability.
func predictStumps(fv models.FeatureVector, stumps []Stump) float64 {
	if len(stumps) == 0 {
		return 0.5
	}
	margin := 0.0
	for _, s := range stumps {
		if fv[s.Feature] >= s.Threshold {
			margin += s.Above
		} else {
			margin += s.Below
		}
	}
	return sigmoid(margin)
}

// evaluateOverrides returns the highest probability among fired override
// stumps. Iteration order is the declared bundle order.
func evaluateOverrides(fv models.FeatureVector, overrides []OverrideStump) (float64, bool) {
	best := 0.0
	fired := false
	for _, o := range overrides {
		if fv[o.Feature] >= o.Threshold {
			fired = true
			if o.Probability > best {
				best = o.Probability
			}
		}
	}
	return best, fired
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
