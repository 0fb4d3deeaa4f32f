package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehrguard/qrguard/internal/models"
)

func TestPredict_Bounds(t *testing.T) {
	w := DefaultModelWeights()

	vectors := []models.FeatureVector{
		{},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{0.5, 0.2, 0.1, 0.6, 1, 0, 0.9, 0.4, 0.3, 0, 0.2, 0.7, 0, 1, 1},
	}
	for _, fv := range vectors {
		p := Predict(fv, w)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestPredict_BenignVectorScoresLow(t *testing.T) {
	w := DefaultModelWeights()

	var fv models.FeatureVector
	fv[models.FeatureHasHTTPS] = 1.0
	fv[models.FeatureURLLength] = 0.05
	fv[models.FeatureHostLength] = 0.11
	fv[models.FeatureHostEntropy] = 0.6

	p := Predict(fv, w)
	assert.Less(t, p, 0.3)
}

func TestPredict_OverrideStumpFloorsProbability(t *testing.T) {
	w := DefaultModelWeights()

	var fv models.FeatureVector
	fv[models.FeatureIPHost] = 1.0

	p := Predict(fv, w)
	assert.GreaterOrEqual(t, p, 0.90)
}

func TestPredict_RiskySignalsRaiseProbability(t *testing.T) {
	w := DefaultModelWeights()

	var benign models.FeatureVector
	benign[models.FeatureHasHTTPS] = 1.0

	var risky models.FeatureVector
	risky[models.FeatureShortenerHost] = 1.0
	risky[models.FeatureSuspiciousTLD] = 1.0
	risky[models.FeatureSubdomainCount] = 0.8
	risky[models.FeatureDashCount] = 0.5

	assert.Greater(t, Predict(risky, w), Predict(benign, w))
}

func TestPredict_BitIdentical(t *testing.T) {
	w := DefaultModelWeights()
	fv := models.FeatureVector{0.3, 0.7, 0.2, 0.4, 1, 0, 0.85, 0.33, 0.1, 0, 0.2, 0.4, 0, 1, 0}

	first := Predict(fv, w)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, Predict(fv, w))
	}
}

func TestModelWeights_Validate(t *testing.T) {
	t.Run("Default bundle is valid", func(t *testing.T) {
		require.NoError(t, DefaultModelWeights().Validate())
	})

	t.Run("Wrong weight count rejected", func(t *testing.T) {
		w := DefaultModelWeights()
		w.Logistic.Weights = w.Logistic.Weights[:10]
		assert.Error(t, w.Validate())
	})

	t.Run("Blend must sum to one", func(t *testing.T) {
		w := DefaultModelWeights()
		w.Blend.Logistic = 0.9
		assert.Error(t, w.Validate())
	})

	t.Run("Stump outside schema rejected", func(t *testing.T) {
		w := DefaultModelWeights()
		w.Stumps = append(w.Stumps, Stump{Feature: models.FeatureCount, Threshold: 0.5})
		assert.Error(t, w.Validate())
	})

	t.Run("Missing version rejected", func(t *testing.T) {
		w := DefaultModelWeights()
		w.Version = ""
		assert.Error(t, w.Validate())
	})
}
