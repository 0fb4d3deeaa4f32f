package models

// FeatureCount is the fixed length of the feature schema shared by the
// extractor and the classifier. Changing it is a model-version change.
const FeatureCount = 15

// Feature indices. The order is part of the model contract and mirrors the
// training pipeline exactly.
const (
	FeatureURLLength = iota
	FeatureHostLength
	FeaturePathLength
	FeatureSubdomainCount
	FeatureHasHTTPS
	FeatureIPHost
	FeatureHostEntropy
	FeaturePathEntropy
	FeatureQueryParamCount
	FeatureHasAtSign
	FeatureDotCount
	FeatureDashCount
	FeatureHasPort
	FeatureShortenerHost
	FeatureSuspiciousTLD
)

// FeatureVector is an ordered fixed-length vector of normalized features in
// [0,1]. The array type makes a schema mismatch a compile-time error.
type FeatureVector [FeatureCount]float64
