package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdict_JSONRoundTrip(t *testing.T) {
	for _, v := range []Verdict{VerdictSafe, VerdictSuspicious, VerdictMalicious} {
		data, err := json.Marshal(v)
		require.NoError(t, err)

		var parsed Verdict
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.Equal(t, v, parsed)
	}

	var v Verdict
	assert.Error(t, json.Unmarshal([]byte(`"CATASTROPHIC"`), &v))
}

func TestParseSensitivity(t *testing.T) {
	tests := []struct {
		in      string
		want    Sensitivity
		wantErr bool
	}{
		{"LENIENT", SensitivityLenient, false},
		{"balanced", SensitivityBalanced, false},
		{" Aggressive ", SensitivityAggressive, false},
		{"", SensitivityBalanced, false},
		{"paranoid", SensitivityBalanced, true},
	}
	for _, tt := range tests {
		got, err := ParseSensitivity(tt.in)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewReason(t *testing.T) {
	r := NewReason(ReasonIPLiteralHost)
	assert.Equal(t, ReasonIPLiteralHost, r.Code)
	assert.Equal(t, 25, r.Weight)
	assert.NotEmpty(t, r.Message)

	assert.Panics(t, func() { NewReason(ReasonCode("NOT_A_CODE")) })
}

func TestReasonCatalogComplete(t *testing.T) {
	codes := []ReasonCode{
		ReasonIPLiteralHost, ReasonUserInfoInURL, ReasonEncodedCredentials,
		ReasonSuspiciousPort, ReasonExcessiveSubdomains, ReasonHyphenatedHost,
		ReasonDigitHeavyHost, ReasonLongHost, ReasonPunycodeHost,
		ReasonMixedScriptHost, ReasonSuspiciousTLD, ReasonUncommonTLD,
		ReasonURLShortener, ReasonExcessiveURLLength, ReasonLongPath,
		ReasonDeepPath, ReasonSuspiciousPathKeyword, ReasonBrandKeywordHost,
		ReasonAtSignConfusion, ReasonDoubleEncoding, ReasonEncodedControlChars,
		ReasonExcessiveQueryParams, ReasonEmbeddedURLInQuery, ReasonScriptScheme,
		ReasonInsecureTransport, ReasonHomographDomain, ReasonRedirectChainCycle,
		ReasonRedirectChainTooLong, ReasonRedirectIndirection,
		ReasonModelHighConfidence, ReasonPremiumRateNumber, ReasonOpenWifiNetwork,
	}
	for _, code := range codes {
		assert.Greaterf(t, ReasonWeight(code), 0, "code %s missing from catalog", code)
	}
}

func TestRiskAssessment_HasReason(t *testing.T) {
	ra := &RiskAssessment{Reasons: []Reason{NewReason(ReasonURLShortener)}}
	assert.True(t, ra.HasReason(ReasonURLShortener))
	assert.False(t, ra.HasReason(ReasonIPLiteralHost))
}
