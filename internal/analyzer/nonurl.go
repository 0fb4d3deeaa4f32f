package analyzer

import (
	"strings"

	"github.com/mehrguard/qrguard/internal/models"
	"github.com/mehrguard/qrguard/internal/verdict"
)

// premiumRatePrefixes flag premium-rate phone services. Numbers are matched
// after stripping separators.
var premiumRatePrefixes = []string{
	"190",    // AU premium-rate (1900/1902...)
	"+61190", // AU premium-rate, international form
	"1900",   // NANP premium-rate
	"+1900",
}

// analyzeNonURL scores payloads that carry no host: phone, SMS, Wi-Fi,
// email, geo, contact, and free text. Host-based heuristics never run here.
func (e *Engine) analyzeNonURL(u *models.NormalizedURL, sensitivity models.Sensitivity) *models.RiskAssessment {
	var reasons []models.Reason

	switch u.Kind {
	case models.PayloadPhone, models.PayloadSMS:
		if isPremiumRateNumber(phoneNumberOf(u)) {
			reasons = append(reasons, models.NewReason(models.ReasonPremiumRateNumber))
		}
	case models.PayloadWifi:
		if isOpenWifi(u.Opaque) {
			reasons = append(reasons, models.NewReason(models.ReasonOpenWifiNetwork))
		}
	}

	score := 0
	for _, r := range reasons {
		score += r.Weight
	}
	if score > 100 {
		score = 100
	}

	thresholds := e.aggregator.ThresholdsFor(sensitivity)
	return &models.RiskAssessment{
		Score:     score,
		Verdict:   verdict.VerdictFor(score, thresholds),
		Reasons:   reasons,
		SubScores: models.SubScores{Heuristic: score},
	}
}

// phoneNumberOf extracts the number part of a tel:/sms: payload. SMSTO
// payloads carry "number:body".
func phoneNumberOf(u *models.NormalizedURL) string {
	number := u.Opaque
	if idx := strings.Index(number, ":"); idx != -1 {
		number = number[:idx]
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, number)
}

func isPremiumRateNumber(number string) bool {
	if number == "" {
		return false
	}
	for _, prefix := range premiumRatePrefixes {
		if strings.HasPrefix(number, prefix) {
			return true
		}
	}
	return false
}

// isOpenWifi parses a WIFI: descriptor (T:WPA;S:name;P:pass;;) and reports
// whether the network has no encryption.
func isOpenWifi(descriptor string) bool {
	auth := ""
	for _, field := range strings.Split(descriptor, ";") {
		key, value, found := strings.Cut(field, ":")
		if found && strings.EqualFold(key, "T") {
			auth = strings.ToLower(strings.TrimSpace(value))
		}
	}
	return auth == "" || auth == "nopass"
}
