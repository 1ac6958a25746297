package cds

import (
	"math"
	"strconv"
	"strings"
)

// Vitals holds the raw vital-sign entries from a visit form. Values arrive as
// free-text strings; anything that does not parse as a number is skipped
// during evaluation rather than rejected.
type Vitals struct {
	BloodPressure    string `json:"blood_pressure"` // "systolic/diastolic"
	HeartRate        string `json:"heart_rate"`
	Temperature      string `json:"temperature"` // °C
	Weight           string `json:"weight"`      // kg
	Height           string `json:"height"`      // cm
	RespiratoryRate  string `json:"respiratory_rate"`
	OxygenSaturation string `json:"oxygen_saturation"` // %
}

// Alert strings surfaced to clinicians. The blood-pressure alerts do not say
// which of the two readings was out of range; either one triggers them.
const (
	AlertElevatedBP = "Elevated blood pressure detected"
	AlertLowBP      = "Low blood pressure detected"
	AlertTachy      = "Tachycardia detected (HR > 100)"
	AlertBrady      = "Bradycardia detected (HR < 60)"
	AlertFever      = "Fever detected (>38°C)"
	AlertLowTemp    = "Low temperature detected (<36°C)"
	AlertLowSpO2    = "Low oxygen saturation (<95%)"
	AlertHighRR     = "Elevated respiratory rate (>20)"
	AlertLowRR      = "Low respiratory rate (<12)"
)

// EvaluateVitals derives the full alert set for the given vitals. The result
// replaces any previous set; callers must not merge it incrementally.
func EvaluateVitals(v Vitals) []string {
	alerts := []string{}

	if sys, dia, ok := parseBloodPressure(v.BloodPressure); ok {
		if sys > 140 || dia > 90 {
			alerts = append(alerts, AlertElevatedBP)
		}
		if sys < 90 || dia < 60 {
			alerts = append(alerts, AlertLowBP)
		}
	}

	if hr, ok := parseVital(v.HeartRate); ok {
		if hr > 100 {
			alerts = append(alerts, AlertTachy)
		} else if hr < 60 {
			alerts = append(alerts, AlertBrady)
		}
	}

	if temp, ok := parseVital(v.Temperature); ok {
		if temp > 38.0 {
			alerts = append(alerts, AlertFever)
		} else if temp < 36.0 {
			alerts = append(alerts, AlertLowTemp)
		}
	}

	if spo2, ok := parseVital(v.OxygenSaturation); ok && spo2 < 95 {
		alerts = append(alerts, AlertLowSpO2)
	}

	if rr, ok := parseVital(v.RespiratoryRate); ok {
		if rr > 20 {
			alerts = append(alerts, AlertHighRR)
		} else if rr < 12 {
			alerts = append(alerts, AlertLowRR)
		}
	}

	return alerts
}

// ComputeBMI returns weight_kg/(height_cm/100)² rounded to one decimal, or
// nil when either value is absent, non-numeric, or non-positive.
func ComputeBMI(weight, height string) *float64 {
	w, wok := parseVital(weight)
	h, hok := parseVital(height)
	if !wok || !hok || w <= 0 || h <= 0 {
		return nil
	}

	meters := h / 100
	bmi := math.Round(w/(meters*meters)*10) / 10
	return &bmi
}

// parseBloodPressure splits a "systolic/diastolic" string. A malformed value
// yields ok=false and no blood-pressure alert.
func parseBloodPressure(bp string) (sys, dia float64, ok bool) {
	parts := strings.SplitN(bp, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	sys, sok := parseVital(parts[0])
	dia, dok := parseVital(parts[1])
	if !sok || !dok {
		return 0, 0, false
	}
	return sys, dia, true
}

func parseVital(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
