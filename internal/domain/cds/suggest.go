package cds

import "strings"

// MedicationSuggestion is a read-only reference entry offered when a
// diagnosis matches one of its keywords. Suggestions are advisory; they make
// no claim of being authoritative medical advice.
type MedicationSuggestion struct {
	Name      string   `json:"name"`
	Dosage    string   `json:"dosage"`
	Frequency string   `json:"frequency"`
	Duration  string   `json:"duration"`
	Route     string   `json:"route"`
	Category  string   `json:"category"`
	Keywords  []string `json:"keywords"`
}

// medicationTable is the static suggestion knowledge table. Matches are
// returned in declaration order.
var medicationTable = []MedicationSuggestion{
	{Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "7 days", Route: "oral", Category: "antibiotic",
		Keywords: []string{"respiratory", "infection", "pneumonia", "sinusitis", "otitis", "tonsillitis"}},
	{Name: "Azithromycin", Dosage: "500mg", Frequency: "1x daily", Duration: "3 days", Route: "oral", Category: "antibiotic",
		Keywords: []string{"respiratory", "bronchitis", "pneumonia"}},
	{Name: "Paracetamol", Dosage: "500mg", Frequency: "every 6 hours as needed", Duration: "5 days", Route: "oral", Category: "analgesic",
		Keywords: []string{"fever", "pain", "headache", "respiratory", "infection", "flu"}},
	{Name: "Ibuprofen", Dosage: "400mg", Frequency: "every 8 hours as needed", Duration: "5 days", Route: "oral", Category: "nsaid",
		Keywords: []string{"pain", "inflammation", "sprain", "arthritis", "migraine"}},
	{Name: "Loratadine", Dosage: "10mg", Frequency: "1x daily", Duration: "14 days", Route: "oral", Category: "antihistamine",
		Keywords: []string{"allergy", "rhinitis", "urticaria", "hay fever"}},
	{Name: "Amlodipine", Dosage: "5mg", Frequency: "1x daily", Duration: "ongoing", Route: "oral", Category: "antihypertensive",
		Keywords: []string{"hypertension", "blood pressure"}},
	{Name: "Metformin", Dosage: "500mg", Frequency: "2x daily with meals", Duration: "ongoing", Route: "oral", Category: "antidiabetic",
		Keywords: []string{"diabetes", "hyperglycemia"}},
	{Name: "Omeprazole", Dosage: "20mg", Frequency: "1x daily before breakfast", Duration: "14 days", Route: "oral", Category: "ppi",
		Keywords: []string{"gastritis", "reflux", "gerd", "dyspepsia", "ulcer"}},
	{Name: "Nitrofurantoin", Dosage: "100mg", Frequency: "2x daily", Duration: "5 days", Route: "oral", Category: "antibiotic",
		Keywords: []string{"urinary", "uti", "cystitis"}},
	{Name: "Salbutamol", Dosage: "100mcg", Frequency: "2 puffs as needed", Duration: "ongoing", Route: "inhaled", Category: "bronchodilator",
		Keywords: []string{"asthma", "wheezing", "bronchospasm"}},
}

// instructionRule pairs diagnosis keywords with a standing instruction note.
type instructionRule struct {
	keywords []string
	text     string
}

var instructionTable = []instructionRule{
	{keywords: []string{"respiratory", "infection", "flu", "bronchitis"},
		text: "Rest, increase fluid intake, and return if symptoms worsen or persist beyond 7 days."},
	{keywords: []string{"hypertension", "blood pressure"},
		text: "Reduce salt intake, monitor blood pressure daily, and schedule a follow-up in 2 weeks."},
	{keywords: []string{"diabetes", "hyperglycemia"},
		text: "Monitor blood glucose before meals and keep a log for the next visit."},
	{keywords: []string{"gastritis", "reflux", "gerd"},
		text: "Avoid late meals, caffeine, and alcohol; elevate the head of the bed."},
	{keywords: []string{"allergy", "rhinitis"},
		text: "Identify and avoid triggers where possible; antihistamines may cause drowsiness."},
}

// Suggest matches the free-text diagnosis against the medication table using
// case-insensitive keyword search. All matches are returned in table order.
// No match yields an empty list and an empty instruction, never an error.
func Suggest(diagnosis string) ([]MedicationSuggestion, string) {
	text := strings.ToLower(diagnosis)
	if strings.TrimSpace(text) == "" {
		return nil, ""
	}

	var matches []MedicationSuggestion
	for _, med := range medicationTable {
		for _, kw := range med.Keywords {
			if strings.Contains(text, kw) {
				matches = append(matches, med)
				break
			}
		}
	}

	instruction := ""
	for _, rule := range instructionTable {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				instruction = rule.text
				break
			}
		}
		if instruction != "" {
			break
		}
	}

	return matches, instruction
}
