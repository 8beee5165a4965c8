package analyze

import "strings"

// Severity is the overall attention level of one analysis.
type Severity string

const (
	SeverityUnknown Severity = "unknown"
	SeverityOK      Severity = "ok"
	SeverityWarn    Severity = "warn"
	SeverityDanger  Severity = "danger"
)

// severityRank orders severities: danger > warn > ok > unknown.
var severityRank = map[Severity]int{
	SeverityUnknown: 0,
	SeverityOK:      1,
	SeverityWarn:    2,
	SeverityDanger:  3,
}

// escalate returns the higher of two severities. Aggregation only ever
// escalates; once danger is reached nothing downgrades it within a pass.
func escalate(cur, next Severity) Severity {
	if severityRank[next] > severityRank[cur] {
		return next
	}
	return cur
}

var severityTitles = map[Severity]string{
	SeverityOK:      "Выглядит нормально",
	SeverityWarn:    "Нужна проверка",
	SeverityDanger:  "Повышенное внимание",
	SeverityUnknown: "—",
}

const defaultVerdictBody = "По эвристикам явных флагов не нашлось."

// Verdict is the aggregated qualitative signal for one analysis.
type Verdict struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Reasons  []string `json:"reasons,omitempty"`
	Body     string   `json:"body"`
}

// VerdictSignals are the inputs to verdict aggregation.
type VerdictSignals struct {
	Bands          Bands
	AdditiveCount  int
	AllergenCount  int
	SugarHintCount int
}

// ComputeVerdict combines all analysis signals into an overall verdict.
//
// Rules, evaluated in order, each contributing one reason when triggered:
//  1. any nutrient band high            -> danger
//  2. else any nutrient band mid        -> at least warn
//  3. any allergen hit                  -> at least warn
//  4. three or more distinct additives  -> at least warn
//  5. any hidden-sugar hint             -> at least warn
//
// With no rule triggered the severity is ok and the body carries a default
// "no flags found" message.
func ComputeVerdict(s VerdictSignals) Verdict {
	severity := SeverityOK
	var reasons []string

	bands := []Band{s.Bands.Sugar, s.Bands.Fat, s.Bands.Salt}
	anyHigh := false
	anyMid := false
	for _, b := range bands {
		switch b {
		case BandHigh:
			anyHigh = true
		case BandMid:
			anyMid = true
		}
	}

	if anyHigh {
		severity = escalate(severity, SeverityDanger)
		reasons = append(reasons, "Есть нутриенты в красной зоне.")
	} else if anyMid {
		severity = escalate(severity, SeverityWarn)
		reasons = append(reasons, "Есть нутриенты в жёлтой зоне.")
	}

	if s.AllergenCount > 0 {
		severity = escalate(severity, SeverityWarn)
		reasons = append(reasons, "Обнаружены потенциальные аллергены.")
	}

	if s.AdditiveCount >= 3 {
		severity = escalate(severity, SeverityWarn)
		reasons = append(reasons, "Много E-добавок (проверьте назначение).")
	}

	if s.SugarHintCount > 0 {
		severity = escalate(severity, SeverityWarn)
		reasons = append(reasons, "Есть признаки добавленных сахаров.")
	}

	body := defaultVerdictBody
	if len(reasons) > 0 {
		body = strings.Join(reasons, " ")
	}

	return Verdict{
		Severity: severity,
		Title:    severityTitles[severity],
		Reasons:  reasons,
		Body:     body,
	}
}
