// Package family classifies vacancies into a closed set of job families and
// holds the per-family data (keywords, default weights, lexicons) that drives
// scoring.
package family

import (
	"github.com/jonathan/resume-matcher/internal/textnorm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Family is a coarse occupational category.
type Family string

// Known job families. General is the fallback when no rule matches.
const (
	Maintenance        Family = "maintenance"
	Operations         Family = "operations"
	ProcessEngineering Family = "process_engineering"
	Instrumentation    Family = "instrumentation"
	Electrical         Family = "electrical"
	Automation         Family = "automation"
	HSE                Family = "hse"
	QualityLab         Family = "quality_lab"
	SupplyChain        Family = "supply_chain"
	Procurement        Family = "procurement"
	Finance            Family = "finance"
	HR                 Family = "hr"
	IT                 Family = "it"
	Admin              Family = "admin"
	General            Family = "general"
)

// Rule associates a family with the keywords that select it.
type Rule struct {
	Family   Family
	Keywords []string
}

// rules is evaluated top to bottom; the first family with any keyword present wins.
var rules = []Rule{
	{Maintenance, []string{"maintenance", "rotating equipment", "pump", "valve", "motor", "gearbox", "breakdown", "cmms", "sap pm"}},
	{Operations, []string{"production", "operator", "shift", "panel", "dcs", "utilities", "plant operation", "process technician"}},
	{ProcessEngineering, []string{"process engineer", "process engineering", "mass balance", "heat exchanger", "distillation", "process optimization"}},
	{Instrumentation, []string{"instrument", "instrumentation", "calibration", "analyzer", "control valve", "loop tuning"}},
	{Electrical, []string{"electrical", "switchgear", "motor control", "mcc", "hv", "lv", "power distribution"}},
	{Automation, []string{"plc", "scada", "dcs", "automation", "control system", "siemens", "allen bradley"}},
	{HSE, []string{"hse", "safety", "osh", "hazop", "risk assessment", "incident", "permit to work", "loto", "process safety"}},
	{QualityLab, []string{"qc", "qa", "laboratory", "lab analyst", "chromatography", "gc", "hplc", "iso 9001"}},
	{SupplyChain, []string{"logistics", "warehouse", "inventory", "shipping", "transport", "supply chain", "planner"}},
	{Procurement, []string{"procurement", "buyer", "rfq", "quotation", "vendor", "contract", "purchase order"}},
	{Finance, []string{"finance", "account", "accounting", "audit", "tax", "invoice", "ledger", "budget", "controlling"}},
	{HR, []string{"human resource", "hr", "recruitment", "talent acquisition", "payroll", "employee relations"}},
	{IT, []string{"it", "developer", "software", "network", "database", "cybersecurity", "laravel", "vue", "api", "cloud"}},
	{Admin, []string{"admin", "administrator", "secretary", "office management", "documentation", "coordination"}},
}

// Rules returns a copy of the ordered classification table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// All returns every family in classification order, General last.
func All() []Family {
	out := make([]Family, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.Family)
	}
	return append(out, General)
}

// Parse converts s into a Family, reporting whether it is a known tag.
func Parse(s string) (Family, bool) {
	f := Family(textnorm.Fold(s))
	if _, ok := profiles[f]; ok {
		return f, true
	}
	return General, false
}

// Classify returns the first family whose keywords appear in text, or General.
// Keywords of four or more letters may open a longer word ("account" matches
// "accountant"); shorter keywords match whole words only.
func Classify(text string) Family {
	folded := textnorm.Fold(text)
	if folded == "" {
		return General
	}
	for _, r := range rules {
		if textnorm.ContainsAnyPrefix(folded, r.Keywords) {
			return r.Family
		}
	}
	return General
}

// String implements fmt.Stringer.
func (f Family) String() string {
	return string(f)
}

// DefaultWeights returns the family's default dimension weights.
func (f Family) DefaultWeights() types.Weights {
	return lookup(f).Weights
}

// DefaultMinYears returns the required experience assumed when a vacancy
// states none.
func (f Family) DefaultMinYears() int {
	return lookup(f).MinYears
}
