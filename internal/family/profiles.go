package family

import "github.com/jonathan/resume-matcher/internal/types"

// Profile is the data associated with a job family.
type Profile struct {
	Weights  types.Weights
	MinYears int
	// Skills are searched in vacancy text when the vacancy lists no skills.
	Skills []string
	// Certifications and Tools extend the shared lexicons.
	Certifications []string
	Tools          []string
}

var (
	plantWeights   = types.Weights{Skills: 0.45, Experience: 0.30, Education: 0.15, Certifications: 0.07, Tools: 0.03}
	hseWeights     = types.Weights{Skills: 0.40, Experience: 0.25, Education: 0.15, Certifications: 0.15, Tools: 0.05}
	labWeights     = types.Weights{Skills: 0.45, Experience: 0.25, Education: 0.20, Certifications: 0.05, Tools: 0.05}
	officeWeights  = types.Weights{Skills: 0.50, Experience: 0.25, Education: 0.20, Certifications: 0.02, Tools: 0.03}
	itWeights      = types.Weights{Skills: 0.55, Experience: 0.25, Education: 0.15, Certifications: 0.02, Tools: 0.03}
	generalWeights = types.Weights{Skills: 0.45, Experience: 0.30, Education: 0.20, Certifications: 0.03, Tools: 0.02}
)

// BaseSkills are searched for every family.
var BaseSkills = []string{"communication", "teamwork", "problem solving", "time management", "microsoft excel"}

// BaseCertifications and BaseTools are the shared lexicons.
var (
	BaseCertifications = []string{
		"nebosh", "osh", "iosh",
		"chargeman", "boilerman", "steam engineer",
		"first aid", "forklift",
		"iso 9001", "iso 14001", "iso 45001",
	}
	BaseTools = []string{
		"sap", "sap pm", "cmms",
		"excel", "power bi",
		"dcs", "plc", "scada",
		"autocad",
		"python", "sql",
		"git", "docker",
	}
)

var permitCertifications = []string{"ptw", "loto", "hazop"}

var profiles = map[Family]Profile{
	Maintenance: {
		Weights:  plantWeights,
		MinYears: 2,
		Skills: []string{
			"preventive maintenance", "corrective maintenance", "rotating equipment", "pumps", "motors", "valves", "piping",
			"pipelines", "gearboxes", "troubleshooting", "breakdown", "loto", "ptw", "pid", "cmms", "sap pm", "condition monitoring", "rca",
		},
		Certifications: permitCertifications,
	},
	Operations: {
		Weights:        plantWeights,
		MinYears:       2,
		Skills:         []string{"production", "operator", "shift", "dcs", "utilities", "startup", "shutdown", "process monitoring", "sop", "plant operation"},
		Certifications: permitCertifications,
	},
	ProcessEngineering: {
		Weights:  generalWeights,
		MinYears: 2,
		Skills:   []string{"process optimization", "mass balance", "heat exchanger", "distillation", "reactor", "pfd", "pid", "hazop", "rca"},
	},
	Instrumentation: {
		Weights:        plantWeights,
		MinYears:       2,
		Skills:         []string{"instrument calibration", "calibration", "analyzer", "control valve", "loop tuning", "pid", "ptw", "loto"},
		Certifications: permitCertifications,
	},
	Electrical: {
		Weights:        plantWeights,
		MinYears:       2,
		Skills:         []string{"electrical troubleshooting", "switchgear", "mcc", "motor control", "power distribution", "preventive maintenance", "loto", "ptw"},
		Certifications: permitCertifications,
	},
	Automation: {
		Weights:        plantWeights,
		MinYears:       2,
		Skills:         []string{"plc", "scada", "dcs", "control system", "automation", "loop tuning", "pid"},
		Certifications: permitCertifications,
	},
	HSE: {
		Weights:        hseWeights,
		MinYears:       2,
		Skills:         []string{"hse", "safety", "risk assessment", "incident investigation", "hazop", "ptw", "loto", "jsa", "permit to work", "process safety"},
		Certifications: permitCertifications,
	},
	QualityLab: {
		Weights:  labWeights,
		MinYears: 2,
		Skills:   []string{"qc", "qa", "laboratory", "sample preparation", "gc", "hplc", "iso 9001", "documentation", "data integrity"},
		Tools:    []string{"gc", "hplc", "chromatography", "lims"},
	},
	SupplyChain: {
		Weights:  officeWeights,
		MinYears: 2,
		Skills:   []string{"logistics", "warehouse", "inventory", "shipping", "planning", "demand planning", "customer service", "sap"},
	},
	Procurement: {
		Weights:  officeWeights,
		MinYears: 2,
		Skills:   []string{"procurement", "vendor management", "rfq", "quotation", "contract", "negotiation", "purchase order", "sap"},
	},
	Finance: {
		Weights:  officeWeights,
		MinYears: 2,
		Skills:   []string{"accounting", "finance", "budgeting", "forecasting", "invoice", "audit", "tax", "cost control", "excel"},
	},
	HR: {
		Weights:  officeWeights,
		MinYears: 0,
		Skills:   []string{"recruitment", "talent acquisition", "payroll", "onboarding", "employee relations", "hr policy", "communication"},
	},
	IT: {
		Weights:  itWeights,
		MinYears: 2,
		Skills:   []string{"software development", "api", "database", "sql", "python", "laravel", "vue", "docker", "git", "cloud"},
	},
	Admin: {
		Weights:  officeWeights,
		MinYears: 0,
		Skills:   []string{"documentation", "coordination", "office management", "scheduling", "reporting", "microsoft excel"},
	},
	General: {
		Weights:  generalWeights,
		MinYears: 1,
	},
}

// Lookup returns the data table entry for f, falling back to General for
// unknown tags.
func Lookup(f Family) Profile {
	return lookup(f)
}

func lookup(f Family) Profile {
	if p, ok := profiles[f]; ok {
		return p
	}
	return profiles[General]
}

// SkillLexicon returns the shared skills followed by the family's own.
func (f Family) SkillLexicon() []string {
	return concat(BaseSkills, lookup(f).Skills)
}

// CertificationLexicon returns the certifications searched for f.
func (f Family) CertificationLexicon() []string {
	return concat(BaseCertifications, lookup(f).Certifications)
}

// ToolLexicon returns the tools searched for f.
func (f Family) ToolLexicon() []string {
	return concat(BaseTools, lookup(f).Tools)
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
