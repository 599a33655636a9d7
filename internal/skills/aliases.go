package skills

// aliases maps cleaned variant spellings to their canonical token. Every value
// must itself clean back to a key that maps to the same value.
var aliases = map[string]string{
	// plant safety and maintenance
	"loto":                       "LOTO",
	"lockout tagout":             "LOTO",
	"lockout-tagout":             "LOTO",
	"lockout/tagout":             "LOTO",
	"lock out tag out":           "LOTO",
	"lock-out tag-out":           "LOTO",
	"lock out/tag out":           "LOTO",
	"ptw":                        "PTW",
	"permit to work":             "PTW",
	"permit-to-work":             "PTW",
	"p and id":                   "P&ID",
	"p and ids":                  "P&ID",
	"pid":                        "P&ID",
	"rca":                        "RCA",
	"root cause analysis":        "RCA",
	"sap":                        "SAP",
	"sap pm":                     "SAP PM",
	"sap-pm":                     "SAP PM",
	"sap plant maintenance":      "SAP PM",
	"cmms":                       "CMMS",
	"preventive maintenance":     "Preventive Maintenance",
	"preventative maintenance":   "Preventive Maintenance",
	"corrective maintenance":     "Corrective Maintenance",
	"rotating equipment":         "Rotating Equipment",
	"condition monitoring":       "Condition Monitoring",
	"instrument calibration":     "Instrument Calibration",
	"electrical troubleshooting": "Electrical Troubleshooting",
	"troubleshooting":            "Troubleshooting",
	"pump":                       "Pumps",
	"pumps":                      "Pumps",
	"motor":                      "Motors",
	"motors":                     "Motors",
	"valve":                      "Valves",
	"valves":                     "Valves",
	"piping":                     "Piping",
	"pipeline":                   "Pipelines",
	"pipelines":                  "Pipelines",
	"gearbox":                    "Gearboxes",
	"gearboxes":                  "Gearboxes",
	"r and d":                    "R&D",

	// office and reporting
	"powerbi":         "Power BI",
	"power bi":        "Power BI",
	"power-bi":        "Power BI",
	"ms excel":        "Microsoft Excel",
	"microsoft excel": "Microsoft Excel",
	"autocad":         "AutoCAD",
	"auto cad":        "AutoCAD",

	// software
	"golang":     "Go",
	"go lang":    "Go",
	"go":         "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react":      "React",
	"react.js":   "React",
	"reactjs":    "React",
	"vue":        "Vue",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node":       "Node.js",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgresql": "PostgreSQL",
	"postgres":   "PostgreSQL",
	"mysql":      "MySQL",
	"mongodb":    "MongoDB",
	"mongo":      "MongoDB",
	".net":       ".NET",
	"dotnet":     ".NET",
	"c#":         "C#",
	"c++":        "C++",
	"github":     "GitHub",
	"gitlab":     "GitLab",
	"ci/cd":      "CI/CD",
	"cicd":       "CI/CD",
}

// acronyms are words rendered in upper case when they appear in an otherwise
// title-cased token.
var acronyms = map[string]struct{}{
	"api": {}, "aws": {}, "bi": {}, "cad": {}, "crm": {}, "css": {}, "dcs": {},
	"erp": {}, "etl": {}, "gc": {}, "gcp": {}, "hazop": {}, "hnd": {}, "hplc": {},
	"hr": {}, "hse": {}, "html": {}, "hv": {}, "iosh": {}, "iso": {}, "it": {},
	"jsa": {}, "json": {}, "kpi": {}, "lims": {}, "lv": {}, "mcc": {}, "nebosh": {},
	"osh": {}, "pfd": {}, "php": {}, "plc": {}, "qa": {}, "qc": {}, "rest": {},
	"rfq": {}, "scada": {}, "sop": {}, "spm": {}, "sql": {}, "stpm": {}, "ui": {},
	"ux": {}, "xml": {},
}
