// Package profile defines the closed set of hiring categories and the keyword
// profile each of them is matched with.
package profile

// Category identifies an open role.
type Category string

const (
	FullStackDeveloper   Category = "Full Stack Developer"
	MarketingSpecialist  Category = "Marketing Specialist"
	Accounting           Category = "Accounting"
	CybersecurityAnalyst Category = "Cybersecurity Analyst"
	DataScientist        Category = "Data Scientist"
)

// Profile lists the role-title keywords and the skill keywords of a category.
type Profile struct {
	RoleKeywords  []string `yaml:"role_keywords"`
	SkillKeywords []string `yaml:"skill_keywords"`
}

// categories is the fixed iteration order used everywhere a slate is built.
var categories = []Category{
	FullStackDeveloper,
	MarketingSpecialist,
	Accounting,
	CybersecurityAnalyst,
	DataScientist,
}

var profiles = map[Category]Profile{
	FullStackDeveloper: {
		RoleKeywords: []string{
			"full stack developer",
			"senior full stack",
			"frontend engineer",
			"backend engineer",
			"software engineer",
		},
		SkillKeywords: []string{
			"react",
			"node",
			"typescript",
			"python",
			"java",
			"sql",
			"postgresql",
			"mongodb",
			"docker",
			"kubernetes",
			"aws",
			"gcp",
			"azure",
			"rest apis",
			"graphql",
			"next js",
			"redux",
			"django",
			"flask",
		},
	},
	MarketingSpecialist: {
		RoleKeywords: []string{
			"marketing specialist",
			"marketing manager",
			"digital marketing",
			"growth",
			"brand",
			"content",
			"seo",
			"sem",
			"ppc",
			"social media",
		},
		SkillKeywords: []string{
			"seo",
			"sem",
			"google ads",
			"facebook ads",
			"content",
			"copywriting",
			"email",
			"crm",
			"analytics",
			"ga4",
			"hubspot",
			"marketo",
			"social",
		},
	},
	Accounting: {
		RoleKeywords: []string{
			"accountant",
			"accounting",
			"accounts payable",
			"accounts receivable",
			"financial analyst",
			"bookkeeper",
			"controller",
			"tax",
		},
		SkillKeywords: []string{
			"accounting",
			"excel",
			"gaap",
			"quickbooks",
			"sap",
			"oracle",
			"financial reporting",
			"reconciliation",
			"tax",
		},
	},
	CybersecurityAnalyst: {
		RoleKeywords: []string{
			"cybersecurity",
			"security engineer",
			"security analyst",
			"security operations",
			"soc",
			"information security",
			"appsec",
		},
		SkillKeywords: []string{
			"security",
			"network security",
			"siem",
			"threat",
			"vulnerability",
			"splunk",
			"ids",
			"ips",
			"owasp",
			"incident response",
		},
	},
	DataScientist: {
		RoleKeywords: []string{
			"data scientist",
			"ml engineer",
			"machine learning engineer",
			"research scientist",
			"ai engineer",
		},
		SkillKeywords: []string{
			"python",
			"pandas",
			"numpy",
			"scikit",
			"sklearn",
			"pytorch",
			"tensorflow",
			"sql",
			"nlp",
			"computer vision",
			"statistics",
			"r",
		},
	},
}

// Categories returns all categories in slate order. The slice is a copy.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Lookup returns a copy of the profile of c.
func Lookup(c Category) (Profile, bool) {
	p, ok := profiles[c]
	if !ok {
		return Profile{}, false
	}
	return Profile{
		RoleKeywords:  append([]string(nil), p.RoleKeywords...),
		SkillKeywords: append([]string(nil), p.SkillKeywords...),
	}, true
}

func (c Category) String() string {
	return string(c)
}
