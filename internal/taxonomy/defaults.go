package taxonomy

import "github.com/jonathan/cert-roadmap/internal/types"

// defaultRules is the built-in taxonomy in priority order.
var defaultRules = []types.DomainRule{
	{
		Domain: "it",
		TitleKeywords: []string{
			"devops", "engineer", "developer", "it", "security", "cloud", "sysadmin", "linux", "python", "software",
			"network", "database", "data engineer", "administrator", "support",
		},
		SkillKeywords: []string{
			"python", "aws", "cloud", "devops", "linux", "sql", "security", "network", "infrastructure",
			"system administration", "database", "automation", "programming", "software", "azure", "gcp",
			"terraform", "ansible", "kubernetes", "docker", "penetration", "forensic", "cyber", "mlops",
		},
		CertNamePatterns: []string{
			"aws", "azure", "gcp", "cloud", "devops", "security", "cissp", "oscp", "red hat", "python", "linux",
			"network", "sql", "database", "support", "comptia", "scrum", "agile", "machine learning",
			"data engineer", "data analytics", "data visualization", "tableau", "power bi", "oracle", "sas",
			"statistical", "predictive", "cbip", "ceh", "ccna", "gsec", "ccsp", "terraform", "ansible",
			"metasploit", "wireshark", "nmap", "sqlmap", "volatility",
		},
	},
	{
		Domain: "data",
		TitleKeywords: []string{
			"data analyst", "data scientist", "analytics", "bi", "business intelligence", "statistician", "data engineer",
		},
		SkillKeywords: []string{
			"data analysis", "data visualization", "tableau", "power bi", "sql", "statistics", "analytics",
			"predictive", "machine learning", "deep learning", "sas", "etl", "reporting", "data science",
			"data cleaning", "data interpretation", "data warehousing",
		},
		CertNamePatterns: []string{
			"data analytics", "data visualization", "tableau", "power bi", "cbip", "predictive", "statistical",
			"sas", "machine learning", "deep learning", "data engineer",
		},
	},
	{
		Domain: "sales",
		TitleKeywords: []string{
			"sales", "crm", "account manager", "business development", "marketing", "customer service", "brand",
			"lead generation", "relationship manager",
		},
		SkillKeywords: []string{
			"sales", "crm", "lead generation", "customer service", "negotiation", "presentation", "branding",
			"brand management", "marketing", "communication", "business development", "account management",
			"relationship management", "pipeline", "prospecting", "closing", "customer relationship",
		},
		CertNamePatterns: []string{
			"sales", "crm", "brand", "communication", "presentation", "business", "marketing", "brand management",
			"customer", "relationship", "effective communication", "critical thinking", "problem-solving", "excel",
			"office", "pmp", "project management",
		},
	},
	{
		Domain: "healthcare",
		TitleKeywords: []string{
			"nurse", "medical", "health", "patient", "clinical", "pharmacy", "care", "bls", "acls", "emr", "medication",
		},
		SkillKeywords: []string{
			"nursing", "patient care", "healthcare", "clinical", "bls", "acls", "emr", "medication administration",
			"patient safety", "pharmacology", "medical records", "health information", "life support",
			"emergency care", "cardiac care",
		},
		CertNamePatterns: []string{
			"nurse", "medical", "health", "bls", "acls", "emr", "medication", "patient", "clinical", "pharmacy",
			"life support", "emergency",
		},
	},
	{
		Domain: "design",
		TitleKeywords: []string{
			"designer", "ux", "ui", "visual", "creative", "branding", "art", "material design", "figma", "adobe",
			"canva", "interaction design",
		},
		SkillKeywords: []string{
			"design", "ux", "ui", "visual design", "graphic design", "branding", "adobe", "figma", "canva",
			"material design", "user experience", "user interface", "prototyping", "wireframing", "design systems",
			"art direction", "creative direction",
		},
		CertNamePatterns: []string{
			"design", "ux", "ui", "adobe", "figma", "canva", "branding", "visual", "material design", "art direction",
			"interaction design", "prototyping", "wireframing",
		},
	},
	{
		Domain: "project",
		TitleKeywords: []string{
			"project manager", "scrum", "agile", "pmp", "product owner", "project coordinator",
		},
		SkillKeywords: []string{
			"project management", "scrum", "agile", "sprint planning", "stakeholder management", "team leadership",
			"project planning", "project execution", "product owner",
		},
		CertNamePatterns: []string{
			"pmp", "project management", "scrum", "agile", "csm", "psm", "stakeholder", "team leadership",
		},
	},
}
