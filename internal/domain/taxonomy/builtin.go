package taxonomy

import "github.com/okian/careerlens/internal/domain/model"

// Default returns the built-in catalog of supported careers.
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

var builtin = []CareerProfile{
	{
		Name:           "AI Engineer",
		Interest:       "AI/ML",
		BaseSalary:     80000,
		RequiredSkills: []string{"python", "pytorch", "tensorflow", "machine learning", "deep learning", "git", "sql"},
		Market:         marketOf(95, 35, "Rising"),
		Questions: []string{
			"Explain the difference between supervised and unsupervised learning.",
			"How do you handle overfitting in a deep learning model?",
			"What is the purpose of an activation function?",
		},
		Roadmap: []string{"Master Python & PyTorch", "Learn Deep Learning", "Build Kaggle Notebooks"},
	},
	{
		Name:           "Data Scientist",
		Interest:       "Data Science",
		BaseSalary:     75000,
		RequiredSkills: []string{"python", "r", "statistics", "pandas", "sql", "scikit-learn", "data visualization"},
		Market:         marketOf(90, 25, "Stable"),
		Questions: []string{
			"What is a p-value and how do you interpret it?",
			"Describe the lifecycle of a data science project.",
			"How do you deal with missing data in a dataset?",
		},
		Roadmap: []string{"Learn SQL & R/Python", "Statistics & Probability", "Data Visualization Tools"},
	},
	{
		Name:           "Web Developer",
		Interest:       "Web Development",
		BaseSalary:     60000,
		RequiredSkills: []string{"html", "css", "javascript", "react", "node", "django", "flask", "api"},
		Market:         marketOf(85, 15, "High"),
		Questions: []string{
			"What is the difference between REST and GraphQL?",
			"Explain the concept of 'hoisting' in JavaScript.",
			"How do you optimize a website's performance?",
		},
		Roadmap: []string{"Master JavaScript & React", "Learn Backend (Node/Django)", "Project Deployment"},
	},
	{
		Name:           "Software Developer",
		Interest:       "Software Engineering",
		BaseSalary:     65000,
		RequiredSkills: []string{"java", "c++", "python", "algorithms", "data structures", "system design"},
		Market:         marketOf(88, 20, "Very High"),
		Questions: []string{
			"What are the SOLID principles of object-oriented design?",
			"Explain how a hash map works internally.",
			"What is the difference between a process and a thread?",
		},
		Roadmap: []string{"Data Structures & Algorithms", "System Design Base", "Master one compiled language"},
	},
	{
		Name:           "Cyber Security Analyst",
		Interest:       "Cyber Security",
		BaseSalary:     72000,
		RequiredSkills: []string{"network security", "linux", "ethical hacking", "firewalls", "cryptography"},
		Market:         marketOf(92, 40, "Critical"),
		Questions: []string{
			"What is a Man-in-the-Middle attack?",
			"Explain the CIA triad in information security.",
			"What are the steps of a penetration test?",
		},
		Roadmap: []string{"Network Protocols", "Ethical Hacking Certs", "Security Audits"},
	},
	{
		Name:           "Business Analyst",
		Interest:       "Business Analyst",
		BaseSalary:     55000,
		RequiredSkills: []string{"excel", "tableau", "power bi", "sql", "business logic", "presentation"},
		Market:         marketOf(75, 10, "Stable"),
		Questions: []string{
			"What is a SWOT analysis and when is it used?",
			"How do you gather requirements from stakeholders?",
			"Explain the difference between Agile and Waterfall methodologies.",
		},
		Roadmap: []string{"Excel Mastery", "Tableau/PowerBI", "Domain Knowledge"},
	},
	{
		Name:           "UI/UX Designer",
		Interest:       "UI/UX Design",
		BaseSalary:     58000,
		RequiredSkills: []string{"figma", "sketch", "adobe xd", "user research", "wireframing", "prototyping"},
		Market:         marketOf(80, 18, "Rising"),
		Questions: []string{
			"What is the difference between UI and UX?",
			"Describe your design process from concept to prototype.",
			"How do you handle negative feedback on a design?",
		},
		Roadmap: []string{"Figma/Adobe XD", "Design Systems", "User Research"},
	},
}

func marketOf(demand, growth int, trend string) model.Market {
	return model.Market{Demand: demand, Growth: growth, Trend: trend}
}
