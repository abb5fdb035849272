package resume

// Sample returns the default sample document shown by the template gallery: one experience,
// one education entry, three skills, two projects, one certification and one achievement.
func Sample() *Document {
	return &Document{
		Personal: Personal{
			Name:     "Jane Roe",
			Phone:    "+1 555 0100",
			Email:    "jane.roe@example.com",
			LinkedIn: "janeroe",
		},
		Objective: "Backend engineer looking to build reliable learning platforms for schools and universities.",
		Experience: []Experience{
			{Title: "Software Engineer", Company: "Acme Learning", Duration: "2021 - Present"},
		},
		Education: []Education{
			{Degree: "B.Sc. Computer Science", Institution: "State University", Year: "2021"},
		},
		Skills: []Skill{
			{Name: "Go", Level: "Advanced"},
			{Name: "PostgreSQL", Level: "Intermediate"},
			{Name: "Kubernetes"},
		},
		Projects: []Project{
			{Name: "Quiz Engine", Description: "Adaptive quiz service serving 40k students a day."},
			{Name: "Gradebook Sync", Description: "Nightly sync of grades between LMS and SIS."},
		},
		Certifications: []Certification{
			{Name: "Certified Kubernetes Application Developer", Issuer: "CNCF", Year: "2023"},
		},
		Achievements: []Achievement{
			{Title: "Hackathon winner", Description: "First place, campus hackathon 2020."},
		},
	}
}
