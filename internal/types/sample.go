package types

// SampleResume returns the document shown to new users and restored on reset.
func SampleResume() Resume {
	return Resume{
		FullName:    "Jordan Avery",
		Location:    "Sunnyvale, CA",
		PhoneNumber: "(555) 246-6142",
		Email:       "jordan.avery@example.com",
		Summary: "Backend Software Engineer with 3+ years of experience designing and scaling distributed systems, " +
			"high-throughput APIs, and data platforms. Focused on performance, fault tolerance, and data-intensive pipelines.",
		Education: []Education{
			{
				University: "San Jose State University",
				Location:   "San Jose, CA",
				Degree:     "Master of Science, Software Engineering",
				Date:       "Jan 2022 -- May 2024",
				Courses:    Bullets{},
			},
		},
		Experience: []Experience{
			{
				Title:       "Software Engineer",
				Company:     "Acme Technology Group, Inc",
				Location:    "Phoenix, AZ",
				Date:        "Jul 2025 -- Present",
				Description: Bullets{"Worked on distributed backend services to manage subscription workflows."},
			},
		},
		Projects: []Project{},
		Skills: []Skill{
			{
				Name:  "Programming Languages",
				Value: "Go, Java, Python, C/C++, TypeScript, Bash, HTML/CSS",
			},
		},
		Certificates: []Certificate{},
	}
}
