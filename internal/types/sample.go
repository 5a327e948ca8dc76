package types

import "time"

// DateLayout is the long US date used for the cover letter date line.
const DateLayout = "January 2, 2006"

var samplePersonalInfo = PersonalInfo{
	Name:     "John D. Eveloper, BSc",
	Title:    "Senior Software Engineer",
	Email:    "john.d.eveloper@email.com",
	Phone:    "555-555-5555",
	Website:  "https://www.google.com/search?q=johndeveloper.com",
	LinkedIn: "linkedin.com/in/johndeveloper",
	GitHub:   "github.com/johndeveloper",
}

// SampleDocuments returns the bundled example documents the editor starts
// from. The cover letter date is formatted from today.
func SampleDocuments(today time.Time) Documents {
	return Documents{
		Resume:      SampleResume(),
		CoverLetter: SampleCoverLetter(today),
	}
}

// SampleResume returns the bundled example résumé.
func SampleResume() ResumeDocument {
	return ResumeDocument{
		PersonalInfo: samplePersonalInfo,
		ProfessionalSummary: ProfessionalSummary{
			Content: `Experience: 8+ years of professional experience as a Software Engineer in the fast-paced FinTech sector.

Primary Skillset: 8 years of experience in full-stack application development, engineering and architecting robust, scalable solutions for high-traffic platforms.

Secondary & Tertiary Skillsets: Proficient in cloud-native architecture on AWS and automating CI/CD pipelines with Jenkins and Docker.

Key Achievement: Spearheaded a company-wide shift to a Test-Driven Development (TDD) methodology, increasing code coverage by 45% and reducing critical production bugs by 30% in the first year.`,
		},
		TechnicalSkills: TechnicalSkills{
			Languages:      "Python, JavaScript, TypeScript, Java, SQL, Go",
			Frameworks:     "Django, Flask, React, Node.js, Spring Boot",
			Tools:          "AWS (EC2, S3, Lambda, RDS), Docker, Kubernetes, Jenkins, Git, Postman, Terraform",
			Methodologies:  "Agile, Scrum, Kanban, Test-Driven Development (TDD), CI/CD",
			Certifications: "AWS Certified Solutions Architect - Professional, Certified Information Systems Security Professional (CISSP)",
		},
		Experience: []Experience{
			{
				Company:      "FinSecure Corp.",
				Location:     "New York, NY",
				Position:     "Senior Software Engineer",
				Duration:     "06/2021 – Present",
				Technologies: "Python, Django, React, TypeScript, AWS, Docker, Kubernetes, PostgreSQL",
				Achievements: []string{
					"Architected and led the development of a new real-time fraud detection service using Python and Kinesis, processing over 10 million transactions daily with 99.9% uptime.",
					"Spearheaded the migration of three legacy monolithic applications to a microservices architecture on AWS, resulting in a 40% reduction in server costs and a 50% improvement in deployment frequency.",
					"Mentored a team of 4 junior developers, conducting regular code reviews and training sessions that contributed to a 100% team retention rate over two years.",
				},
			},
			{
				Company:      "Innovate Solutions LLC",
				Location:     "San Francisco, CA",
				Position:     "Software Engineer",
				Duration:     "05/2017 – 06/2021",
				Technologies: "Java, Spring Boot, Angular, JavaScript, Jenkins, MySQL",
				Achievements: []string{
					"Engineered and maintained 15 core features for a client-facing financial analytics platform serving over 50,000 enterprise users.",
					"Created and implemented a CI/CD pipeline using Jenkins and Docker, automating the build and deployment process and reducing manual deployment errors by 95%.",
				},
			},
		},
		Projects: []Project{
			{
				Name:         "Portfolio Tracker Pro",
				Duration:     "01/2023 – Present",
				Technologies: "Python, Flask, React, Chart.js, Finnhub API",
				Description: []string{
					"Developed a full-stack web application for tracking stock and cryptocurrency portfolios, featuring real-time data visualization and performance analytics.",
					"Engineered a secure user authentication system and integrated a third-party financial data API to serve live market data to over 500 active users.",
				},
				URL: "github.com/johndeveloper/portfoliotracker",
			},
		},
		Education: []Education{
			{
				Institution: "State University",
				Degree:      "Bachelor of Science in Computer Science, Magna Cum Laude",
				Duration:    "08/2013 – 05/2017",
			},
		},
	}
}

// SampleCoverLetter returns the bundled example cover letter dated today.
func SampleCoverLetter(today time.Time) CoverLetterDocument {
	return CoverLetterDocument{
		PersonalInfo: samplePersonalInfo,
		RecipientInfo: RecipientInfo{
			HiringManager: "Hiring Manager",
			Company:       "Tech Company Inc.",
			Position:      "Senior Software Engineer",
			Date:          today.Format(DateLayout),
		},
		Content: LetterContent{
			Opening: "I am writing to express my strong interest in the Senior Software Engineer position at Tech Company Inc. With over 8 years of experience in full-stack development and a proven track record of delivering scalable solutions, I am excited about the opportunity to contribute to your innovative team.",
			Body:    "In my current role at FinSecure Corp., I have successfully architected and led the development of a real-time fraud detection service that processes over 10 million transactions daily with 99.9% uptime. This experience has strengthened my expertise in Python, Django, React, and AWS.\n\nWhat particularly excites me about this opportunity is your company's commitment to innovation and technical excellence. I am eager to bring my experience in microservices architecture and team leadership to help drive your engineering initiatives forward.",
			Closing: "Thank you for considering my application. I would welcome the opportunity to discuss how my technical expertise can contribute to Tech Company Inc.'s continued success. I look forward to hearing from you.",
		},
	}
}
