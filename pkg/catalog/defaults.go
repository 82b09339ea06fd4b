package catalog

import "github.com/esamadhan/volunteer-api/pkg/models"

// Default returns the built-in catalog shipped with the site
func Default() *Catalog {
	c, err := New(defaultCategories)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultCategories = []models.TaskCategory{
	{
		ID:          "infrastructure",
		Name:        "Infrastructure",
		Icon:        "🏗️",
		Description: "Help maintain roads, lighting and public utilities in your neighbourhood.",
		Tasks: []models.Task{
			{
				ID:             "INF-001",
				Title:          "Street Light Repair",
				Description:    "Assist municipal electricians in replacing faulty street light fixtures.",
				Location:       "Main Road, Ranchi",
				Duration:       "4 hours",
				Difficulty:     models.DifficultyMedium,
				RequiredSkills: []string{"Electrical", "Physical Work"},
				ToolsProvided:  true,
				Compensation:   "₹500 + Certificate",
			},
			{
				ID:             "INF-002",
				Title:          "Pothole Survey",
				Description:    "Walk assigned wards and geotag potholes for the repair crew.",
				Location:       "Ward 12, Dhanbad",
				Duration:       "3 hours",
				Difficulty:     models.DifficultyEasy,
				RequiredSkills: []string{"Smartphone Usage"},
				ToolsProvided:  false,
				Compensation:   "₹300 + Certificate",
			},
			{
				ID:             "INF-003",
				Title:          "Drain Clearing Drive",
				Description:    "Clear blocked storm drains ahead of the monsoon season.",
				Location:       "Sakchi, Jamshedpur",
				Duration:       "6 hours",
				Difficulty:     models.DifficultyHigh,
				RequiredSkills: []string{"Physical Work"},
				ToolsProvided:  true,
				Compensation:   "₹800 + Certificate",
			},
		},
	},
	{
		ID:          "environment",
		Name:        "Environment",
		Icon:        "🌳",
		Description: "Plant trees, clean water bodies and promote waste segregation.",
		Tasks: []models.Task{
			{
				ID:             "ENV-001",
				Title:          "Tree Plantation Drive",
				Description:    "Plant and mulch saplings along the riverside greenbelt.",
				Location:       "Subarnarekha Riverside, Ranchi",
				Duration:       "5 hours",
				Difficulty:     models.DifficultyEasy,
				RequiredSkills: []string{"Gardening"},
				ToolsProvided:  true,
				Compensation:   "Certificate + Green Points",
			},
			{
				ID:             "ENV-002",
				Title:          "Lake Cleanup",
				Description:    "Remove plastic waste from the lake shore and sort recyclables.",
				Location:       "Kanke Dam, Ranchi",
				Duration:       "4 hours",
				Difficulty:     models.DifficultyMedium,
				RequiredSkills: []string{"Physical Work"},
				ToolsProvided:  true,
				Compensation:   "₹400 + Certificate",
			},
			{
				ID:             "ENV-003",
				Title:          "Waste Segregation Awareness",
				Description:    "Go door to door explaining wet and dry waste separation.",
				Location:       "Bistupur, Jamshedpur",
				Duration:       "3 hours",
				Difficulty:     models.DifficultyEasy,
				RequiredSkills: []string{"Communication", "Local Language"},
				ToolsProvided:  false,
				Compensation:   "Certificate",
			},
		},
	},
	{
		ID:          "community",
		Name:        "Community Service",
		Icon:        "🤝",
		Description: "Support residents with digital services and everyday needs.",
		Tasks: []models.Task{
			{
				ID:             "COM-001",
				Title:          "Digital Literacy Workshop",
				Description:    "Teach residents to report civic issues with the E-Samadhan app.",
				Location:       "Community Hall, Bokaro",
				Duration:       "2 hours",
				Difficulty:     models.DifficultyEasy,
				RequiredSkills: []string{"Teaching", "Smartphone Usage"},
				ToolsProvided:  true,
				Compensation:   "₹250 + Certificate",
			},
			{
				ID:             "COM-002",
				Title:          "Senior Citizen Assistance",
				Description:    "Help elderly residents file grievances and track their status.",
				Location:       "Harmu Colony, Ranchi",
				Duration:       "3 hours",
				Difficulty:     models.DifficultyEasy,
				RequiredSkills: []string{"Communication"},
				ToolsProvided:  false,
				Compensation:   "Certificate",
			},
		},
	},
	{
		ID:          "safety",
		Name:        "Public Safety",
		Icon:        "🚦",
		Description: "Keep streets safe during peak hours and public events.",
		Tasks: []models.Task{
			{
				ID:             "SAF-001",
				Title:          "Traffic Volunteer",
				Description:    "Support traffic police at busy junctions during school hours.",
				Location:       "Albert Ekka Chowk, Ranchi",
				Duration:       "2 hours",
				Difficulty:     models.DifficultyMedium,
				RequiredSkills: []string{"Communication"},
				ToolsProvided:  true,
				Compensation:   "₹300 + Certificate",
			},
			{
				ID:             "SAF-002",
				Title:          "Festival Crowd Management",
				Description:    "Guide visitors and report hazards at large public gatherings.",
				Location:       "Morabadi Ground, Ranchi",
				Duration:       "8 hours",
				Difficulty:     models.DifficultyHigh,
				RequiredSkills: []string{"Communication", "First Aid"},
				ToolsProvided:  true,
				Compensation:   "₹1000 + Certificate",
			},
		},
	},
}
