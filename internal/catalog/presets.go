package catalog

// PredefinedPositions is the default position catalog per department type,
// used when bootstrapping a department with standard roles.
var PredefinedPositions = map[DeptType][]Position{
	DeptManagement: {
		{
			Name:           "Senior PM",
			Level:          LevelSenior,
			Description:    "Senior project manager",
			RequiredSkills: []string{"project_management", "leadership", "communication"},
			MaxAgents:      3,
		},
		{
			Name:           "PM Lead",
			Level:          LevelLead,
			Description:    "Head of project management",
			RequiredSkills: []string{"project_management", "leadership", "strategy"},
			MaxAgents:      1,
		},
	},
	DeptTechnology: {
		{
			Name:           "Senior Developer",
			Level:          LevelSenior,
			Description:    "Senior software engineer",
			RequiredSkills: []string{"programming", "system_design", "mentoring"},
			MaxAgents:      5,
		},
		{
			Name:           "Junior Developer",
			Level:          LevelJunior,
			Description:    "Junior software engineer",
			RequiredSkills: []string{"programming", "testing"},
			MaxAgents:      5,
		},
		{
			Name:           "Tech Lead",
			Level:          LevelLead,
			Description:    "Head of engineering",
			RequiredSkills: []string{"programming", "system_design", "leadership"},
			MaxAgents:      1,
		},
	},
	DeptData: {
		{
			Name:           "Senior Analyst",
			Level:          LevelSenior,
			Description:    "Senior data analyst",
			RequiredSkills: []string{"data_analysis", "sql", "statistics", "visualization"},
			MaxAgents:      3,
		},
		{
			Name:           "Junior Analyst",
			Level:          LevelJunior,
			Description:    "Junior data analyst",
			RequiredSkills: []string{"data_analysis", "sql"},
			MaxAgents:      3,
		},
		{
			Name:           "Data Lead",
			Level:          LevelLead,
			Description:    "Head of data",
			RequiredSkills: []string{"data_analysis", "leadership", "strategy"},
			MaxAgents:      1,
		},
	},
}

// PredefinedPosition looks up one preset by department type and name.
func PredefinedPosition(dtype DeptType, name string) (Position, bool) {
	for _, p := range PredefinedPositions[dtype] {
		if p.Name == name {
			return p.clone(), true
		}
	}
	return Position{}, false
}
