package models

// Equipment is a piece of gear listed on the about page.
type Equipment struct {
	Entry       `yaml:",inline"`
	Name        string   `json:"name" yaml:"name"`
	Specs       []string `json:"specs" yaml:"specs"`
	Image       string   `json:"image" yaml:"image"`
	Description string   `json:"description" yaml:"description"`
}

// Socials links a team member's public profiles. Empty links are omitted.
type Socials struct {
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty"`
	Vimeo     string `json:"vimeo,omitempty" yaml:"vimeo,omitempty"`
}

// TeamMember is a person on the about page. Category is the department.
type TeamMember struct {
	Entry   `yaml:",inline"`
	Name    string  `json:"name" yaml:"name"`
	Role    string  `json:"role" yaml:"role"`
	Bio     string  `json:"bio" yaml:"bio"`
	Image   string  `json:"image" yaml:"image"`
	Socials Socials `json:"socials" yaml:"socials"`
}
