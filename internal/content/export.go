package content

import "mediastudio/internal/models"

// Snapshot is every collection in one value, as written by
// "mediastudio content export" for external tools such as a sitemap
// generator.
type Snapshot struct {
	Version   string            `json:"version"`
	Blog      BlogSnapshot      `json:"blog"`
	Portfolio PortfolioSnapshot `json:"portfolio"`
	Services  ServicesSnapshot  `json:"services"`
	About     AboutSnapshot     `json:"about"`
}

type BlogSnapshot struct {
	Categories []models.Category `json:"categories"`
	Posts      []models.BlogPost `json:"posts"`
}

type PortfolioSnapshot struct {
	Categories []models.Category `json:"categories"`
	Projects   []models.Project  `json:"projects"`
}

type ServicesSnapshot struct {
	Categories []models.Category `json:"categories"`
	Services   []models.Service  `json:"services"`
}

type AboutSnapshot struct {
	EquipmentCategories []models.Category   `json:"equipment_categories"`
	Equipment           []models.Equipment  `json:"equipment"`
	TeamCategories      []models.Category   `json:"team_categories"`
	Team                []models.TeamMember `json:"team"`
}

// Snapshot copies the store's collections.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Version:   s.version,
		Blog:      BlogSnapshot{Categories: s.BlogCategories(), Posts: s.Posts()},
		Portfolio: PortfolioSnapshot{Categories: s.PortfolioCategories(), Projects: s.Projects()},
		Services:  ServicesSnapshot{Categories: s.ServiceCategories(), Services: s.Services()},
		About: AboutSnapshot{
			EquipmentCategories: s.EquipmentCategories(),
			Equipment:           s.Equipment(),
			TeamCategories:      s.TeamCategories(),
			Team:                s.Team(),
		},
	}
}
