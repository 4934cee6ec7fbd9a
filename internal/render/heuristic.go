package render

import (
	"strings"

	"github.com/phobologic/classdoc/internal/model"
)

// Heuristics produces a responsibility sentence for a type that documents
// none. The sentence depends only on the type's kind and name.
type Heuristics struct {
	// Entities are data-holding types described as storing information.
	Entities []string
	// Roles maps well-known type names to a fixed description.
	Roles map[string]string
}

// DefaultHeuristics returns the built-in entity list and role descriptions.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		Entities: []string{
			"HoGiaDinh", "NhanKhau", "PhieuThu", "ChiTietThu", "KhoanThu",
			"DotThu", "TaiKhoan", "Phong", "PhuongTien", "LichSuNhanKhau",
		},
		Roles: map[string]string{
			"WebServer":         "Handles HTTP requests and routing and converts JSON",
			"DatabaseConnector": "Manages the connection to the PostgreSQL database",
			"Helper":            "Provides utility methods such as password hashing and verification",
			"UserRole":          "Defines the user roles of the system",
			"AccessManager":     "Manages access rights based on user roles",
		},
	}
}

// Responsibility returns the fallback sentence for m.
func (h Heuristics) Responsibility(m *model.SourceModel) string {
	name := m.Name
	switch {
	case m.Kind == model.Interface:
		return "Defines the contract for operations related to " + name
	case strings.Contains(name, "Service"):
		domain := strings.ReplaceAll(strings.ReplaceAll(name, "Service", ""), "Impl", "")
		return "Implements business logic for managing " + domain
	case strings.Contains(name, "Model") || h.isEntity(name):
		return "Stores information about " + name
	}
	if desc, ok := h.Roles[name]; ok {
		return desc
	}
	return "Manages " + name
}

func (h Heuristics) isEntity(name string) bool {
	for _, e := range h.Entities {
		if e == name {
			return true
		}
	}
	return false
}

// responsibilities returns the documented responsibilities of m, or the
// heuristic sentence when there are none.
func (h Heuristics) responsibilities(m *model.SourceModel) []string {
	if len(m.Responsibilities) > 0 {
		return m.Responsibilities
	}
	return []string{h.Responsibility(m)}
}
