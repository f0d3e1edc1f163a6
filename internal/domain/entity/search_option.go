// Package entity contains the core business objects of the project.
package entity

// SearchOption selects which item attribute a search filters on.
type SearchOption string

const (
	// SearchByCategory filters items on exact category match.
	SearchByCategory SearchOption = "category"
	// SearchByDate filters items on exact listing date match (DD/MM/YYYY).
	SearchByDate SearchOption = "date"
	// SearchByCountry filters items on exact location country match.
	SearchByCountry SearchOption = "locationCountry"
	// SearchByCity filters items on exact location city match.
	SearchByCity SearchOption = "locationCity"
)

// String returns the string representation of the SearchOption.
func (o SearchOption) String() string {
	return string(o)
}

// IsValid checks if the SearchOption is a valid value.
func (o SearchOption) IsValid() bool {
	switch o {
	case SearchByCategory, SearchByDate, SearchByCountry, SearchByCity:
		return true
	default:
		return false
	}
}

// ValidSearchOptions lists every accepted search option, in the order they
// are reported to clients.
func ValidSearchOptions() []SearchOption {
	return []SearchOption{SearchByCategory, SearchByDate, SearchByCountry, SearchByCity}
}
