package domain

import "strings"

// Known campus endpoints. Anything else is a special route.
const (
	LocationUniworld1 = "Uniworld-1"
	LocationUniworld2 = "Uniworld-2"
	LocationMacro     = "Macro"

	// LocationSpecial is the stored enum value for a non-standard endpoint.
	LocationSpecial = "Special"
)

// StandardLocations lists the fixed endpoints in display order.
var StandardLocations = []string{LocationUniworld1, LocationUniworld2, LocationMacro}

// viewLocations are the accepted board filters.
var viewLocations = []string{LocationUniworld1, LocationUniworld2, LocationMacro, LocationSpecial}

// DefaultViewLocation is the board view shown when no location is selected.
const DefaultViewLocation = LocationUniworld1

// Location is either one of the standard endpoints or a special route with
// a free-text name. The zero value is not a valid location.
type Location struct {
	name    string
	special bool
}

// Standard returns the standard location with the given name.
// The caller is responsible for name being one of StandardLocations.
func Standard(name string) Location {
	return Location{name: name}
}

// Special returns a special-route location carrying a free-text name.
func Special(name string) Location {
	return Location{name: name, special: true}
}

// ResolveLocation maps a raw endpoint name onto the known set, falling back
// to a special route for anything unrecognised.
func ResolveLocation(raw string) Location {
	if IsStandardLocation(raw) {
		return Standard(raw)
	}
	return Special(raw)
}

// IsStandardLocation reports whether name is one of the fixed endpoints.
// The comparison is exact.
func IsStandardLocation(name string) bool {
	for _, l := range StandardLocations {
		if l == name {
			return true
		}
	}
	return false
}

// IsSpecial reports whether l is a special route.
func (l Location) IsSpecial() bool { return l.special }

// IsZero reports whether l was never set.
func (l Location) IsZero() bool { return l.name == "" && !l.special }

// Name is the human-readable endpoint: the standard name or the special text.
func (l Location) Name() string { return l.name }

// Kind is the value stored in the origin/destination column:
// the standard name, or LocationSpecial.
func (l Location) Kind() string {
	if l.special {
		return LocationSpecial
	}
	return l.name
}

// SpecialName returns the free-text name for special routes and nil otherwise,
// matching the nullable special_origin/special_destination columns.
func (l Location) SpecialName() *string {
	if !l.special {
		return nil
	}
	n := l.name
	return &n
}

// LocationFromColumns rebuilds a Location from its persisted pair.
func LocationFromColumns(kind string, specialName *string) Location {
	if kind == LocationSpecial {
		if specialName == nil {
			return Special("")
		}
		return Special(*specialName)
	}
	return Standard(kind)
}

// ParseViewLocation validates a board view filter. Empty selects the default view.
// Accepted values are the standard names and LocationSpecial, case-insensitively.
func ParseViewLocation(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultViewLocation, true
	}
	for _, l := range viewLocations {
		if strings.EqualFold(l, raw) {
			return l, true
		}
	}
	return "", false
}
