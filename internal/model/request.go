// Package model defines the source-independent request types shared by
// every geotagged-post source.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// MediaKind identifies a kind of post content.
type MediaKind string

// Supported media kinds.
const (
	MediaImage MediaKind = "image"
	MediaSound MediaKind = "sound"
	MediaText  MediaKind = "text"
	MediaVideo MediaKind = "video"
)

// AllMedia is the default media set when a request does not narrow it.
var AllMedia = []MediaKind{MediaImage, MediaSound, MediaText, MediaVideo}

// ParseMediaKind normalizes and validates a media kind string.
func ParseMediaKind(s string) (MediaKind, error) {
	switch m := MediaKind(strings.ToLower(strings.TrimSpace(s))); m {
	case MediaImage, MediaSound, MediaText, MediaVideo:
		return m, nil
	default:
		return "", eris.Errorf("model: medium may be %q, %q, %q, or %q", MediaImage, MediaSound, MediaText, MediaVideo)
	}
}

// LengthUnit is the unit of a search radius.
type LengthUnit string

// Supported radius units.
const (
	UnitKilometers LengthUnit = "km"
	UnitMiles      LengthUnit = "mi"
)

// Location is a circular search area.
type Location struct {
	Latitude  float64
	Longitude float64
	Radius    float64
	Unit      LengthUnit
}

// Validate checks the coordinate, radius, and unit ranges.
func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return eris.New("model: latitude must be -90 to 90")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return eris.New("model: longitude must be -180 to 180")
	}
	if l.Radius < 0 {
		return eris.New("model: radius must be positive")
	}
	if l.Unit != UnitKilometers && l.Unit != UnitMiles {
		return eris.Errorf("model: unit must be %q or %q", UnitKilometers, UnitMiles)
	}
	return nil
}

// Interval is a period of time bounded by POSIX timestamps.
type Interval struct {
	Earliest float64
	Latest   float64
}

// Validate checks that both moments are non-negative timestamps.
func (i Interval) Validate() error {
	if i.Earliest < 0 || i.Latest < 0 {
		return eris.New("model: interval moments must be POSIX timestamps")
	}
	return nil
}

// Normalize returns the interval with its moments in ascending order.
// Callers may pass the bounds in either order; downstream ID math
// assumes Earliest <= Latest.
func (i Interval) Normalize() Interval {
	if i.Earliest > i.Latest {
		i.Earliest, i.Latest = i.Latest, i.Earliest
	}
	return i
}

// Request describes what to fetch from a source.
type Request struct {
	Media    []MediaKind
	Keyword  string
	Quantity int
	Location *Location
	Interval *Interval
}

// Validate checks every field of the request.
func (r Request) Validate() error {
	for _, m := range r.Media {
		if _, err := ParseMediaKind(string(m)); err != nil {
			return err
		}
	}
	if r.Quantity < 0 {
		return eris.New("model: quantity must be positive")
	}
	if r.Location != nil {
		if err := r.Location.Validate(); err != nil {
			return err
		}
	}
	if r.Interval != nil {
		if err := r.Interval.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HasMedium reports whether the request asks for the given kind.
func (r Request) HasMedium(kind MediaKind) bool {
	for _, m := range r.Media {
		if m == kind {
			return true
		}
	}
	return false
}
