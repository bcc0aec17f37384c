// Package ephem provides ephemeris position data for the bodies of the
// Neptune encounter, backed by the JPL Horizons API and optional local
// JPL DE ephemeris files.
package ephem

// BodyID is a NAIF SPICE ID for a spacecraft or natural body.
type BodyID int

// NAIF IDs used by the flyby pipelines.
// Sourced from https://naif.jpl.nasa.gov/pub/naif/toolkit_docs/C/req/naif_ids.html
const (
	NAIFVoyager2          BodyID = -32
	NAIFNeptuneBarycenter BodyID = 8
	NAIFNeptune           BodyID = 899
	NAIFTriton            BodyID = 801
	NAIFNereid            BodyID = 802
	NAIFNaiad             BodyID = 803
	NAIFThalassa          BodyID = 804
	NAIFDespina           BodyID = 805
	NAIFGalatea           BodyID = 806
	NAIFLarissa           BodyID = 807
	NAIFProteus           BodyID = 808
)

// Body describes one tracked celestial object.
type Body struct {
	Name     string  // Display name
	NAIFID   BodyID  // NAIF SPICE ID
	RadiusKm float64 // Mean physical radius
	Color    string  // Display color (hex)
}

// Neptune is the primary body of both pipelines. It sits at the frame origin;
// its catalog entry supplies the sphere radius and colors.
var Neptune = Body{Name: "Neptune", NAIFID: NAIFNeptune, RadiusKm: 24764, Color: "#3949ab"}

// Voyager2 is the observer spacecraft.
var Voyager2 = Body{Name: "Voyager 2", NAIFID: NAIFVoyager2, Color: "yellow"}

// Satellites is the catalog of Neptune's satellites tracked during the
// encounter, in NAIF ID order. The slice is package data and must not be
// mutated; samplers receive it (or a subset) explicitly.
var Satellites = []Body{
	{Name: "Triton", NAIFID: NAIFTriton, RadiusKm: 1353, Color: "#ff6b6b"},
	{Name: "Nereid", NAIFID: NAIFNereid, RadiusKm: 170, Color: "#feca57"},
	{Name: "Naiad", NAIFID: NAIFNaiad, RadiusKm: 33, Color: "#48dbfb"},
	{Name: "Thalassa", NAIFID: NAIFThalassa, RadiusKm: 41, Color: "#ff9ff3"},
	{Name: "Despina", NAIFID: NAIFDespina, RadiusKm: 75, Color: "#54a0ff"},
	{Name: "Galatea", NAIFID: NAIFGalatea, RadiusKm: 88, Color: "#5f27cd"},
	{Name: "Larissa", NAIFID: NAIFLarissa, RadiusKm: 97, Color: "#00d2d3"},
	{Name: "Proteus", NAIFID: NAIFProteus, RadiusKm: 210, Color: "#ff9f43"},
}

// SatelliteByID returns the satellite catalog entry for a NAIF ID.
func SatelliteByID(id BodyID) (Body, bool) {
	for _, b := range Satellites {
		if b.NAIFID == id {
			return b, true
		}
	}
	return Body{}, false
}
