package sim

// Star describes the central body of a system.
type Star struct {
	SpectralClass string
	Color         string // hex, consumed by the renderer's palette
	Radius        float64
	LightPower    float64
}

// Planet describes one orbiting body as static data. OrbitAngle is the
// starting phase; the environment advances live orbits from it.
type Planet struct {
	Name          string
	Type          string // "rocky", "gas", "ice", "ocean"
	Radius        float64
	OrbitRadius   float64
	OrbitAngle    float64 // radians, initial phase
	OrbitSpeed    float64 // radians per second (scaled down heavily)
	RotationSpeed float64 // radians per second, self-spin
	TextureKey    string
	HasRings      bool
	HasAtmosphere bool
}

// StarSystem is one node of the universe graph. Pure data; the discovered
// flag is the only runtime mutation.
type StarSystem struct {
	ID          string
	Name        string
	Sector      string
	MapX, MapY  float64 // star-map chart coordinates
	Star        Star
	Planets     []Planet
	Connections []string // ids of directly reachable systems, undirected
	Discovered  bool
}

// Universe is the full system table plus lookup helpers.
type Universe struct {
	Systems []*StarSystem
	byID    map[string]*StarSystem
}

// NewUniverse builds the shipped sector chart. Connections are declared once
// per edge and mirrored at construction so the graph is undirected by
// construction, not by data discipline.
func NewUniverse() *Universe {
	u := &Universe{
		Systems: []*StarSystem{
			{
				ID: "sol-station", Name: "Sol Station", Sector: "Alpha Quadrant",
				MapX: 0, MapY: 0, Discovered: true,
				Star: Star{SpectralClass: "G2V", Color: "#fff4d6", Radius: 90, LightPower: 1.0},
				Planets: []Planet{
					{Name: "Terra Minor", Type: "rocky", Radius: 10, OrbitRadius: 420, OrbitAngle: 0.4, OrbitSpeed: 0.012, RotationSpeed: 0.2, TextureKey: "rock_blue", HasAtmosphere: true},
					{Name: "Hesperus", Type: "gas", Radius: 26, OrbitRadius: 780, OrbitAngle: 2.1, OrbitSpeed: 0.006, RotationSpeed: 0.35, TextureKey: "gas_amber", HasRings: true},
				},
				Connections: []string{"vega-prime", "wolf-359"},
			},
			{
				ID: "vega-prime", Name: "Vega Prime", Sector: "Alpha Quadrant",
				MapX: 3.2, MapY: -1.4,
				Star: Star{SpectralClass: "A0V", Color: "#cfe4ff", Radius: 130, LightPower: 1.6},
				Planets: []Planet{
					{Name: "Vega II", Type: "ice", Radius: 8, OrbitRadius: 520, OrbitAngle: 5.0, OrbitSpeed: 0.010, RotationSpeed: 0.15, TextureKey: "ice_white"},
					{Name: "Vega III", Type: "rocky", Radius: 12, OrbitRadius: 700, OrbitAngle: 1.2, OrbitSpeed: 0.007, RotationSpeed: 0.22, TextureKey: "rock_red"},
					{Name: "Vega V", Type: "gas", Radius: 30, OrbitRadius: 1100, OrbitAngle: 3.7, OrbitSpeed: 0.004, RotationSpeed: 0.4, TextureKey: "gas_violet", HasRings: true},
				},
				Connections: []string{"keplers-rest"},
			},
			{
				ID: "wolf-359", Name: "Wolf 359", Sector: "Alpha Quadrant",
				MapX: -2.1, MapY: 2.6,
				Star: Star{SpectralClass: "M6V", Color: "#ff9a6b", Radius: 55, LightPower: 0.5},
				Planets: []Planet{
					{Name: "Graveyard", Type: "rocky", Radius: 6, OrbitRadius: 300, OrbitAngle: 0.9, OrbitSpeed: 0.016, RotationSpeed: 0.1, TextureKey: "rock_grey"},
				},
				Connections: []string{"regula"},
			},
			{
				ID: "regula", Name: "Regula", Sector: "Beta Quadrant",
				MapX: -4.4, MapY: 4.1,
				Star: Star{SpectralClass: "K2V", Color: "#ffd9a0", Radius: 75, LightPower: 0.8},
				Planets: []Planet{
					{Name: "Regula I", Type: "rocky", Radius: 9, OrbitRadius: 380, OrbitAngle: 4.4, OrbitSpeed: 0.011, RotationSpeed: 0.3, TextureKey: "rock_brown"},
					{Name: "Genesis", Type: "ocean", Radius: 11, OrbitRadius: 640, OrbitAngle: 2.8, OrbitSpeed: 0.008, RotationSpeed: 0.25, TextureKey: "ocean_teal", HasAtmosphere: true},
				},
				Connections: nil,
			},
			{
				ID: "keplers-rest", Name: "Kepler's Rest", Sector: "Beta Quadrant",
				MapX: 6.0, MapY: -3.0,
				Star: Star{SpectralClass: "F5V", Color: "#f3f7ff", Radius: 105, LightPower: 1.3},
				Planets: []Planet{
					{Name: "Kepler Alpha", Type: "gas", Radius: 34, OrbitRadius: 900, OrbitAngle: 0.2, OrbitSpeed: 0.005, RotationSpeed: 0.5, TextureKey: "gas_green", HasRings: true, HasAtmosphere: true},
					{Name: "Kepler Beta", Type: "ice", Radius: 7, OrbitRadius: 1250, OrbitAngle: 5.8, OrbitSpeed: 0.003, RotationSpeed: 0.12, TextureKey: "ice_blue"},
				},
				Connections: nil,
			},
		},
	}

	u.byID = make(map[string]*StarSystem, len(u.Systems))
	for _, s := range u.Systems {
		u.byID[s.ID] = s
	}
	for _, s := range u.Systems {
		for _, id := range s.Connections {
			if other, ok := u.byID[id]; ok && !contains(other.Connections, s.ID) {
				other.Connections = append(other.Connections, s.ID)
			}
		}
	}
	return u
}

// SystemByID looks up a system. Unknown ids return nil; callers skip the
// behavior rather than halting the tick.
func (u *Universe) SystemByID(id string) *StarSystem {
	return u.byID[id]
}

// Connected reports whether two systems share an edge, in either direction.
func (u *Universe) Connected(a, b string) bool {
	sa := u.SystemByID(a)
	if sa == nil {
		return false
	}
	return contains(sa.Connections, b)
}

// Discover marks a system visited. Unknown ids are ignored.
func (u *Universe) Discover(id string) {
	if s := u.SystemByID(id); s != nil {
		s.Discovered = true
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
