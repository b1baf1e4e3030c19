package gamedata

// LoadoutDef is a named mech preset loaded from JSON. Setup lists one part
// id per slot in slot order; 0 marks an empty slot.
type LoadoutDef struct {
	ID    string `json:"id"`    // Unique identifier (e.g., "brawler")
	Name  string `json:"name"`  // Display name of the mech
	Setup []int  `json:"setup"` // Part ids, slot order, 0 = empty
}

// LoadoutsFile represents the structure of loadouts.json.
type LoadoutsFile struct {
	Loadouts []LoadoutDef `json:"loadouts"`
}

// LoadLoadouts loads mech presets from the embedded loadouts.json file.
func LoadLoadouts() ([]LoadoutDef, error) {
	file, err := Load[LoadoutsFile]("loadouts.json")
	if err != nil {
		return nil, err
	}
	return file.Loadouts, nil
}

// MustLoadLoadouts loads mech presets, panicking on error.
func MustLoadLoadouts() []LoadoutDef {
	loadouts, err := LoadLoadouts()
	if err != nil {
		panic(err)
	}
	return loadouts
}
