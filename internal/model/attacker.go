package model

// AttackerProfile is a named assumption about how many guesses per second
// an attacker can make.
type AttackerProfile struct {
	// Name identifies the profile in reports (e.g. "single_gpu").
	Name string `json:"name"`

	// Rate is the guess rate in guesses per second. Always positive for
	// the built-in profiles.
	Rate float64 `json:"rate"`
}

// attackerProfiles is the fixed, process-wide profile table in declaration order.
// Callers only ever receive a copy.
var attackerProfiles = [...]AttackerProfile{
	{Name: "online_low", Rate: 10},
	{Name: "online_high", Rate: 100},
	{Name: "single_gpu", Rate: 1e7},
	{Name: "gpu_rig", Rate: 1e9},
	{Name: "asic_farm", Rate: 1e10},
}

// AttackerProfiles returns the attacker profiles in declaration order.
// The returned slice is a fresh copy; modifying it does not affect other callers.
func AttackerProfiles() []AttackerProfile {
	profiles := make([]AttackerProfile, len(attackerProfiles))
	copy(profiles, attackerProfiles[:])
	return profiles
}
