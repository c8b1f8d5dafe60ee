package dnscfg

import "strings"

// Preset is a named public resolver pair.
type Preset struct {
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Presets lists the built-in resolver pairs, in menu order.
var Presets = []Preset{
	{Name: "cloudflare", Primary: "1.1.1.1", Secondary: "1.0.0.1"},
	{Name: "google", Primary: "8.8.8.8", Secondary: "8.8.4.4"},
	{Name: "quad9", Primary: "9.9.9.9", Secondary: "149.112.112.112"},
	{Name: "opendns", Primary: "208.67.222.222", Secondary: "208.67.220.220"},
	{Name: "adguard", Primary: "94.140.14.14", Secondary: "94.140.15.15"},
}

// LookupPreset finds a preset by name, case-insensitively.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
