package calc

import (
	"sort"
	"strings"
)

type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityVigorous Intensity = "vigorous"
)

type Activity struct {
	Name      string    `json:"name"`
	MET       float64   `json:"met"`
	Intensity Intensity `json:"intensity"`
}

var activityNameReplacer = strings.NewReplacer(" ", "_", "-", "_")

// MET values from the Compendium of Physical Activities
var metTable = map[string]float64{
	"yoga":                    2.5,
	"walking_slow":            2.8,
	"stretching":              2.3,
	"housework":               3.3,
	"walking_moderate":        3.5,
	"weight_lifting_light":    3.5,
	"cycling_leisure":         4.0,
	"golf":                    4.8,
	"dancing":                 5.0,
	"walking_brisk":           5.0,
	"hiking":                  6.0,
	"weight_lifting_vigorous": 6.0,
	"tennis":                  7.3,
	"swimming":                7.0,
	"basketball":              6.5,
	"soccer":                  7.0,
	"elliptical":              5.0,
	"rowing":                  7.0,
	"cycling_moderate":        8.0,
	"running_5mph":            8.3,
	"jump_rope":               11.8,
	"running_7mph":            11.0,
}

func IntensityForMET(met float64) Intensity {
	switch {
	case met < 3:
		return IntensityLight
	case met <= 6:
		return IntensityModerate
	default:
		return IntensityVigorous
	}
}

// LookupActivity finds an activity in the MET table by name. Case, spaces
// and dashes are ignored, so "Running 5mph" finds running_5mph.
func LookupActivity(name string) (Activity, bool) {
	name = activityNameReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
	met, ok := metTable[name]
	if !ok {
		return Activity{}, false
	}
	return Activity{
		Name:      name,
		MET:       met,
		Intensity: IntensityForMET(met),
	}, true
}

// Activities lists the MET table sorted by MET, then name.
func Activities() []Activity {
	activities := make([]Activity, 0, len(metTable))
	for name := range metTable {
		a, _ := LookupActivity(name)
		activities = append(activities, a)
	}
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].MET == activities[j].MET {
			return activities[i].Name < activities[j].Name
		}
		return activities[i].MET < activities[j].MET
	})
	return activities
}
