package classifier

// FeatureInfo is the display metadata served by the public feature listing.
type FeatureInfo struct {
	Unit string   `json:"unit"`
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
}

var featureInfo = map[string]FeatureInfo{
	"age":                      {Unit: "years", Min: fptr(0), Max: fptr(120)},
	"anaemia":                  {Unit: "0=No/1=Yes", Min: fptr(0), Max: fptr(1)},
	"creatinine_phosphokinase": {Unit: "mcg/L", Min: fptr(0)},
	"diabetes":                 {Unit: "0=No/1=Yes", Min: fptr(0), Max: fptr(1)},
	"ejection_fraction":        {Unit: "%", Min: fptr(0), Max: fptr(100)},
	"high_blood_pressure":      {Unit: "0=No/1=Yes", Min: fptr(0), Max: fptr(1)},
	"platelets":                {Unit: "kiloplatelets/mL", Min: fptr(0)},
	"serum_creatinine":         {Unit: "mg/dL", Min: fptr(0)},
	"serum_sodium":             {Unit: "mEq/L", Min: fptr(0)},
	"sex":                      {Unit: "0=Female/1=Male", Min: fptr(0), Max: fptr(1)},
	"smoking":                  {Unit: "0=No/1=Yes", Min: fptr(0), Max: fptr(1)},
	"time":                     {Unit: "days", Min: fptr(0)},
}

// Describe returns display metadata for the model's features, keyed by name.
func (m *Model) Describe() map[string]FeatureInfo {
	info := make(map[string]FeatureInfo, len(m.art.Features))
	for _, name := range m.art.Features {
		if fi, ok := featureInfo[name]; ok {
			info[name] = fi
		}
	}
	return info
}

func fptr(f float64) *float64 {
	return &f
}
