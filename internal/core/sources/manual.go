package sources

import "github.com/JonMunkholm/gdgdash/internal/core"

func init() {
	registerManualCollection()
}

// registerManualCollection registers the hand-collected registration sheet.
// It is the roster behind the directory and analytics pages.
func registerManualCollection() {
	core.Register(core.SourceDefinition{
		Info: core.SourceInfo{
			Key:         core.SourceManual,
			Label:       "Manual Collection",
			DefaultFile: "manual_data_collection.csv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "Name", Required: true},
			{Name: "Email", Required: true},
			{Name: "Under_Graduate", Required: true},
			{Name: core.GenderColumn},
		},
		EmailColumn:     "Email",
		NameColumn:      "Name",
		EducationColumn: "Under_Graduate",
	})
}
