package sources

import "github.com/JonMunkholm/gdgdash/internal/core"

func init() {
	registerEverybody()
}

func registerEverybody() {
	core.Register(core.SourceDefinition{
		Info: core.SourceInfo{
			Key:         core.SourceEverybody,
			Label:       "University-wide",
			DefaultFile: "everybody.csv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "Email IDs", Required: true},
			{Name: "Name"},
		},
		EmailColumn: "Email IDs",
		NameColumn:  "Name",
	})
}
