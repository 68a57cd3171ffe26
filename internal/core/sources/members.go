package sources

import "github.com/JonMunkholm/gdgdash/internal/core"

func init() {
	registerMembers()
}

// registerMembers registers the current member export. Its emails define
// who counts as a member on the analytics page.
func registerMembers() {
	core.Register(core.SourceDefinition{
		Info: core.SourceInfo{
			Key:         core.SourceMembers,
			Label:       "GDG Members",
			DefaultFile: "members_current.csv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "Email IDs", Required: true},
			{Name: "Name"},
		},
		EmailColumn: "Email IDs",
		NameColumn:  "Name",
	})
}
