// Package core provides the business logic of the GDG members dashboard.
//
// It is independent of the web layer: handlers, tests and one-off tools
// all go through [Service].
//
// # Sources
//
// CSV sources are registered at init time using [Register], the same way
// the sources package registers the manual collection, university-wide and
// member exports:
//
//	core.Register(core.SourceDefinition{
//	    Info:        core.SourceInfo{Key: "members", Label: "GDG Members", DefaultFile: "members_current.csv"},
//	    FieldSpecs:  []core.FieldSpec{{Name: "Email IDs", Required: true}},
//	    EmailColumn: "Email IDs",
//	})
//
// # Derived columns
//
// Each row gets an academic year from [Classify], an email domain from
// [EmailDomain] and an education level (NotSpecified when blank). Rosters
// are immutable once parsed and every view operation returns new slices.
//
// # Loading
//
// Rosters are memoized by path and content hash, so editing an export
// takes effect on the next request without a restart. A missing file or
// missing required column fails the load; [MapError] turns such failures
// into coded messages (FILE001, VAL002, ...) for the UI.
package core
