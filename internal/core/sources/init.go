// Package sources registers the dashboard's CSV sources with the core registry.
// Import it for side effects to make the sources available.
package sources

// Each source file registers itself from init().
