// Package files provides file system operations and discovery utilities
// for the rate comparison engine.
//
// Discovery locates competitor snapshot JSON files and report artifacts,
// with helpers for pattern matching and picking the most recent file.
//
// Manager provides basic file management operations relative to the
// configured data directory so the rest of the application never builds
// absolute paths by hand.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/data")
//	snapshots, err := discovery.FindSnapshotFiles("snapshots")
//
//	manager := files.NewManager(&cfg.Paths)
//	if manager.FileExists("user_rates.json") {
//	    // Process file
//	}
package files
