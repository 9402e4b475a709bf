package platform

// Package platform contains OS and filesystem helpers: collision-free output
// path resolution, default directories, external binary lookup, and opening
// files in the system file manager.
