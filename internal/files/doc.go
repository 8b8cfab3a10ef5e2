// Package files locates dataset files on disk.
//
// When the configured dataset path is a directory, Discovery picks the most
// recently modified .csv or .xlsx file in it, so a scraper drop folder can be
// pointed at directly.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.WorkingDir)
//	latest, err := discovery.LatestDataset("data")
package files
