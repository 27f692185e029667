package pipeline

// RunStats tracks aggregate counters across one run.
type RunStats struct {
	Dirs             int   // Directories given.
	Folders          int   // Folder groups that made it into the batch.
	FoldersSkipped   int   // Directories skipped (missing, empty, mismatched).
	Frames           int   // Frames in the flat batch.
	Written          int   // Output groups written.
	Failed           int   // Output groups that failed.
	TotalOutputBytes int64 // Bytes written across all outputs.
}
