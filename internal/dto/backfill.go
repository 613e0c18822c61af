package dto

// BackfillRequest triggers a backfill run.
type BackfillRequest struct {
	DryRun bool `json:"dryRun"`
}
