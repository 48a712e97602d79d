package models

// DeleteRequest ...
type DeleteRequest struct {
	ID      int64 `json:"id"`
	Cascade bool  `json:"cascade"`
}

// DeleteStats maps each cascade step's stat key to the number of rows it
// removed. StatTotal sums the dependent rows only; the entity's own row is
// reported under its own key and is not folded into the total.
type DeleteStats map[string]int64

// StatTotal is the reserved aggregate key inside DeleteStats.
const StatTotal = "total"

// DeleteResult is the success shape of a delete call. Deleted holds the
// snapshot of the removed entity taken before any statement ran.
type DeleteResult struct {
	Deleted map[string]any `json:"deleted"`
	Stats   DeleteStats    `json:"stats"`
}
