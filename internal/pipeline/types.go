package pipeline

import (
	"github.com/google/uuid"

	"github.com/dreamware/graphpipe/internal/algorithm"
	"github.com/dreamware/graphpipe/internal/graph"
)

// Task is one unit of work for an operation worker.
// The worker owns Graph exclusively once the Task has been pushed.
type Task struct {
	Graph  *graph.Graph        // Graph to run the operation on
	Op     algorithm.Operation // Operation the Task was queued for
	Client uuid.UUID           // Connection that asked for the result
}

// ResultEnvelope carries a finished payload back to its connection.
type ResultEnvelope struct {
	Op      string    // Operation name, or the rejected name for error frames
	Payload []byte    // Frame body written to the client
	Client  uuid.UUID // Destination connection
}

// OperationStats describes one operation queue.
type OperationStats struct {
	Pending   int    `json:"pending"`
	Processed uint64 `json:"processed"`
}

// Stats is a point-in-time snapshot of pipeline activity.
type Stats struct {
	Operations     map[string]OperationStats `json:"operations"`
	State          string                    `json:"state"`
	Clients        []string                  `json:"clients"`
	Connections    int                       `json:"connections"`
	PendingResults int                       `json:"pending_results"`
	Accepted       uint64                    `json:"accepted"`
	Rejected       uint64                    `json:"rejected"`
	Delivered      uint64                    `json:"delivered"`
	Dropped        uint64                    `json:"dropped"`
}
