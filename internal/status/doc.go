// Package status serves a read-only HTTP view of a running pipeline.
//
// Endpoints:
//
//	GET /health  200 "ok" while the pipeline is running, 503 otherwise
//	GET /stats   JSON pipeline.Stats snapshot
//
// Example /stats body:
//
//	{
//	  "state": "running",
//	  "connections": 2,
//	  "clients": ["0b6f…", "9d21…"],
//	  "operations": {
//	    "mst": {"pending": 0, "processed": 12},
//	    "hamilton": {"pending": 3, "processed": 4}
//	  },
//	  "pending_results": 0,
//	  "accepted": 2,
//	  "rejected": 1,
//	  "delivered": 16,
//	  "dropped": 0
//	}
//
// The endpoint never changes pipeline state; shutdown stays with the
// operator command and signals. Responses are encoded with sonic.
package status
