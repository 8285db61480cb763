// Package client is a small synchronous client for the graph pipeline
// protocol. It is used by cmd/graphctl and by the server's tests.
//
// A Client owns one TCP connection. Do sends a request and reads back the
// frames it produces: four for "all" and one for every other operation.
// A rejected request always produces exactly one frame starting with
// wire.ErrorPrefix, after which Do stops reading.
//
// # Example
//
//	c, err := client.Dial(ctx, "127.0.0.1:12345")
//	if err != nil {
//	    return err
//	}
//	defer c.Quit()
//
//	results, err := c.Do(ctx, "mst", 4, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}})
//	// results[0] == "MST weight (unit): 3"
//
// # Command Syntax
//
// ParseCommand reads the interactive line format used by graphctl:
//
//	<op> <V> <u-v> <u-v> ...
//	quit
package client
