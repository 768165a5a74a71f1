// Package plugin defines the contribution contract between the browser and
// its plugins, the immutable registry they are installed into, and the
// collector that merges their contributions for one request.
//
// Every plugin implements the full Hooks interface; embedding Base supplies
// no-op implementations so a plugin only overrides the categories it
// contributes to. Aggregation therefore never probes for optional methods.
package plugin
