// Package io provides JSON, YAML and TOML import and export for weighted
// graphs.
//
// # Format
//
// All three encodings share one structure. In JSON:
//
//	{
//	  "directed": false,
//	  "heuristic_weight": 1,
//	  "nodes": [
//	    {"id": "depot", "x": 0, "y": 0},
//	    {"id": "market", "x": 3, "y": 4, "meta": {"opens": "08:00"}}
//	  ],
//	  "edges": [
//	    {"from": "depot", "to": "market", "cost": 6, "kind": "road"}
//	  ]
//	}
//
// Node fields: "id" is required and unique; "x" and "y" position the node
// for the straight-line heuristic; "meta" is freeform.
//
// Edge fields: "from" and "to" are required and must name existing nodes;
// "cost" defaults to [DefaultCost] and must be finite and non-negative;
// "kind" is priced by a [graph.Profile]; "meta" is freeform.
//
// In TOML the arrays become [[nodes]] and [[edges]] tables.
//
// # Import and Export
//
// [Import] and [Export] pick the format from the file extension (.json,
// .yaml, .yml, .toml). [Read] and [Write] work on any reader or writer.
// Round trips preserve vertices, edges, kinds, positions and metadata.
//
// [graph.Profile]: github.com/matzehuels/waypoint/pkg/graph.Profile
package io
