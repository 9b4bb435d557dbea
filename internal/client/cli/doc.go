// Package cli implements the interactive campaignkeeper client: a REPL
// over the campaign API that keeps the session in the local database and
// remembers the campaign being worked on.
//
// Commands operate on the current campaign (see "use") and address world
// elements by kind: npcs, locations, plot-hooks, items, events, ideas,
// organizations and sessions. Fields for "new" and "edit" are given as
// name=value pairs, inline or one per line when prompted.
package cli
