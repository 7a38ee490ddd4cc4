/*
Package producerpal is a duplication orchestration layer for Ableton
Live sets, designed to give AI agents and remote tools rich copy
operations over the coarse primitives the Live Object Model exposes.

Live's API can duplicate a track, a scene, or a clip, one at a time,
with no say over naming, placement, or what the copy carries. This
package composes those primitives into higher-level operations: make N
copies with auto-incrementing names, duplicate a track without its clips
or devices, copy a single device via a temporary track, or place a clip
on the arrangement timeline at a "bar|beat" position with an exact
length.

# Concept

The engine speaks to Live through a small port (the live.Client
interface) and never mutates source objects: every operation is a
sequence of host primitives plus compensating cleanup for the
intermediate objects it had to create. This Hexagonal Architecture
allows the engine to be embedded in any interface: MCP server for AI
agents, HTTP JSON API, or your own Max for Live bridge.

# Key Features

  - Count-based duplication with "Name", "Name 2", "Name 3" naming.
  - Track copies can strip clips, strip devices, or route back into the
    source track for layering workflows.
  - Arrangement placement by "bar|beat" position or by named locator,
    with optional exact lengths parsed against the clip's own meter.
  - Compensating cleanup: temporary tracks and holding-area clips are
    released on every exit path, including failures.

# Usage

Initialize the engine with a live client. The in-memory adapter stands
in for a real set in tests and demos.

	package main

	import (
		"context"
		"fmt"
		"log"

		producerpal "github.com/adamjmurray/producer-pal"
		"github.com/adamjmurray/producer-pal/pkg/adapters/memory"
		"github.com/adamjmurray/producer-pal/pkg/domain"
	)

	func main() {
		set := memory.NewSet()
		set.AddScene("Scene 1")
		track := set.AddTrack("Drums")

		eng, err := producerpal.New(set.Client())
		if err != nil {
			log.Fatal(err)
		}

		results, err := eng.Duplicate(context.Background(), domain.DuplicateRequest{
			Type:  "track",
			ID:    track.ID(),
			Count: 2,
			Name:  "Layer",
		})
		if err != nil {
			log.Fatal(err)
		}
		for _, r := range results {
			fmt.Println(r.Name)
		}
	}
*/
package producerpal
