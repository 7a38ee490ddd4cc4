package producerpal_test

import (
	"context"
	"fmt"
	"log"

	producerpal "github.com/adamjmurray/producer-pal"
	"github.com/adamjmurray/producer-pal/pkg/adapters/memory"
	"github.com/adamjmurray/producer-pal/pkg/domain"
)

// ExampleNew demonstrates count-based track duplication with
// auto-incrementing names against an in-memory set.
func ExampleNew() {
	// 1. Build a small session
	set := memory.NewSet()
	set.AddScene("Scene 1")
	track := set.AddTrack("Drums")

	// 2. Initialize the engine over the set's live client
	engine, err := producerpal.New(set.Client())
	if err != nil {
		log.Fatal(err)
	}

	// 3. Make two copies named "Layer" and "Layer 2"
	results, err := engine.Duplicate(context.Background(), domain.DuplicateRequest{
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
	// Output:
	// Layer
	// Layer 2
}

// ExampleEngine_Duplicate_arrangement places a session clip on the
// arrangement timeline at a bar|beat position with an exact length.
func ExampleEngine_Duplicate_arrangement() {
	set := memory.NewSet()
	set.AddScene("Scene 1")
	track := set.AddTrack("Drums")
	clip := set.AddSessionClip(track, 0, memory.ClipOptions{Name: "Beat", Length: 8, Looping: true})

	engine, err := producerpal.New(set.Client())
	if err != nil {
		log.Fatal(err)
	}

	// Place a 1-bar slice of the 8-beat clip at bar 3.
	results, err := engine.Duplicate(context.Background(), domain.DuplicateRequest{
		Type:              "clip",
		ID:                clip.ID(),
		ArrangementStart:  "3|1",
		ArrangementLength: "1:0",
	})
	if err != nil {
		log.Fatal(err)
	}

	placed := results[0].Clips[0]
	fmt.Printf("start=%g length=%g source=%g\n", *placed.Start, *placed.Length, clip.Length())
	// Output:
	// start=8 length=4 source=8
}
