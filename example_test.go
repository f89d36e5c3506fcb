package jot_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/jot"
)

// Example_basic creates two notes in memory and searches them.
func Example_basic() {
	svc, err := jot.New("", jot.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	for _, n := range []jot.Note{
		svc.NewNote("Shopping", "milk"),
		svc.NewNote("Work", "shopping list"),
	} {
		if _, err := svc.CreateNote(ctx, n); err != nil {
			log.Fatal(err)
		}
	}

	hits, err := svc.SearchNotes(ctx, "shopping")
	if err != nil {
		log.Fatal(err)
	}

	for _, n := range hits {
		fmt.Println(n.Title)
	}
	// Output:
	// Shopping
	// Work
}

// Example_export renders a note as markdown.
func Example_export() {
	svc, err := jot.New("", jot.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}

	codec := jot.NewCodec(svc, nil)
	file := codec.ExportMarkdown(jot.Note{ID: "3f2a9c1b-0000", Title: "Hello World", Content: "first note"})

	fmt.Println(file.Name)
	fmt.Println(string(file.Data))
	// Output:
	// hello-world.md
	// # Hello World
	//
	// first note
}
