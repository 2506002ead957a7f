// Writes a metadata skeleton for a new component so authors start from a
// stanza that already has every required field in place.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var nameRE = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

const sourceSkeleton = `sources:
  %[1]s:
    description: "Ingests data through TODO and outputs log events."
    delivery_guarantee: best_effort
    through_description: "TODO"
    outputs:
      - type: log
        description: "TODO"
`

const transformSkeleton = `transforms:
  %[1]s:
    description: "Accepts log events and allows you to TODO."
    function_categories:
      - shape
`

const sinkSkeleton = `sinks:
  %[1]s:
    description: "Streams log events to TODO."
    delivery_guarantee: best_effort
    input_types:
      - log
    write_style: streaming
    write_to_description: "TODO"
`

func main() {
	kind := flag.String("kind", "", "source, transform, or sink")
	name := flag.String("name", "", "component name, snake_case")
	root := flag.String("root", "meta", "metadata directory")
	flag.Parse()

	var skeleton string
	switch *kind {
	case "source":
		skeleton = sourceSkeleton
	case "transform":
		skeleton = transformSkeleton
	case "sink":
		skeleton = sinkSkeleton
	default:
		fmt.Fprintf(os.Stderr, "unknown kind %q, want source, transform, or sink\n", *kind)
		os.Exit(1)
	}
	if !nameRE.MatchString(*name) {
		fmt.Fprintf(os.Stderr, "component name %q must be snake_case\n", *name)
		os.Exit(1)
	}

	path := filepath.Join(*root, *name+".yml")
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "%s already exists\n", path)
		os.Exit(1)
	}
	if err := os.WriteFile(path, []byte(fmt.Sprintf(skeleton, *name)), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("wrote", path)
}

//go run ./scripts/newcomponent -kind sink -name elasticsearch
