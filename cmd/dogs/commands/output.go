package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/application"
)

func printDogs(w io.Writer, dogs []application.DogDTO) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dogs)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBREED")
	for _, d := range dogs {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", d.ID, d.Name, d.Breed)
	}
	return tw.Flush()
}

func printDog(w io.Writer, dog *application.DogDTO) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dog)
	}
	return printDogs(w, []application.DogDTO{*dog})
}
