package commands

import (
	"context"
	"fmt"
	"sort"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	Metadata bool `short:"m" help:"Include item metadata"`
}

func (i *InspectCmd) Run(root *CLI) error {
	ctx := context.Background()

	_, engine, err := loadEngine(ctx, root)
	if err != nil {
		return err
	}

	for _, rep := range engine.Reps() {
		kind := "textual"
		if rep.Binary() {
			kind = "binary"
		}
		fmt.Printf("%-50s %s\n", rep, kind)

		if i.Metadata {
			keys := make([]string, 0, len(rep.Item.Metadata))
			for k := range rep.Item.Metadata {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("    %s: %v\n", k, rep.Item.Metadata[k])
			}
		}
	}
	return nil
}
