package commands

import (
	"context"
	"fmt"
	"sort"
)

// RoutesCmd implements the 'routes' command.
type RoutesCmd struct{}

func (r *RoutesCmd) Run(root *CLI) error {
	ctx := context.Background()

	_, engine, err := loadEngine(ctx, root)
	if err != nil {
		return err
	}

	routes, err := engine.Routes()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(routes))
	for key := range routes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("%-50s %s\n", key, routes[key])
	}
	return nil
}
