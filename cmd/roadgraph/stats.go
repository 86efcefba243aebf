package main

import (
	"context"
	"os"
)

type statsCmd struct {
	storeOpts

	Format string `short:"f" long:"format" choice:"yaml" choice:"json" default:"yaml" description:"Output format"`

	Args struct {
		Name string `positional-arg-name:"NAME" required:"true" description:"Saved map"`
	} `positional-args:"true"`
}

// Execute prints the map stats.
func (c *statsCmd) Execute(_ []string) error {
	m, err := c.load(context.Background(), c.Args.Name)
	if err != nil {
		return err
	}

	out, err := encode(m.Stats(), c.Format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
