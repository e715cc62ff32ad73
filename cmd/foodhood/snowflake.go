package main

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/urfave/cli/v2"

	"foodhood/internal/idgen"
)

var snowflakeCommand = &cli.Command{
	Name:  "snowflake",
	Usage: "Generate or inspect identifiers",
	Subcommands: []*cli.Command{
		{
			Name:  "new",
			Usage: "Print new identifiers",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "count",
					Aliases: []string{"c"},
					Usage:   "Number of IDs to generate",
					Value:   1,
				},
				&cli.Int64Flag{
					Name:    "instance",
					Aliases: []string{"i"},
					Usage:   "Instance tag embedded in the IDs",
					EnvVars: []string{"INSTANCE_ID"},
				},
			},
			Action: func(c *cli.Context) error {
				g, err := idgen.New(c.Int64("instance"))
				if err != nil {
					return err
				}
				for range c.Int("count") {
					id, err := g.NextID()
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, id)
				}
				return nil
			},
		},
		{
			Name:      "decode",
			Usage:     "Split identifiers into timestamp, instance and sequence",
			ArgsUsage: "<id>...",
			Action: func(c *cli.Context) error {
				if c.NArg() == 0 {
					return cli.Exit("at least one id is required", 1)
				}
				for _, arg := range c.Args().Slice() {
					id, err := snowflake.ParseString(arg)
					if err != nil {
						return fmt.Errorf("parse %q: %w", arg, err)
					}
					p := idgen.Decompose(id, time.UnixMilli(0))
					fmt.Fprintf(c.App.Writer, "%s\ttime=%s\tinstance=%d\tsequence=%d\n",
						id, p.Timestamp.UTC().Format(time.RFC3339Nano), p.Instance, p.Sequence)
				}
				return nil
			},
		},
	},
}
