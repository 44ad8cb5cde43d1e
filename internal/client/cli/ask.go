package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *Cli) askCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the roster in plain language",
		Example: `  roster ask "how many people are in the Youth group?"
  roster ask "whose birthday is in the next two weeks?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.client.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return describeError(err)
			}
			c.staleWarning(resp.SnapshotInfo)

			switch {
			case resp.Kind == "count":
				c.io.Printf("%d\n", resp.Count)
			case resp.Empty:
				c.io.Println("Nothing found.")
			case resp.Kind == "birthdays":
				for _, b := range resp.Birthdays {
					c.io.Printf("%s  %s turns %d", b.Date, displayName(b.Record), b.Age)
					switch b.DaysUntil {
					case 0:
						c.io.Println(" today")
					case 1:
						c.io.Println(" tomorrow")
					default:
						c.io.Printf(" in %d days\n", b.DaysUntil)
					}
				}
			default:
				for _, rec := range resp.Records {
					c.io.Printf("%s", displayName(rec))
					if rec.Group != "" {
						c.io.Printf(" (%s)", rec.Group)
					}
					c.io.Println()
				}
			}
			return nil
		},
	}
}
