package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func (c *Cli) lettersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "letters [letter]",
		Short: "List first letters of names, or people whose name starts with a letter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				resp, err := c.client.Letters(cmd.Context())
				if err != nil {
					return describeError(err)
				}
				c.io.Println(strings.Join(resp.Letters, " "))
				return nil
			}

			resp, err := c.client.ByLetter(cmd.Context(), args[0])
			if err != nil {
				return describeError(err)
			}
			if len(resp.Entries) == 0 {
				c.io.Println("Nothing found.")
				return nil
			}
			for _, e := range resp.Entries {
				c.io.Println(entryLine(e))
			}
			return nil
		},
	}
}

func (c *Cli) groupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List home groups with their members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.client.Groups(cmd.Context())
			if err != nil {
				return describeError(err)
			}
			for i, g := range resp.Groups {
				if i > 0 {
					c.io.Println()
				}
				c.io.Printf("%s (%d)\n", g.Name, len(g.Members))
				for _, m := range g.Members {
					c.io.Println("  " + entryLine(m))
				}
			}
			return nil
		},
	}
}

func (c *Cli) birthdaysCommand() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "birthdays",
		Short: "List birthdays of a month (default: current month)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := 0
			if month != "" {
				n, err := strconv.Atoi(month)
				if err != nil || n < 1 || n > 12 {
					return fmt.Errorf("invalid month %q, expected 1-12", month)
				}
				m = n
			}

			resp, err := c.client.Birthdays(cmd.Context(), m)
			if err != nil {
				return describeError(err)
			}
			if len(resp.Entries) == 0 {
				c.io.Println("No birthdays.")
				return nil
			}
			for _, e := range resp.Entries {
				c.io.Println(entryLine(e))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "Month number 1-12")
	return cmd
}
