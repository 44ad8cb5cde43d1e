package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apimodels "github.com/GLee998/church-database-bot/pkg/api"
)

func (c *Cli) searchCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <name prefix>",
		Short: "Find people by the beginning of their name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.client.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return describeError(err)
			}
			c.staleWarning(resp.SnapshotInfo)

			if resp.Count == 0 {
				c.io.Println("Nothing found.")
				return nil
			}
			for _, rec := range resp.Records {
				c.io.Printf("%-36s  %s", rec.ID, displayName(rec))
				if rec.Group != "" {
					c.io.Printf(" (%s)", rec.Group)
				}
				c.io.Println()
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")
	return cmd
}

func (c *Cli) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a person's card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.client.GetRecord(cmd.Context(), args[0])
			if err != nil {
				return describeError(err)
			}
			c.staleWarning(resp.SnapshotInfo)

			// без схемы карточка все равно выводится
			schema, _ := c.client.Schema(cmd.Context())
			return templates.Execute(c.io, newRecordView(resp.Record, schema))
		},
	}
}

func (c *Cli) addCommand() *cobra.Command {
	var assignments []string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a person (interactive unless --field is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			if len(fields) == 0 {
				schema, err := c.client.Schema(cmd.Context())
				if err != nil {
					return describeError(err)
				}
				if fields, err = c.promptFields(schema, nil); err != nil {
					return err
				}
			}

			resp, err := c.client.CreateRecord(cmd.Context(), fields)
			if err != nil {
				return describeError(err)
			}
			return c.printWrite(resp, true)
		},
	}
	cmd.Flags().StringArrayVarP(&assignments, "field", "f", nil, "Field value as key=value (repeatable)")
	return cmd
}

func (c *Cli) editCommand() *cobra.Command {
	var (
		assignments []string
		revision    int64
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a person's fields (interactive unless --field is given)",
		Long: "Change a person's fields. The change is applied only if nobody else changed the record " +
			"since it was loaded; an empty value clears a field.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			fields, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			if revision == 0 || len(fields) == 0 {
				current, err := c.client.GetRecord(cmd.Context(), id)
				if err != nil {
					return describeError(err)
				}
				if revision == 0 {
					revision = current.Record.Revision
				}
				if len(fields) == 0 {
					schema, err := c.client.Schema(cmd.Context())
					if err != nil {
						return describeError(err)
					}
					if fields, err = c.promptFields(schema, current.Record.Fields); err != nil {
						return err
					}
				}
			}
			if len(fields) == 0 {
				c.io.Println("Nothing to change.")
				return nil
			}

			resp, err := c.client.UpdateRecord(cmd.Context(), id, revision, fields)
			if err != nil {
				return describeError(err)
			}
			return c.printWrite(resp, false)
		},
	}
	cmd.Flags().StringArrayVarP(&assignments, "field", "f", nil, "Field value as key=value (repeatable)")
	cmd.Flags().Int64Var(&revision, "revision", 0, "Revision the change is based on (default: current)")
	return cmd
}

// promptFields спрашивает значения полей схемы. При редактировании пустой ввод оставляет поле как есть,
// "-" очищает его.
func (c *Cli) promptFields(schema *apimodels.SchemaResponse, current map[string]string) (map[string]string, error) {
	editing := current != nil
	fields := make(map[string]string)

	for _, f := range schema.Fields {
		prompt := f.Header
		if len(f.Values) > 0 {
			prompt += " [" + strings.Join(f.Values, ", ") + "]"
		}
		if f.Type == "date" {
			prompt += " (YYYY-MM-DD)"
		}
		if editing && current[f.Key] != "" {
			prompt += " {" + current[f.Key] + "}"
		}

		value, err := c.io.ReadInput(prompt + ": ")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Key, err)
		}

		switch {
		case editing && value == "":
			continue
		case editing && value == "-":
			fields[f.Key] = ""
		case value != "":
			fields[f.Key] = value
		case f.Required:
			return nil, fmt.Errorf("%s cannot be empty", f.Header)
		}
	}
	return fields, nil
}

func (c *Cli) printWrite(resp *apimodels.WriteResponse, created bool) error {
	view := struct {
		Name     string
		ID       string
		Revision int64
		Created  bool
	}{ID: resp.ID, Revision: resp.NewRevision, Created: created}
	if resp.Record != nil {
		view.Name = displayName(*resp.Record)
		view.ID = resp.Record.ID
	}
	return writeTmpl.Execute(c.io, view)
}

// parseAssignments разбирает key=value
func parseAssignments(items []string) (map[string]string, error) {
	fields := make(map[string]string, len(items))
	for _, item := range items {
		key, value, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", item)
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields, nil
}
