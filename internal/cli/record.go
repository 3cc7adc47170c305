package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storefront/pkg/storefront"
	"github.com/mesh-intelligence/storefront/pkg/types"
)

var entityTypeNames = func() string {
	names := make([]string, len(types.EntityTypes))
	for i, t := range types.EntityTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}()

func newRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Manage the active tenant's records",
		Long: "Manage records of the active tenant.\n\nTypes: " + entityTypeNames + "\n\n" +
			"Fields are given as key=value (string) or key:=json (number, bool, object).",
	}

	var addData, updateData string

	add := &cobra.Command{
		Use:   "add <type> [key=value | key:=json]...",
		Short: "Add a record; id and fecha are assigned",
		Example: `  storefront record add clientes nombre="Empresa ABC S.A." estado=Activo
  storefront record add productos nombre=Mouse stock:=150 precio=89.99`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseType(args[0])
			if err != nil {
				return err
			}
			fields, err := parseFields(addData, args[1:])
			if err != nil {
				return err
			}
			return a.withRecords(cmd, func(recs types.Store) error {
				rec, err := recs.Add(cmd.Context(), t, fields)
				if err != nil {
					return err
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), rec)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", t, rec.ID())
				return nil
			})
		},
	}
	add.Flags().StringVar(&addData, "data", "", "record fields as a JSON object")

	update := &cobra.Command{
		Use:   "update <type> <id> [key=value | key:=json]...",
		Short: "Change fields of an existing record",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseType(args[0])
			if err != nil {
				return err
			}
			changes, err := parseFields(updateData, args[2:])
			if err != nil {
				return err
			}
			return a.withRecords(cmd, func(recs types.Store) error {
				rec, err := recs.Get(t, args[1])
				if err != nil {
					return err
				}
				for k, v := range changes {
					if k != types.FieldID {
						rec[k] = v
					}
				}
				if err := recs.Update(cmd.Context(), t, rec); err != nil {
					return err
				}
				if a.jsonMode {
					return printJSON(cmd.OutOrStdout(), rec)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", t, rec.ID())
				return nil
			})
		},
	}
	update.Flags().StringVar(&updateData, "data", "", "changed fields as a JSON object")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <type>",
			Short: "List records of one type",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := parseType(args[0])
				if err != nil {
					return err
				}
				return a.withRecords(cmd, func(recs types.Store) error {
					list, err := recs.List(t)
					if err != nil {
						return err
					}
					if a.jsonMode {
						return printJSON(cmd.OutOrStdout(), list)
					}
					return printRecords(cmd.OutOrStdout(), list)
				})
			},
		},
		&cobra.Command{
			Use:   "get <type> <id>",
			Short: "Show one record",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := parseType(args[0])
				if err != nil {
					return err
				}
				return a.withRecords(cmd, func(recs types.Store) error {
					rec, err := recs.Get(t, args[1])
					if err != nil {
						return err
					}
					if a.jsonMode {
						return printJSON(cmd.OutOrStdout(), rec)
					}
					return printRecord(cmd.OutOrStdout(), rec)
				})
			},
		},
		add,
		update,
		&cobra.Command{
			Use:   "delete <type> <id>",
			Short: "Delete a record; unknown ids are ignored",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := parseType(args[0])
				if err != nil {
					return err
				}
				return a.withRecords(cmd, func(recs types.Store) error {
					if err := recs.Delete(cmd.Context(), t, args[1]); err != nil {
						return err
					}
					if a.jsonMode {
						return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[1]})
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", t, args[1])
					return nil
				})
			},
		},
	)
	return cmd
}

// withRecords runs fn against the record store of a fresh session.
func (a *app) withRecords(cmd *cobra.Command, fn func(recs types.Store) error) error {
	return a.withSession(cmd.Context(), func(s *storefront.Session) error {
		recs, err := s.Records()
		if err != nil {
			return err
		}
		return fn(recs)
	})
}

func parseType(name string) (types.EntityType, error) {
	t, err := types.ParseEntityType(name)
	if err != nil {
		return "", fmt.Errorf("%w (valid: %s)", err, entityTypeNames)
	}
	return t, nil
}

// parseFields builds a record from a JSON object followed by key=value and
// key:=json arguments; later values win.
func parseFields(data string, args []string) (types.Record, error) {
	rec := types.Record{}
	if data != "" {
		if err := decodeJSON(data, &rec); err != nil {
			return nil, usagef("invalid --data: %v", err)
		}
	}
	for _, arg := range args {
		if key, raw, ok := strings.Cut(arg, ":="); ok && key != "" && !strings.Contains(key, "=") {
			var v any
			if err := decodeJSON(raw, &v); err != nil {
				return nil, usagef("invalid JSON for %s: %v", key, err)
			}
			rec[key] = v
			continue
		}
		key, val, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, usagef("expected key=value or key:=json, got %q", arg)
		}
		rec[key] = val
	}
	return rec, nil
}

// decodeJSON keeps numbers as json.Number so they are stored verbatim.
func decodeJSON(s string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	return dec.Decode(v)
}
