package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storefront/pkg/storefront"
	"github.com/mesh-intelligence/storefront/pkg/types"
)

func newTenantCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "List and switch companies",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List configured tenants; the active one is marked",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withSession(cmd.Context(), func(s *storefront.Session) error {
					return a.tenantList(cmd, s)
				})
			},
		},
		&cobra.Command{
			Use:   "active",
			Short: "Show the active tenant",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withSession(cmd.Context(), func(s *storefront.Session) error {
					dir, err := s.Tenants()
					if err != nil {
						return err
					}
					return a.printTenant(cmd, dir.Active())
				})
			},
		},
		&cobra.Command{
			Use:   "use <id>",
			Short: "Make a tenant active",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withSession(cmd.Context(), func(s *storefront.Session) error {
					dir, err := s.Tenants()
					if err != nil {
						return err
					}
					if err := dir.SetActive(cmd.Context(), args[0]); err != nil {
						return err
					}
					return a.printTenant(cmd, dir.Active())
				})
			},
		},
		&cobra.Command{
			Use:   "drop <id>",
			Short: "Delete every record and the cart of a tenant",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withSession(cmd.Context(), func(s *storefront.Session) error {
					if err := s.DropTenant(cmd.Context(), args[0]); err != nil {
						return err
					}
					if a.jsonMode {
						return printJSON(cmd.OutOrStdout(), map[string]string{"dropped": args[0]})
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Dropped data of tenant %s\n", args[0])
					return nil
				})
			},
		},
	)
	return cmd
}

type tenantView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (a *app) tenantList(cmd *cobra.Command, s *storefront.Session) error {
	dir, err := s.Tenants()
	if err != nil {
		return err
	}
	active := dir.Active().ID
	var views []tenantView
	for _, t := range dir.List() {
		views = append(views, tenantView{ID: t.ID, Name: t.Name, Active: t.ID == active})
	}
	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), views)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME")
	for _, v := range views {
		mark := ""
		if v.Active {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", mark, v.ID, v.Name)
	}
	return tw.Flush()
}

func (a *app) printTenant(cmd *cobra.Command, t types.Tenant) error {
	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), tenantView{ID: t.ID, Name: t.Name, Active: true})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", t.Name, t.ID)
	return nil
}
