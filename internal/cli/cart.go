package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storefront/pkg/types"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the active tenant's cart",
	}

	// mutation builds a subcommand that applies op and then prints the cart.
	mutation := func(use, short string, args cobra.PositionalArgs, op func(cmd *cobra.Command, recs types.Store, args []string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withRecords(cmd, func(recs types.Store) error {
					if err := op(cmd, recs, args); err != nil {
						return err
					}
					return a.printCart(cmd, recs)
				})
			},
		}
	}

	cmd.AddCommand(
		mutation("show", "Show cart contents", cobra.NoArgs,
			func(*cobra.Command, types.Store, []string) error { return nil }),
		mutation("add <productId>", "Add one unit of a product", cobra.ExactArgs(1),
			func(cmd *cobra.Command, recs types.Store, args []string) error {
				return recs.AddToCart(cmd.Context(), args[0])
			}),
		mutation("remove <productId>", "Remove one unit of a product", cobra.ExactArgs(1),
			func(cmd *cobra.Command, recs types.Store, args []string) error {
				return recs.RemoveFromCart(cmd.Context(), args[0])
			}),
		mutation("clear", "Empty the cart", cobra.NoArgs,
			func(cmd *cobra.Command, recs types.Store, _ []string) error {
				return recs.ClearCart(cmd.Context())
			}),
		&cobra.Command{
			Use:   "count",
			Short: "Print the total number of units in the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withRecords(cmd, func(recs types.Store) error {
					n, err := recs.CartCount()
					if err != nil {
						return err
					}
					if a.jsonMode {
						return printJSON(cmd.OutOrStdout(), map[string]int{"count": n})
					}
					fmt.Fprintln(cmd.OutOrStdout(), n)
					return nil
				})
			},
		},
	)
	return cmd
}

func (a *app) printCart(cmd *cobra.Command, recs types.Store) error {
	cart, err := recs.Cart()
	if err != nil {
		return err
	}
	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), cart)
	}
	if len(cart) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty.")
		return nil
	}

	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tQTY")
	for _, id := range ids {
		fmt.Fprintf(tw, "%s\t%d\n", id, cart[id])
	}
	fmt.Fprintf(tw, "TOTAL\t%d\n", cart.Count())
	return tw.Flush()
}
