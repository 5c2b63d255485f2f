package cli

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newNewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Read published news",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List news articles, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/news"
			if limit > 0 {
				path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
			}

			var result []NewsArticle
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "Maximum number of articles")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a news article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result NewsArticle
			if err := client.Get(cmd.Context(), "/api/news/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Read the team roster",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player
			if err := client.Get(cmd.Context(), "/api/players", &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := client.Get(cmd.Context(), "/api/players/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Read the store catalogue",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List products in stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Product
			if err := client.Get(cmd.Context(), "/api/products", &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Product
			if err := client.Get(cmd.Context(), "/api/products/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}
