package cli

import (
	"fmt"
	"net/url"

	"github.com/sharespace/backend/internal/cli/api"
	"github.com/sharespace/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	flagCohost bool
	flagPublic bool
)

var spacesCmd = &cobra.Command{
	Use:   "spaces [slug]",
	Short: "List spaces, or show one by slug",
	Long: `List your spaces, the spaces you co-host, or the public directory.

  sharespace spaces                 Spaces you own
  sharespace spaces --cohost        Spaces you co-host
  sharespace spaces --public        Public directory (no login needed)
  sharespace spaces my-wedding      Show one space by slug`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return showSpace(args[0])
		}

		if flagPublic {
			var resp api.Response[[]api.Space]
			if err := apiClient.Get("/public/spaces", nil, &resp); err != nil {
				return fmt.Errorf("listing public spaces: %w", err)
			}
			return printSpaces(resp.Data)
		}

		if err := requireAuth(); err != nil {
			return err
		}

		params := url.Values{}
		if flagCohost {
			params.Set("filter", "cohost")
		}

		var resp api.Response[[]api.Space]
		if err := apiClient.Get("/spaces", params, &resp); err != nil {
			return fmt.Errorf("listing spaces: %w", err)
		}
		return printSpaces(resp.Data)
	},
}

func init() {
	spacesCmd.Flags().BoolVar(&flagCohost, "cohost", false, "List spaces you co-host instead of spaces you own")
	spacesCmd.Flags().BoolVar(&flagPublic, "public", false, "List the public space directory")
	rootCmd.AddCommand(spacesCmd)
}

func showSpace(slug string) error {
	var resp api.Response[api.Space]
	if err := apiClient.Get("/public/spaces/"+slug, nil, &resp); err != nil {
		return fmt.Errorf("fetching space %s: %w", slug, err)
	}

	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}

	output.SpaceDetail(resp.Data)
	return nil
}

func printSpaces(spaces []api.Space) error {
	if flagJSON {
		output.JSON(spaces)
		return nil
	}
	output.SpaceTable(spaces)
	return nil
}
