package cli

import (
	"fmt"

	"github.com/sharespace/backend/internal/cli/api"
	"github.com/sharespace/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery <space-slug>",
	Short: "List the approved photos of a space",
	Long: `Show the public gallery of a space. Private spaces require login
and view access.

  sharespace gallery my-wedding
  sharespace gallery my-wedding --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := args[0]

		var resp api.Response[[]api.Photo]
		if err := apiClient.Get("/public/spaces/"+slug+"/photos", nil, &resp); err != nil {
			return fmt.Errorf("fetching gallery for %s: %w", slug, err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}

		if len(resp.Data) == 0 {
			fmt.Println("No approved photos yet.")
			return nil
		}

		w := 0
		for _, p := range resp.Data {
			if len(p.Filename) > w {
				w = len(p.Filename)
			}
		}
		for _, p := range resp.Data {
			fmt.Printf("%-*s  %s\n", w, p.Filename, p.URL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(galleryCmd)
}
