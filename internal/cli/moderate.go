package cli

import (
	"fmt"

	"github.com/sharespace/backend/internal/cli/api"
	"github.com/sharespace/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	flagApprove string
	flagReject  string
)

var moderateCmd = &cobra.Command{
	Use:   "moderate <space-slug>",
	Short: "Review and approve guest photos",
	Long: `List every photo in a space with its approval status, or flip a
single photo's status by ID.

  sharespace moderate my-wedding
  sharespace moderate my-wedding --approve 550e8400-...
  sharespace moderate my-wedding --reject 550e8400-...`,
	Args: cobra.ExactArgs(1),
	RunE: runModerate,
}

func init() {
	moderateCmd.Flags().StringVar(&flagApprove, "approve", "", "Photo ID to approve")
	moderateCmd.Flags().StringVar(&flagReject, "reject", "", "Photo ID to reject")
	rootCmd.AddCommand(moderateCmd)
}

func runModerate(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if flagApprove != "" && flagReject != "" {
		return fmt.Errorf("--approve and --reject are mutually exclusive")
	}

	if flagApprove != "" || flagReject != "" {
		photoID := flagApprove
		approved := true
		if flagReject != "" {
			photoID = flagReject
			approved = false
		}

		var resp api.Response[api.Photo]
		body := map[string]bool{"approved": approved}
		if err := apiClient.Put("/photos/"+photoID+"/approval", body, &resp); err != nil {
			return fmt.Errorf("updating photo %s: %w", photoID, err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}

		status := "rejected"
		if resp.Data.Approved {
			status = "approved"
		}
		fmt.Printf("Photo %s %s\n", resp.Data.Filename, status)
		return nil
	}

	slug := args[0]
	var resp api.Response[[]api.Photo]
	if err := apiClient.Get("/spaces/"+slug+"/photos", nil, &resp); err != nil {
		return fmt.Errorf("listing photos for %s: %w", slug, err)
	}

	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}

	output.PhotoTable(resp.Data)
	return nil
}
