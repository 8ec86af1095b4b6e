package cli

import (
	"fmt"
	"os"

	"github.com/sharespace/backend/internal/cli/api"
	"github.com/sharespace/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	flagDate        string
	flagDescription string
	flagPrivate     bool
	flagCover       string
	flagCohostEmail string
)

var createSpaceCmd = &cobra.Command{
	Use:   "create-space <name>",
	Short: "Create a new photo space",
	Long: `Create a space. The URL slug is derived from the name.

  sharespace create-space "Sarah & Michael's Wedding"
  sharespace create-space "Company Retreat" --private --date 2026-10-04
  sharespace create-space "Birthday" --cover cover.jpg --cohost-email friend@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runCreateSpace,
}

func init() {
	createSpaceCmd.Flags().StringVar(&flagDate, "date", "", "Event date (free-form, e.g. 2026-10-04)")
	createSpaceCmd.Flags().StringVar(&flagDescription, "description", "", "Space description")
	createSpaceCmd.Flags().BoolVar(&flagPrivate, "private", false, "Hide the space from the public directory")
	createSpaceCmd.Flags().StringVar(&flagCover, "cover", "", "Path to a cover image")
	createSpaceCmd.Flags().StringVar(&flagCohostEmail, "cohost-email", "", "Email of a co-host to invite")
	rootCmd.AddCommand(createSpaceCmd)
}

func runCreateSpace(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	fields := map[string]string{"name": args[0]}
	if flagDate != "" {
		fields["date"] = flagDate
	}
	if flagDescription != "" {
		fields["description"] = flagDescription
	}
	if flagPrivate {
		fields["isPublic"] = "false"
	}
	if flagCohostEmail != "" {
		fields["cohostEmail"] = flagCohostEmail
	}

	var covers []string
	if flagCover != "" {
		if _, err := os.Stat(flagCover); err != nil {
			return fmt.Errorf("cover image: %w", err)
		}
		covers = append(covers, flagCover)
	}

	var resp api.Response[api.CreateSpaceResponse]
	if err := apiClient.UploadFiles("/spaces", "cover", covers, fields, &resp); err != nil {
		return fmt.Errorf("creating space: %w", err)
	}

	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}

	fmt.Printf("Created space %s (slug: %s)\n", resp.Data.Space.Name, resp.Data.Space.Slug)
	if resp.Data.CohostWarning != "" {
		fmt.Printf("Warning: %s\n", resp.Data.CohostWarning)
	}
	return nil
}
