package cli

import (
	"fmt"

	"github.com/sharespace/backend/internal/cli/api"
	"github.com/sharespace/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var setNameCmd = &cobra.Command{
	Use:   "set-name <display-name>",
	Short: "Change your display name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		var resp api.Response[api.User]
		body := map[string]string{"displayName": args[0]}
		if err := apiClient.Put("/auth/me", body, &resp); err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}

		fmt.Printf("Display name updated to %q\n", resp.Data.DisplayName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setNameCmd)
}
