package cli

import (
	"fmt"
	"os"

	"github.com/sharespace/backend/internal/cli/api"
	"github.com/sharespace/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <space-slug> <file>...",
	Short: "Upload photos to a space",
	Long: `Upload one or more photos to a space. Files are processed one at a
time on the server; the report lists the outcome per file.

  sharespace upload my-wedding photo.jpg
  sharespace upload my-wedding *.jpg`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	slug := args[0]
	files := args[1:]

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("stat %s: %w", f, err)
		}
	}

	var resp api.Response[api.UploadReport]
	if err := apiClient.UploadFiles("/spaces/"+slug+"/photos", "files", files, nil, &resp); err != nil {
		return fmt.Errorf("uploading to %s: %w", slug, err)
	}

	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}

	for _, r := range resp.Data.Rejected {
		fmt.Printf("  Rejected: %s (%s)\n", r.Filename, r.Reason)
	}
	for _, r := range resp.Data.Results {
		if r.State == "success" {
			fmt.Printf("  Uploaded: %s\n", r.Filename)
		} else {
			fmt.Printf("  Failed: %s (%s)\n", r.Filename, r.Error)
		}
	}

	fmt.Printf("\nDone: %d uploaded, %d failed, %d rejected\n",
		resp.Data.Succeeded, resp.Data.Failed, len(resp.Data.Rejected))
	if resp.Data.Failed > 0 {
		return fmt.Errorf("%d file(s) failed to upload", resp.Data.Failed)
	}
	return nil
}
