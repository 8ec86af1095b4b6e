package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sharespace/backend/internal/cli/api"
	"github.com/sharespace/backend/internal/cli/cliconfig"
	"github.com/spf13/cobra"
)

var (
	flagEmail    string
	flagPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with your ShareSpace server",
	Long: `Authenticate with an email and password.

  sharespace login -e you@example.com
  sharespace login -e you@example.com -p secret

When --password is omitted it is read from stdin.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&flagEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "Account password (prompted if omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := flagEmail
	if email == "" {
		return fmt.Errorf("--email is required")
	}

	password := flagPassword
	if password == "" {
		fmt.Print("Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	client := api.NewClient(cfg.ServerURL, "")
	var resp api.Response[api.LoginResponse]
	body := map[string]string{"email": email, "password": password}
	if err := client.Post("/auth/login", body, &resp); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			return fmt.Errorf("invalid email or password")
		}
		return fmt.Errorf("logging in: %w", err)
	}

	cfg.Token = resp.Data.Token
	if err := cliconfig.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", resp.Data.User.DisplayName, resp.Data.User.Email)
	return nil
}
