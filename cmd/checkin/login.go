package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmafb/checkin/internal/storage"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store a session",
	Long: `Authenticate against the DMAFB API and store the resulting session
locally. The stored token is used by the interactive interface and the other
subcommands until it expires or you log in again.

The password is read from the --password flag, or from stdin when the flag
is omitted.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (read from stdin when omitted)")
	_ = loginCmd.MarkFlagRequired("email")
}

func runLogin(cmd *cobra.Command, args []string) error {
	password := loginPassword
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	rt, closeAll, err := setup()
	if err != nil {
		return err
	}
	defer closeAll()

	resp, err := rt.client.Login(cmd.Context(), loginEmail, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	sess := storage.Session{
		Token:   resp.AccessToken,
		Profile: resp.Profile,
		Email:   loginEmail,
	}
	if err := rt.store.SaveSession(sess); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	rt.logger.Info("logged in", zap.String("user_id", resp.Profile.UserID))
	fmt.Printf("Logged in as %s (%s)\n", resp.Profile.FullName(), resp.Profile.CompanyName)
	return nil
}
