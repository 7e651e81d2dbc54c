package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmafb/checkin/internal/auth"
	"github.com/dmafb/checkin/internal/storage"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in profile",
	RunE:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	rt, closeAll, err := setup()
	if err != nil {
		return err
	}
	defer closeAll()

	sess, err := rt.store.LoadSession()
	if err != nil {
		if errors.Is(err, storage.ErrNoSession) {
			return fmt.Errorf("not logged in, run 'checkin login' first")
		}
		return err
	}

	fmt.Printf("Name:     %s\n", sess.Profile.FullName())
	fmt.Printf("Email:    %s\n", sess.Email)
	fmt.Printf("Company:  %s\n", sess.Profile.CompanyName)
	fmt.Printf("Role:     %s\n", sess.Profile.Role)
	fmt.Printf("User ID:  %s\n", sess.Profile.UserID)

	if expiry, ok := auth.TokenExpiry(sess.Token); ok {
		state := "valid"
		if time.Now().After(expiry) {
			state = "EXPIRED"
		}
		fmt.Printf("Session:  %s (%s)\n", expiry.Format(time.RFC1123), state)
	} else {
		fmt.Println("Session:  token carries no expiry")
	}
	return nil
}
