package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"seeker/internal/db"
	"seeker/internal/models"
)

var profile models.Profile

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register with the backend and store your user id",
	Long: `Submit the intake profile to the backend. The returned user id is stored
locally and used by every other command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(profile.Name) == "" || strings.TrimSpace(profile.Email) == "" {
			return fmt.Errorf("--name and --email are required")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		userID, err := a.client.Signup(cmd.Context(), profile)
		if err != nil {
			a.logger.WithError(err).Error("signup failed")
			return fmt.Errorf("signup failed: %w", err)
		}
		if err := db.SaveUserID(a.db, userID, time.Now().Unix()); err != nil {
			return fmt.Errorf("failed to store user id: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s Registered as user %s\n", titleStyle.Render("✓"), idStyle.Render(userID.String()))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored user id",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		if err := db.ClearUserID(a.db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

func init() {
	f := signupCmd.Flags()
	f.StringVar(&profile.Name, "name", "", "Your full name")
	f.StringVar(&profile.Email, "email", "", "Work email")
	f.StringVar(&profile.Company, "company", "", "Company name")
	f.StringVar(&profile.Title, "title", "", "Job title")
	f.StringVar(&profile.Industry, "industry", "", "Industry")
	f.StringVar(&profile.CompanySize, "company-size", "", "Company size, e.g. 11-50")

	rootCmd.AddCommand(signupCmd, logoutCmd)
}
