// Profile commands for the pantry CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the user profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the user profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		profile := box.Profile.Get()
		if flagJSON {
			return printJSON(profile)
		}

		fmt.Printf("Username: %s\n", profile.Username)
		if profile.Bio != "" {
			fmt.Printf("Bio:      %s\n", profile.Bio)
		}
		if profile.Avatar != "" {
			fmt.Printf("Avatar:   %s\n", truncate(profile.Avatar, 60))
		}
		return nil
	},
}

var (
	profileUsername string
	profileAvatar   string
	profileBio      string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Set updates the given profile fields, keeping the rest.

Example:
  pantry profile set --username marisol
  pantry profile set --bio "Weeknight cook." --avatar https://example.com/m.png`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		profile := box.Profile.Get()
		flags := cmd.Flags()
		if flags.Changed("username") {
			profile.Username = profileUsername
		}
		if flags.Changed("avatar") {
			profile.Avatar = profileAvatar
		}
		if flags.Changed("bio") {
			profile.Bio = profileBio
		}

		if err := box.Profile.Save(profile); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		if flagJSON {
			return printJSON(profile)
		}
		fmt.Println("Profile saved")
		return nil
	},
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard unsaved profile edits",
	Long:  "Reset discards the pending profile edit draft; the profile returns to its last saved state.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		box, err := openBox()
		if err != nil {
			return err
		}
		defer box.Close()

		box.Profile.Reset()
		fmt.Println("Profile edits discarded")
		return nil
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileUsername, "username", "", "display name")
	profileSetCmd.Flags().StringVar(&profileAvatar, "avatar", "", "avatar URL or data URI")
	profileSetCmd.Flags().StringVar(&profileBio, "bio", "", "short bio")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileResetCmd)
}
