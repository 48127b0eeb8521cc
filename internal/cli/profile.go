package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	profileName string
	profileBio  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}

		fields := map[string]any{}
		if cmd.Flags().Changed("name") {
			fields["name"] = profileName
		}
		if cmd.Flags().Changed("bio") {
			fields["bio"] = profileBio
		}
		if len(fields) == 0 {
			return fmt.Errorf("没有要更新的字段，请使用 --name 或 --bio")
		}

		profile, err := e.session.UpdateProfile(cmd.Context(), fields)
		if err != nil {
			return err
		}
		fmt.Printf("已更新: %s\n", profile.DisplayName())
		return nil
	},
}

var avatarCmd = &cobra.Command{
	Use:   "avatar <image-file>",
	Short: "Upload a new avatar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := e.client.UploadAvatar(cmd.Context(), filepath.Base(args[0]), f); err != nil {
			return err
		}
		fmt.Println("头像已更新")
		return nil
	},
}

var accountDeleteYes bool

var accountDeleteCmd = &cobra.Command{
	Use:   "delete-account",
	Short: "Permanently delete your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}
		if !accountDeleteYes {
			return fmt.Errorf("此操作不可恢复，请加 --yes 确认")
		}
		if err := e.session.DeleteAccount(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("账号已删除")
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileCmd.Flags().StringVar(&profileBio, "bio", "", "Bio")
	accountDeleteCmd.Flags().BoolVar(&accountDeleteYes, "yes", false, "Confirm deletion")
	profileCmd.AddCommand(avatarCmd)
	rootCmd.AddCommand(profileCmd, accountDeleteCmd)
}
