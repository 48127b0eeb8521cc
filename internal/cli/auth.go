package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/format"
)

var (
	loginUsername string
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and cache the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		password := loginPassword
		if password == "" {
			fmt.Fprint(os.Stderr, "密码: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			password = strings.TrimSpace(line)
		}

		if err := e.session.Login(cmd.Context(), api.Credentials{
			Username: loginUsername,
			Email:    loginEmail,
			Password: password,
		}); err != nil {
			return err
		}

		user := e.session.User()
		fmt.Printf("已登录: %s\n", user.DisplayName())
		if expiry, ok := e.session.TokenExpiry(); ok {
			fmt.Printf("令牌有效期至 %s\n", format.BeijingTime(expiry.UTC().Format("2006-01-02T15:04:05")))
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the cached session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		e.session.Logout()
		fmt.Println("已退出登录")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.requireLogin(); err != nil {
			return err
		}
		profile, err := e.client.FetchProfile(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("ID:   %s\n", profile.ID())
		fmt.Printf("用户名: %s\n", profile.Username())
		if email := profile.Email(); email != "" {
			fmt.Printf("邮箱:  %s\n", email)
		}
		return nil
	},
}

var (
	registerEmail string
	registerCode  string
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stderr, "密码: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		password := strings.TrimSpace(line)

		if _, err := e.session.Register(cmd.Context(), api.RegisterRequest{
			Username: args[0],
			Email:    registerEmail,
			Password: password,
			Code:     registerCode,
		}); err != nil {
			return err
		}
		if err := e.session.Login(cmd.Context(), api.Credentials{
			Username: args[0],
			Password: password,
		}); err != nil {
			return err
		}
		fmt.Println("注册成功，已登录")
		return nil
	},
}

var sendCodeCmd = &cobra.Command{
	Use:   "send-code <email>",
	Short: "Send a verification code to an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.client.SendVerificationCode(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("验证码已发送")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Email address")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")

	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Email address")
	registerCmd.Flags().StringVar(&registerCode, "code", "", "Email verification code")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd, sendCodeCmd)
}
