package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/dandelion/pkg/configs"
	ctxPkg "github.com/yeisme/dandelion/pkg/context"
	"github.com/yeisme/dandelion/pkg/internal/service"
	"github.com/yeisme/dandelion/pkg/internal/storage"
)

var (
	// userPassword 来自 --password，空则从标准输入读取.
	userPassword string

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "User management commands",
	}

	userAddCmd = &cobra.Command{
		Use:   "add <username>",
		Short: "create a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			if username == "" {
				return fmt.Errorf("username must not be empty")
			}

			password := userPassword
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")

				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}

				password = strings.TrimRight(line, "\r\n")
			}

			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			if err := configs.InitConfig(configPath); err != nil {
				return err
			}

			mgr, err := storage.Init(context.Background())
			if err != nil {
				return err
			}
			defer mgr.Close()

			ctx := ctxPkg.WithStorageManager(context.Background(), mgr)

			id, err := service.NewUserService(ctx).Register(ctx, username, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", username, id)

			return nil
		},
	}
)

// registerUserCommands 注册用户管理命令.
func registerUserCommands() {
	rootCmd.AddCommand(userCmd)

	userAddCmd.Flags().StringVarP(&userPassword, "password", "p", "", "password for the new user (prompted if omitted)")
	userCmd.AddCommand(userAddCmd)
}
