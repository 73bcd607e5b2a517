package command

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"animehub/database"
	"animehub/internal/web/models"
	"animehub/internal/web/repository"
	"animehub/internal/web/service"

	"github.com/spf13/cobra"
)

func newAccountCmd(opts *options) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account management commands",
	}

	var password string
	createCmd := &cobra.Command{
		Use:   "create [username]",
		Short: "Create an account",
		Long: `Create an account in the account store. The password is taken from
--password or, when that is empty, from the first line of stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			if username == "" {
				return errors.New("username must not be empty")
			}

			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			db, err := database.Connect(opts.accountsDB, opts.logger, &models.Account{})
			if err != nil {
				return err
			}
			defer database.Close(db)

			accounts := service.NewAccountService(repository.NewAccountRepository(db))
			account, err := accounts.Register(cmd.Context(), username, password)
			if err != nil {
				if errors.Is(err, service.ErrDuplicateUsername) {
					return fmt.Errorf("username %q already exists", username)
				}
				return fmt.Errorf("failed to create account: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Account created successfully!")
			fmt.Fprintf(cmd.OutOrStdout(), "ID: %d\nUsername: %s\n", account.ID, account.Username)
			if account.Username == opts.special {
				fmt.Fprintln(cmd.OutOrStdout(), "Reviews by this account are listed first.")
			}
			return nil
		},
	}
	createCmd.Flags().StringVarP(&password, "password", "p", "", "account password (read from stdin when empty)")

	accountCmd.AddCommand(createCmd)
	return accountCmd
}
