package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/photofold/photofold/internal/cli/output"
	"github.com/photofold/photofold/internal/cli/prompt"
	"github.com/photofold/photofold/pkg/config"
	"github.com/photofold/photofold/pkg/library/models"
	"github.com/photofold/photofold/pkg/library/store"
)

var (
	userAddRole  string
	userAddEmail string
	deleteForce  bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users (add, delete, list, passwd)",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a new user (prompts for password)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserAdd,
}

var userDeleteCmd = &cobra.Command{
	Use:     "delete <username>",
	Aliases: []string{"remove"},
	Short:   "Delete a user",
	Args:    cobra.ExactArgs(1),
	RunE:    runUserDelete,
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all users",
	Args:    cobra.NoArgs,
	RunE:    runUserList,
}

var userPasswdCmd = &cobra.Command{
	Use:     "passwd <username>",
	Aliases: []string{"password"},
	Short:   "Change a user's password",
	Args:    cobra.ExactArgs(1),
	RunE:    runUserPasswd,
}

func init() {
	userAddCmd.Flags().StringVar(&userAddRole, "role", "user", "User role (user or admin)")
	userAddCmd.Flags().StringVar(&userAddEmail, "email", "", "User email address")
	userDeleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Skip confirmation prompt")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userPasswdCmd)
}

// openStore loads the config and opens the library database for a CLI
// command. The caller must Close the returned store.
func openStore() (*store.GORMStore, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return store.New(&cfg.Database)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	username := args[0]

	if !models.UserRole(userAddRole).IsValid() {
		return fmt.Errorf("invalid role %q (valid: user, admin)", userAddRole)
	}

	password, err := prompt.NewPassword()
	if err != nil {
		return err
	}

	hash, err := store.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	id, err := s.CreateUser(cmd.Context(), &models.User{
		Username:     username,
		PasswordHash: hash,
		Email:        userAddEmail,
		Role:         userAddRole,
		Enabled:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User %q created (id: %s, role: %s)\n", username, id, userAddRole)
	return nil
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	username := args[0]

	if !deleteForce {
		ok, err := prompt.Confirm(fmt.Sprintf("Delete user %q", username), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted")
			return nil
		}
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.DeleteUser(cmd.Context(), username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("User %q deleted\n", username)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	users, err := s.ListUsers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	table := output.NewTableData("USERNAME", "ROLE", "EMAIL", "ENABLED", "LAST LOGIN")
	for _, u := range users {
		lastLogin := "never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format(time.RFC3339)
		}
		enabled := "yes"
		if !u.Enabled {
			enabled = "no"
		}
		table.AddRow(u.Username, u.Role, u.Email, enabled, lastLogin)
	}

	return output.PrintTable(os.Stdout, table)
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	username := args[0]

	password, err := prompt.NewPassword()
	if err != nil {
		return err
	}

	hash, err := store.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.UpdatePassword(cmd.Context(), username, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	fmt.Printf("Password updated for %q\n", username)
	return nil
}
