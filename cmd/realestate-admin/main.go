package main

import (
	"fmt"
	"os"
	"strings"

	"realestate-server/confs"
	"realestate-server/db"
	"realestate-server/dtos"
	"realestate-server/entities"
	"realestate-server/logger"
	"realestate-server/repositories"
	"realestate-server/storage"
	"realestate-server/usecases"
	"realestate-server/validation"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "realestate-admin",
		Short:         "Operator tasks for the real estate server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init("realestate-admin", "warn")
		},
	}
	root.AddCommand(
		newMigrateCommand(),
		newCreateUserCommand(),
		newStorageCheckCommand(),
	)
	return root
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := confs.LoadConfig()
			if err != nil {
				return err
			}
			// Connect migrates on open
			if _, err := db.Connect(cfg.Database); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("✓ Schema is up to date"))
			return nil
		},
	}
}

func newCreateUserCommand() *cobra.Command {
	req := dtos.CreateUserRequest{}
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a back-office account",
		Example: "  realestate-admin create-user --name \"Ana Lima\" --email ana@example.com --password s3cretpass\n" +
			"  realestate-admin create-user --name Ops --email ops@example.com --password s3cretpass --role admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Role = strings.ToLower(strings.TrimSpace(req.Role))
			if err := validation.Struct(&req); err != nil {
				return fmt.Errorf("%s", validation.Message(err))
			}

			cfg, err := confs.LoadConfig()
			if err != nil {
				return err
			}
			database, err := db.Connect(cfg.Database)
			if err != nil {
				return err
			}

			user, err := usecases.NewUserUseCase(repositories.NewUserPgRepository(database)).CreateUser(&req)
			if err != nil {
				return err
			}

			fmt.Println(successStyle.Render("✓ User created"))
			printField("ID", fmt.Sprint(user.ID))
			printField("Email", user.Email)
			printField("Role", user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Login email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Initial password (min 8 characters)")
	cmd.Flags().StringVar(&req.Role, "role", entities.RoleAgent, "Role (admin|agent)")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Contact phone")
	return cmd
}

func newStorageCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "storage-check",
		Short: "Verify the media bucket is reachable, creating it if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := confs.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Endpoint == "" {
				return fmt.Errorf("STORAGE_ENDPOINT is not set")
			}

			fmt.Println(titleStyle.Render("Media storage"))
			printField("Endpoint", cfg.Storage.Endpoint)
			printField("Bucket", cfg.Storage.Bucket)

			store, err := storage.Open(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			printField("Public URL", store.URL(""))
			fmt.Println(successStyle.Render("✓ Bucket is reachable"))
			return nil
		},
	}
}

func printField(label, value string) {
	fmt.Printf("%s %s\n", labelStyle.Render(label+":"), value)
}
