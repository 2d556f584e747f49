// internal/cli/create_admin.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajoker/foodgram-backend/internal/database"
	"github.com/javajoker/foodgram-backend/internal/repository"
	"github.com/javajoker/foodgram-backend/internal/services"
	"github.com/javajoker/foodgram-backend/internal/utils"
)

type createAdminOptions struct {
	email     string
	username  string
	firstName string
	lastName  string
	password  string
}

func NewCreateAdminCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &createAdminOptions{}

	cmd := &cobra.Command{
		Use:          "create-admin",
		Short:        "Create an administrator account",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(rootOpts)
			if err != nil {
				return err
			}
			defer database.Close(db)

			auth := services.NewAuthService(repository.NewGormStore(db), rootOpts.Config)

			password := opts.password
			generated := password == ""
			if generated {
				if password, err = utils.GenerateRandomString(16); err != nil {
					return fmt.Errorf("failed to generate password: %w", err)
				}
			}

			admin, err := auth.CreateAdmin(cmd.Context(), &services.RegisterRequest{
				Email:     opts.email,
				Username:  opts.username,
				FirstName: opts.firstName,
				LastName:  opts.lastName,
				Password:  password,
			})
			if err != nil {
				return err
			}

			count, err := auth.AdminCount(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Admin %s created (%d admin accounts total)\n", admin.Email, count)
			if generated {
				fmt.Fprintf(out, "Generated password: %s\n", password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "admin email")
	cmd.Flags().StringVar(&opts.username, "username", "admin", "admin username")
	cmd.Flags().StringVar(&opts.firstName, "first-name", "System", "first name")
	cmd.Flags().StringVar(&opts.lastName, "last-name", "Administrator", "last name")
	cmd.Flags().StringVar(&opts.password, "password", "", "password, generated when empty")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
