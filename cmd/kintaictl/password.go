package main

import (
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newHashPasswordCmd() *cobra.Command {
	var password, code string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print the bcrypt hash of a password for seeding an employee row",
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs validator.ValidationErrors
			errs.Add("employee_code", validator.CheckEmployeeCode(code))
			errs.Add("password", validator.CheckPassword(password, code))
			if err := errs.Err(); err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Employee code the password belongs to")
	cmd.Flags().StringVar(&password, "password", "", "Plain-text password")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
