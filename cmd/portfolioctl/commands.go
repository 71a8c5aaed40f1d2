package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	apperrors "github.com/jrsteele09/go-portfolio-cms/internal/errors"
	"github.com/jrsteele09/go-portfolio-cms/sections"
	"github.com/spf13/cobra"
)

func newSetPasswordCmd(opts *rootOptions) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Set the password of an admin identity, creating it if needed",
		Long: `Sets the password of the named admin identity. When --password is omitted
the password is read from the first line of stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			if password == "" {
				if password, err = readLine(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if minLen := svc.config.GetMinPasswordLength(); utf8.RuneCountInString(password) < minLen {
				return apperrors.Validationf("password must be at least %d characters", minLen)
			}

			ctx := cmd.Context()
			updated, err := svc.credentials.RotatePassword(ctx, username, password)
			if err != nil {
				return err
			}
			if updated {
				fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", username)
				return nil
			}
			if err := svc.credentials.CreateIdentity(ctx, username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "admin", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password (read from stdin when empty)")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored section as one JSON backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			snapshot, err := svc.content.ExportAll(cmd.Context())
			if err != nil {
				return err
			}
			body, err := snapshot.MarshalIndent()
			if err != nil {
				return err
			}
			body = append(body, '\n')

			if outPath == "" || outPath == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(outPath, body, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d sections to %s\n", len(snapshot), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout when empty or -)")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Restore sections from a JSON backup",
		Long: `Restores sections from a backup produced by export or GET /api/export.
Unrecognized section names and non-object values are skipped. Reads stdin when
no file is given or the file is -.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			value, err := sections.DecodeValue(in)
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}
			snapshot, ok := sections.AsDocument(value)
			if !ok {
				return apperrors.Validationf("backup must be a JSON object")
			}

			svc, err := openServices(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			imported, err := svc.content.ImportAll(cmd.Context(), snapshot)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d sections\n", imported)
			return nil
		},
	}
	return cmd
}

// newMigrateCmd opens the database, which applies any pending migrations, and reports the result.
func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database or bring its schema up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer svc.Close()
			if err := svc.store.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
