package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/prompt-vault/internal/adapter/postgres"
	"github.com/heartmarshall/prompt-vault/internal/adapter/s3backup"
	"github.com/heartmarshall/prompt-vault/internal/app"
	"github.com/heartmarshall/prompt-vault/internal/cache"
	"github.com/heartmarshall/prompt-vault/internal/config"
	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/internal/service/backup"
	"github.com/heartmarshall/prompt-vault/pkg/ctxutil"
)

// localVault is a vault opened by the operator. Store access implies admin
// rights, so every call runs as admin.
type localVault struct {
	*app.Vault
	cfg    *config.Config
	closer io.Closer
}

func openVault(ctx context.Context) (context.Context, *localVault, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, nil, err
	}
	logger, closer := app.NewLogger(cfg.Log)

	v, err := app.Open(ctx, cfg, logger)
	if err != nil {
		closer.Close()
		return ctx, nil, err
	}

	ctx = ctxutil.WithCaller(ctx, domain.Admin)
	if _, err := v.Catalog.Refresh(ctx); err != nil {
		v.Close()
		closer.Close()
		return ctx, nil, fmt.Errorf("load catalog: %w", err)
	}

	return ctx, &localVault{Vault: v, cfg: cfg, closer: closer}, nil
}

func (v *localVault) Close() {
	v.Vault.Close()
	v.closer.Close()
}

func (v *localVault) bucket(ctx context.Context) (*s3backup.Store, error) {
	if !v.cfg.Backup.S3.Enabled() {
		return nil, errors.New("backup.s3.bucket is not configured")
	}
	return s3backup.New(ctx, v.cfg.Backup.S3)
}

func printStatus(w io.Writer, st cache.Status) {
	fmt.Fprintf(w, "categories: %s\nprompts:    %s\n", st.Categories, st.Prompts)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Store.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate requires the %s store driver", config.DriverPostgres)
			}
			logger, closer := app.NewLogger(cfg.Log)
			defer closer.Close()

			n, err := postgres.Migrate(cmd.Context(), cfg.Database.DSN, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations\n", n)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the bundled categories and prompts to the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, v, err := openVault(cmd.Context())
			if err != nil {
				return err
			}
			defer v.Close()

			st, err := v.Catalog.SyncSeed(ctx)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var (
		toS3 bool
		out  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export categories and prompts to a backup document",
		Long: `Export writes a backup document. By default it is stored in the
configured backup directory. --out writes it to a file ("-" for stdout),
--s3 uploads it to the configured bucket.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, v, err := openVault(cmd.Context())
			if err != nil {
				return err
			}
			defer v.Close()

			if toS3 {
				bucket, err := v.bucket(ctx)
				if err != nil {
					return err
				}
				name, err := v.Backup.Archive(ctx, bucket)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s to s3://%s\n", name, v.cfg.Backup.S3.Bucket)
				return nil
			}

			if out == "" {
				name, err := v.Backup.Archive(ctx, backup.FileSink{Dir: v.cfg.Backup.Dir})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s to %s\n", name, v.cfg.Backup.Dir)
				return nil
			}

			doc, err := v.Backup.Export(ctx)
			if err != nil {
				return err
			}
			data, err := backup.Encode(doc)
			if err != nil {
				return err
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			return os.WriteFile(out, data, 0o640)
		},
	}

	cmd.Flags().BoolVar(&toS3, "s3", false, "upload to the configured S3 bucket")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of the backup directory")
	cmd.MarkFlagsMutuallyExclusive("s3", "out")
	return cmd
}

func importCmd() *cobra.Command {
	var s3Key string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a backup document",
		Long: `Import upserts the categories and prompts of a backup document and
reloads the catalog. Give a local file, or --s3 with the object name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (s3Key != "") {
				return errors.New("give either a file or --s3 <name>")
			}

			ctx, v, err := openVault(cmd.Context())
			if err != nil {
				return err
			}
			defer v.Close()

			var res *backup.ImportResult
			if s3Key != "" {
				bucket, berr := v.bucket(ctx)
				if berr != nil {
					return berr
				}
				res, err = v.Backup.Fetch(ctx, bucket, s3Key)
			} else {
				data, rerr := os.ReadFile(args[0])
				if rerr != nil {
					return rerr
				}
				res, err = v.Backup.Import(ctx, data)
			}
			if err != nil && !errors.Is(err, domain.ErrPersist) {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "imported %d categories and %d prompts\n", res.Categories, res.Prompts)
			printStatus(w, res.Status)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&s3Key, "s3", "", "import this object from the configured S3 bucket")
	return cmd
}

func backupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List backups in the configured S3 bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Backup.S3.Enabled() {
				return errors.New("backup.s3.bucket is not configured")
			}
			bucket, err := s3backup.New(cmd.Context(), cfg.Backup.S3)
			if err != nil {
				return err
			}
			names, err := bucket.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
