package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/wifi-provisioner/internal/config"
)

func NewClearCommand(cfg *config.Configuration) *cobra.Command {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored network credentials",
		Example: `  # Forget the provisioned network; the next run starts a provisioning session
  provisioner clear --data-folder /var/lib/provisioner`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DataFolder == "" {
				return errors.New("data-folder must be set")
			}

			ctx := context.Background()
			s, err := openStore(ctx, cfg.DataFolder)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Credentials().Delete(ctx); err != nil {
				zap.S().Errorw("failed to delete credentials", "error", err)
				return err
			}

			zap.S().Info("stored credentials deleted")
			return nil
		},
	}

	clearCmd.Flags().StringVar(&cfg.DataFolder, "data-folder", cfg.DataFolder, "Path to the persistent data folder")

	return clearCmd
}
