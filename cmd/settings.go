package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kubev2v/wifi-provisioner/internal/config"
)

// ApplySettingsFile loads cfg.SettingsFile underneath the command line: values from
// the file replace defaults, flags set explicitly keep their value.
func ApplySettingsFile(cmd *cobra.Command, cfg *config.Configuration) error {
	if cfg.SettingsFile == "" {
		return nil
	}

	type setFlag struct {
		flag  *pflag.Flag
		value string
		slice []string
	}
	var explicit []setFlag
	cmd.Flags().Visit(func(f *pflag.Flag) {
		sf := setFlag{flag: f, value: f.Value.String()}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sf.slice = append([]string(nil), sv.GetSlice()...)
		}
		explicit = append(explicit, sf)
	})

	if err := cfg.LoadFile(cfg.SettingsFile); err != nil {
		return err
	}

	for _, sf := range explicit {
		if sv, ok := sf.flag.Value.(pflag.SliceValue); ok {
			if err := sv.Replace(sf.slice); err != nil {
				return err
			}
			continue
		}
		if err := sf.flag.Value.Set(sf.value); err != nil {
			return err
		}
	}
	return nil
}
