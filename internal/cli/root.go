// Package cli wires the cobra command surface to the dashboard. Flags are
// bound through viper so every option can also come from a SYSDASH_* env
// var (SYSDASH_PROCESS_INTERVAL=5s, etc.).
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calebstern/sysdash/internal/config"
	"github.com/calebstern/sysdash/internal/ui"
)

var version = "dev"

// SetVersionInfo is called from main with ldflags-injected build info.
func SetVersionInfo(v string) {
	if v != "" {
		version = v
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sysdash",
		Short: "Interactive terminal dashboard for live system metrics",
		Long: "sysdash samples the kernel's accounting interfaces (CPU ticks, memory,\n" +
			"disk usage, network counters, the process/thread tree) and renders them\n" +
			"as live widgets with a sortable, filterable process table.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(v)
			if err != nil {
				return err
			}
			return ui.Run(cfg)
		},
	}
	cmd.Version = version

	defaults := config.Default()
	flags := cmd.Flags()
	flags.Duration("cpu-interval", defaults.CPUInterval, "CPU counter sampling interval")
	flags.Duration("memory-interval", defaults.MemoryInterval, "memory sampling interval")
	flags.Duration("disk-interval", defaults.DiskInterval, "disk usage sampling interval")
	flags.Duration("network-interval", defaults.NetworkInterval, "network counter sampling interval")
	flags.Duration("process-interval", defaults.ProcessInterval, "process tree sampling interval")
	flags.Duration("frame-interval", defaults.FrameInterval, "render frame interval")
	flags.String("proc-root", defaults.ProcRoot, "process namespace root")

	v.SetEnvPrefix("SYSDASH")
	v.SetEnvKeyReplacer(envKeyReplacer())
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	return cmd
}

// envKeyReplacer maps flag names to env var suffixes, so --proc-root
// pairs with SYSDASH_PROC_ROOT.
func envKeyReplacer() *strings.Replacer {
	return strings.NewReplacer("-", "_")
}

func resolveConfig(v *viper.Viper) (config.Config, error) {
	cfg := config.Default()
	cfg.CPUInterval = v.GetDuration("cpu-interval")
	cfg.MemoryInterval = v.GetDuration("memory-interval")
	cfg.DiskInterval = v.GetDuration("disk-interval")
	cfg.NetworkInterval = v.GetDuration("network-interval")
	cfg.ProcessInterval = v.GetDuration("process-interval")
	cfg.FrameInterval = v.GetDuration("frame-interval")
	cfg.ProcRoot = v.GetString("proc-root")
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
