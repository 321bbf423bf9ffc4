package command

import (
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/infrastructure/server"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
	"github.com/spf13/cobra"
)

// ServeOptions holds the options for the serve command.
type ServeOptions struct {
	Host    string
	Port    string
	Outputs string
}

func NewServeCommand(cli *CLI) *cobra.Command {
	var opts ServeOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.Config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = opts.Host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = opts.Port
			}

			logger, err := cli.Logger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			outputs := simoutput.Empty
			if opts.Outputs != "" {
				if outputs, err = simoutput.LoadFile(opts.Outputs); err != nil {
					return err
				}
			}

			srv, err := server.NewServer(cmd.Context(), cfg, logger, outputs, cli.Version)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&opts.Host, "host", "", "Listen host")
	cmd.Flags().StringVarP(&opts.Port, "port", "p", "", "Listen port")
	cmd.Flags().StringVar(&opts.Outputs, "outputs", "", "Default simulation outputs fixture")
	return cmd
}
