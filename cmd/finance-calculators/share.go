package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func shareCommand(opts *rootOptions) *cobra.Command {
	var (
		inputs  inputFlags
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print the share token (and link) for a set of inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			base := conf.Share.BaseURL
			if baseURL != "" {
				base = baseURL
			}

			session, err := inputs.session(cmd, conf, base, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if base == "" {
				_, err = fmt.Fprintln(out, session.Token())
				return err
			}
			link, err := session.ShareURL()
			if err != nil {
				return fmt.Errorf("failed to build share URL: %w", err)
			}
			_, err = fmt.Fprintln(out, link)
			return err
		},
	}

	inputs.register(cmd)
	cmd.Flags().StringVar(&baseURL, "base-url", "", "page the share token is appended to")

	return cmd
}
