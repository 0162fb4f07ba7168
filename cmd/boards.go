package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hardware-mapper/service"
)

func newBoardsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "List boards and parts in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BOARD\tNAME\tPINS\tRESERVED")
			for _, b := range a.Catalog.ListBoards() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", b.ID, b.Name, len(b.Positions()), joinInts(b.Reserved()))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "PART\tNAME\tPINS\tROLES")
			for _, p := range a.Catalog.ListParts() {
				minPins, maxPins := p.Bounds()
				pins := fmt.Sprint(minPins)
				if maxPins != minPins {
					pins = fmt.Sprintf("%d-%d", minPins, maxPins)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, pins, strings.Join(p.Roles, ", "))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newBoardImagesCmd(opts))
	return cmd
}

func newBoardImagesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "images <drive-folder-id>",
		Short: "List board photos in a Google Drive folder as catalog image references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.DriveCredentials == "" {
				return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
			}
			drive, err := service.NewDriveService(cmd.Context(), opts.cfg.DriveCredentials)
			if err != nil {
				return err
			}

			images, err := drive.ListBoardImages(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tREF")
			for _, img := range images {
				fmt.Fprintf(w, "%s\t%s\n", img.Name, img.Ref)
			}
			return w.Flush()
		},
	}
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ",")
}
