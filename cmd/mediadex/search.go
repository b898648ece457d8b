package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/mediadex"
)

type searchFlags struct {
	page  int
	size  int
	all   bool
	admin bool
	nsfw  bool
}

func newSearchCmd(a *app) *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search [terms...]",
		Short: "Run a search query against the cache",
		Example: `  mediadex search cat -dog sort:width
  mediadex search --all --admin rating:e`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			query := strings.Join(args, " ")
			vis := mediadex.Visibility{SFW: !f.nsfw, Admin: f.admin}
			s := client.Session()

			if f.all {
				docs, err := s.SearchUnpaginated(cmd.Context(), query, vis)
				if err != nil {
					return err
				}
				return printDocuments(cmd.OutOrStdout(), docs)
			}

			p, err := s.Search(cmd.Context(), query, mediadex.PageRequest{Number: f.page, Size: f.size}, vis)
			if err != nil {
				return err
			}
			if err := printDocuments(cmd.OutOrStdout(), p.Items); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (size %d)\n", p.PageNumber, p.PageCount, p.PageSize)
			return err
		},
	}
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page number, 1-based")
	cmd.Flags().IntVarP(&f.size, "size", "s", 0, "page size (0 uses the configured default)")
	cmd.Flags().BoolVar(&f.all, "all", false, "return every match without pagination")
	cmd.Flags().BoolVar(&f.admin, "admin", false, "include unrated and explicit media")
	cmd.Flags().BoolVar(&f.nsfw, "nsfw", false, "include media rated other than safe")
	return cmd
}

func printDocuments(w io.Writer, docs []mediadex.Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRATING\tSIZE\tMIME\tTAGS")
	for i := range docs {
		d := &docs[i]
		fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%s\t%s\n",
			d.ID, d.Rating, d.Width, d.Height, d.MimeType, strings.Join(d.InnateTags.Sorted(), " "))
	}
	return tw.Flush()
}
