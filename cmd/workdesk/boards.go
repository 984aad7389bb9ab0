package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/app"
)

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func (c *cli) newBoardsCmd() *cobra.Command {
	boards := &cobra.Command{
		Use:   "boards",
		Short: "List and manage boards",
	}

	var archived bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteBoards); err != nil {
				return err
			}
			out, err := c.app.Boards().List(ctx, archived)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	list.Flags().BoolVar(&archived, "archived", false, "Include archived boards")

	var description string
	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteBoards); err != nil {
				return err
			}
			b, err := c.app.Boards().Create(ctx, client.CreateBoardRequest{Title: args[0], Description: description})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), b)
		},
	}
	create.Flags().StringVar(&description, "description", "", "Board description")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a board with its columns and cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteBoards+"/"+args[0]); err != nil {
				return err
			}
			d, err := c.app.BoardDetail(id).Load(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d.Board)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteBoards); err != nil {
				return err
			}
			return c.app.Boards().Delete(ctx, id)
		},
	}

	var pdf bool
	var output string
	export := &cobra.Command{
		Use:   "export <id>",
		Short: "Download the board's file archive, or a PDF with --pdf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteBoards); err != nil {
				return err
			}
			var d *client.Download
			if pdf {
				d, err = c.app.Boards().ExportPDF(ctx, id)
			} else {
				d, err = c.app.Boards().Archive(ctx, id)
			}
			if err != nil {
				return err
			}
			return writeDownload(cmd, d, output)
		},
	}
	export.Flags().BoolVar(&pdf, "pdf", false, "Export as PDF")
	export.Flags().StringVarP(&output, "output", "o", "", "Output path (default: server filename)")

	boards.AddCommand(list, create, show, del, export)
	return boards
}

func writeDownload(cmd *cobra.Command, d *client.Download, output string) error {
	if output == "" {
		output = filepath.Base(d.Filename)
		if output == "." || output == "/" || output == "" {
			output = "download"
		}
	}
	if err := os.WriteFile(output, d.Data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(d.Data), output)
	return nil
}
