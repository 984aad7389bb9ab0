package main

import (
	"time"

	"github.com/spf13/cobra"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/app"
)

func (c *cli) newCardsCmd() *cobra.Command {
	cards := &cobra.Command{
		Use:   "cards",
		Short: "Work with cards",
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List cards assigned to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteDashboard); err != nil {
				return err
			}
			out, err := c.app.Dashboard().MyCards(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	var (
		boardID, columnID, position int
		description, priority, due  string
		assignees                   []int
	)
	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.CreateCardRequest{
				ColumnID:    columnID,
				Title:       args[0],
				Description: description,
				Priority:    priority,
				Position:    position,
				AssigneeIDs: assignees,
			}
			if req.AssigneeIDs == nil {
				req.AssigneeIDs = []int{}
			}
			if due != "" {
				t, err := time.Parse(time.RFC3339, due)
				if err != nil {
					return err
				}
				req.DueDate = &t
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteBoards); err != nil {
				return err
			}
			card, err := c.app.BoardDetail(boardID).CreateCard(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), card)
		},
	}
	create.Flags().IntVar(&boardID, "board", 0, "Board id")
	create.Flags().IntVar(&columnID, "column", 0, "Column id")
	create.Flags().IntVar(&position, "position", 0, "Position in the column")
	create.Flags().StringVar(&description, "description", "", "Description")
	create.Flags().StringVar(&priority, "priority", "", "low, medium or high")
	create.Flags().StringVar(&due, "due", "", "Due date, RFC3339")
	create.Flags().IntSliceVar(&assignees, "assignee", nil, "Assignee user id (repeatable)")
	_ = create.MarkFlagRequired("board")
	_ = create.MarkFlagRequired("column")

	var moveBoard, moveColumn, movePos int
	move := &cobra.Command{
		Use:   "move <card-id>",
		Short: "Move a card to another column",
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
			card, err := c.app.BoardDetail(moveBoard).MoveCard(ctx, id, moveColumn, movePos)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), card)
		},
	}
	move.Flags().IntVar(&moveBoard, "board", 0, "Board id")
	move.Flags().IntVar(&moveColumn, "column", 0, "Target column id")
	move.Flags().IntVar(&movePos, "position", 0, "Position in the column")
	_ = move.MarkFlagRequired("board")
	_ = move.MarkFlagRequired("column")

	var commentBoard int
	comment := &cobra.Command{
		Use:   "comment <card-id> <text>",
		Short: "Comment on a card",
		Args:  cobra.ExactArgs(2),
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
			cm, err := c.app.BoardDetail(commentBoard).AddComment(ctx, id, args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), cm)
		},
	}
	comment.Flags().IntVar(&commentBoard, "board", 0, "Board id")

	var (
		deleteBoard int
		confirm     string
	)
	del := &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card; the backend checks your password",
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
			return c.app.BoardDetail(deleteBoard).DeleteCard(ctx, id, confirm)
		},
	}
	del.Flags().IntVar(&deleteBoard, "board", 0, "Board id")
	del.Flags().StringVar(&confirm, "password", "", "Your password")
	_ = del.MarkFlagRequired("password")

	cards.AddCommand(mine, create, move, comment, del)
	return cards
}
