package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/app"
)

func (c *cli) newContactsCmd() *cobra.Command {
	contacts := &cobra.Command{Use: "contacts", Short: "Manage contacts"}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteContacts); err != nil {
				return err
			}
			out, err := c.app.Contacts().List(ctx, search)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	list.Flags().StringVar(&search, "search", "", "Company name filter")

	var req client.ContactRequest
	add := &cobra.Command{
		Use:   "add <company>",
		Short: "Add a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.CompanyName = args[0]
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteContacts); err != nil {
				return err
			}
			out, err := c.app.Contacts().Create(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	add.Flags().StringVar(&req.ContactPerson, "person", "", "Contact person")
	add.Flags().StringVar(&req.Type, "type", "client", "client, supplier or partner")
	add.Flags().StringVar(&req.Email, "email", "", "Email")
	add.Flags().StringVar(&req.Phone, "phone", "", "Phone")

	contacts.AddCommand(list, add)
	return contacts
}

func (c *cli) newCalendarCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show events and open cards due in a range (default: next 7 days)",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end := time.Now(), time.Time{}
			var err error
			if from != "" {
				if start, err = time.Parse(time.RFC3339, from); err != nil {
					return err
				}
			}
			end = start.AddDate(0, 0, 7)
			if to != "" {
				if end, err = time.Parse(time.RFC3339, to); err != nil {
					return err
				}
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteCalendar); err != nil {
				return err
			}
			d, err := c.app.Calendar().Load(ctx, start, end)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"events": d.Events, "due_cards": d.DueCards})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Range start, RFC3339")
	cmd.Flags().StringVar(&to, "to", "", "Range end, RFC3339")
	return cmd
}

func (c *cli) newNotificationsCmd() *cobra.Command {
	var unread, markRead bool
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteNotifications); err != nil {
				return err
			}
			page := c.app.Notifications()
			if markRead {
				if err := page.MarkAllRead(ctx); err != nil {
					return err
				}
			}
			items, err := page.List(ctx, unread)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().BoolVar(&unread, "unread", false, "Only unread notifications")
	cmd.Flags().BoolVar(&markRead, "mark-read", false, "Mark every notification read first")
	return cmd
}

func (c *cli) newChatCmd() *cobra.Command {
	chat := &cobra.Command{Use: "chat", Short: "Read and send messages"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteChat); err != nil {
				return err
			}
			out, err := c.app.Chat().Conversations(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	var card int
	send := &cobra.Command{
		Use:   "send <conversation-id> <text>",
		Short: "Send a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := client.SendMessageRequest{Content: args[1]}
			if card > 0 {
				req.LinkedCardID = &card
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteChat); err != nil {
				return err
			}
			m, err := c.app.Chat().Send(ctx, id, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), m)
		},
	}
	send.Flags().IntVar(&card, "card", 0, "Card id to link")

	chat.AddCommand(list, send)
	return chat
}

func (c *cli) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search boards, cards, contacts and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteSearch); err != nil {
				return err
			}
			res, err := c.app.Search().Run(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func (c *cli) newReportCmd() *cobra.Command {
	var days, board int
	cmd := &cobra.Command{
		Use:   "report <kind>",
		Short: fmt.Sprintf("Fetch a report (%v)", client.ReportKinds),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.visit(ctx, app.RouteReports); err != nil {
				return err
			}
			params := map[string]string{}
			if days > 0 {
				params["days"] = fmt.Sprint(days)
			}
			if board > 0 {
				params["board_id"] = fmt.Sprint(board)
			}
			rep, err := c.app.Reports().Get(ctx, client.ReportKind(args[0]), params)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(rep))
			return err
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Look-back window in days")
	cmd.Flags().IntVar(&board, "board", 0, "Restrict to one board")
	return cmd
}
