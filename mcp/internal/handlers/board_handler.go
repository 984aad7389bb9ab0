package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/app"
)

// BoardHandler exposes board and card tools.
type BoardHandler struct {
	app *app.App
}

// NewBoardHandler creates a board handler.
func NewBoardHandler(a *app.App) *BoardHandler { return &BoardHandler{app: a} }

// RegisterTools registers the board tools.
func (bh *BoardHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_boards",
		mcp.WithDescription("List boards (id, title, status)"),
		mcp.WithBoolean("include_archived", mcp.Description("Include archived boards")),
	)
	create := mcp.NewTool("create_board",
		mcp.WithDescription("Create a board; the backend adds default columns"),
		mcp.WithString("title", mcp.Required(), mcp.Description("Board title")),
		mcp.WithString("description", mcp.Description("Optional description")),
	)
	get := mcp.NewTool("get_board",
		mcp.WithDescription("Get a board with its columns and cards"),
		mcp.WithNumber("board_id", mcp.Required(), mcp.Description("Board id")),
	)
	myCards := mcp.NewTool("my_cards", mcp.WithDescription("List cards assigned to the current user"))
	createCard := mcp.NewTool("create_card",
		mcp.WithDescription("Create a card in a column"),
		mcp.WithNumber("board_id", mcp.Required(), mcp.Description("Board id")),
		mcp.WithNumber("column_id", mcp.Required(), mcp.Description("Column id")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Card title")),
		mcp.WithString("description", mcp.Description("Card description")),
		mcp.WithString("priority", mcp.Description("low, medium or high")),
		mcp.WithString("due_date", mcp.Description("Due date, RFC3339")),
	)
	moveCard := mcp.NewTool("move_card",
		mcp.WithDescription("Move a card to a column and position"),
		mcp.WithNumber("board_id", mcp.Required(), mcp.Description("Board id")),
		mcp.WithNumber("card_id", mcp.Required(), mcp.Description("Card id")),
		mcp.WithNumber("column_id", mcp.Required(), mcp.Description("Target column id")),
		mcp.WithNumber("position", mcp.Description("Position in the column, default 0")),
	)
	comment := mcp.NewTool("add_comment",
		mcp.WithDescription("Comment on a card"),
		mcp.WithNumber("board_id", mcp.Required(), mcp.Description("Board id")),
		mcp.WithNumber("card_id", mcp.Required(), mcp.Description("Card id")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Comment text")),
	)

	s.AddTool(list, bh.handleList)
	s.AddTool(create, bh.handleCreate)
	s.AddTool(get, bh.handleGet)
	s.AddTool(myCards, bh.handleMyCards)
	s.AddTool(createCard, bh.handleCreateCard)
	s.AddTool(moveCard, bh.handleMoveCard)
	s.AddTool(comment, bh.handleAddComment)
	return nil
}

func (bh *BoardHandler) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boards, err := bh.app.Boards().List(ctx, boolArg(req, "include_archived"))
	if err != nil {
		return failed("list_boards", err)
	}
	type lite struct {
		ID     int    `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status,omitempty"`
	}
	out := make([]lite, len(boards))
	for i, b := range boards {
		out[i] = lite{ID: b.ID, Title: b.Title, Status: b.Status}
	}
	return jsonResult(out)
}

func (bh *BoardHandler) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title parameter is required"), nil
	}
	b, err := bh.app.Boards().Create(ctx, client.CreateBoardRequest{Title: title, Description: stringArg(req, "description")})
	if err != nil {
		return failed("create_board", err)
	}
	log.Debug().Int("board_id", b.ID).Msg("create_board completed")
	return jsonResult(b)
}

func (bh *BoardHandler) handleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireInt(req, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := bh.app.BoardDetail(id).Load(ctx)
	if err != nil {
		return failed("get_board", err)
	}
	return jsonResult(d.Board)
}

func (bh *BoardHandler) handleMyCards(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cards, err := bh.app.Dashboard().MyCards(ctx)
	if err != nil {
		return failed("my_cards", err)
	}
	return jsonResult(cards)
}

func (bh *BoardHandler) handleCreateCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID, err := requireInt(req, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	columnID, err := requireInt(req, "column_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title parameter is required"), nil
	}
	due, err := timeArg(req, "due_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	card, err := bh.app.BoardDetail(boardID).CreateCard(ctx, client.CreateCardRequest{
		ColumnID:    columnID,
		Title:       title,
		Description: stringArg(req, "description"),
		Priority:    stringArg(req, "priority"),
		DueDate:     due,
		AssigneeIDs: []int{},
	})
	if err != nil {
		return failed("create_card", err)
	}
	return jsonResult(card)
}

func (bh *BoardHandler) handleMoveCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := make(map[string]int, 3)
	for _, name := range []string{"board_id", "card_id", "column_id"} {
		v, err := requireInt(req, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ids[name] = v
	}
	pos, _ := intArg(req, "position")
	card, err := bh.app.BoardDetail(ids["board_id"]).MoveCard(ctx, ids["card_id"], ids["column_id"], pos)
	if err != nil {
		return failed("move_card", err)
	}
	return jsonResult(card)
}

func (bh *BoardHandler) handleAddComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID, err := requireInt(req, "board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cardID, err := requireInt(req, "card_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content parameter is required"), nil
	}
	c, err := bh.app.BoardDetail(boardID).AddComment(ctx, cardID, content)
	if err != nil {
		return failed("add_comment", err)
	}
	return jsonResult(c)
}
