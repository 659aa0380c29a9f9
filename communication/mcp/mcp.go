// Package mcp exposes a gamemaster.Manager as Model Context Protocol tools
// over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ringrush/communication"
	"ringrush/game"
	"ringrush/gamemaster"
)

const rules = `RING RUSH - two robots on a 5x5 grid, 60 plies (30 each).

Red starts at (2,0), blue at (2,4). Three goals sit at (1,2), (2,2) and (3,2).
Rings of each color lie on the board; you may only pick up your own color.

ACTIONS (index: name)
0: move_north   1: move_south   2: move_east   3: move_west
4: grab_goal     pick up the free goal on your cell
5: pick_up_ring  score one of your rings from your cell onto the goal you carry (max 6 per carry)
6: release_goal  drop the goal you carry on a cell without another free goal

Moving into the opponent's cell is a bump: you stay where you are.

SCORING
Every ring on a goal is worth 1 to its color and the color of the top ring gets 2 more.
A goal in a bottom corner counts double; a goal in a top corner counts negative.
The higher total after 60 plies wins (+1/-1); equal totals draw.`

type Server struct {
	manager   *gamemaster.Manager
	mcpServer *server.MCPServer
}

func NewServer(manager *gamemaster.Manager) *Server {
	s := &Server{manager: manager}
	s.mcpServer = server.NewMCPServer(
		"Ring Rush",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ring Rush - MCP Interface

Create a game with new_game, then alternate play_action calls for whichever
player is to move. Call rules for the full rules and legal_actions before
acting.`),
	)
	s.registerTools()
	return s
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio blocks serving MCP over stdin and stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func gameIDSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Game ID returned by new_game",
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game. The seed decides who moves first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"seed": map[string]interface{}{
					"type":        "number",
					"description": "Non-negative integer seed (optional, default 0)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the full state of a game as JSON",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameIDSchema()},
			Required:   []string{"game_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_actions",
		Description: "List the actions the player to move may take",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameIDSchema()},
			Required:   []string{"game_id"},
		},
	}, s.handleLegalActions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "play_action",
		Description: "Play an action for the player to move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDSchema(),
				"action": map[string]interface{}{
					"type":        "string",
					"description": "Action name (e.g. move_east) or index 0-6",
				},
			},
			Required: []string{"game_id", "action"},
		},
	}, s.handlePlayAction)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "observe",
		Description: "Get the observation planes from the point of view of the player to move",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameIDSchema()},
			Required:   []string{"game_id"},
		},
	}, s.handleObserve)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "render_board",
		Description: "Draw the board as text",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameIDSchema()},
			Required:   []string{"game_id"},
		},
	}, s.handleRenderBoard)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "rules",
		Description: "Explain the rules, actions and scoring",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleRules)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func (s *Server) session(request mcp.CallToolRequest) (gamemaster.Session, error) {
	id, _ := arguments(request)["game_id"].(string)
	if id == "" {
		return gamemaster.Session{}, errors.New("game_id is required")
	}
	return s.manager.Get(id)
}

// parseAction accepts a name or an index, as a string or a number.
func parseAction(raw interface{}) (game.Action, error) {
	switch v := raw.(type) {
	case string:
		return game.ParseAction(v)
	case float64:
		a := game.Action(int(v))
		if float64(int(v)) != v || !a.Valid() {
			return 0, fmt.Errorf("%w: %v", game.ErrInvalidAction, v)
		}
		return a, nil
	default:
		return 0, errors.New("action is required")
	}
}

func toJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seed := 0.0
	if raw, ok := arguments(request)["seed"]; ok {
		v, ok := raw.(float64)
		if !ok || v < 0 || v != float64(uint64(v)) {
			return mcp.NewToolResultError("seed must be a non-negative integer"), nil
		}
		seed = v
	}

	session := s.manager.Create(uint64(seed))
	result := fmt.Sprintf("Created game: %s\n%s to move.\n\n%s", session.ID, session.State.CurrentPlayer, game.Render(session.State, false))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := s.session(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := toJSON(session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleLegalActions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := s.session(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	legal := communication.NewLegalResponse(session.State)
	if len(legal.Actions) == 0 {
		return mcp.NewToolResultText("The game is over; no actions are legal."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Legal actions for %s:\n", legal.Player)
	for i, a := range legal.Actions {
		fmt.Fprintf(&b, "%d: %s\n", int(a), legal.Names[i])
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handlePlayAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["game_id"].(string)
	if id == "" {
		return mcp.NewToolResultError("game_id is required"), nil
	}
	action, err := parseAction(args["action"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	update, err := s.manager.Play(id, action)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ply %d: %s played %s.\n", update.Ply, update.Player, update.Action)
	if update.Metadata.Terminated {
		rewards := update.Metadata.Rewards
		fmt.Fprintf(&b, "Game over. Rewards red %+.0f, blue %+.0f.\n", rewards[game.Red], rewards[game.Blue])
	} else {
		fmt.Fprintf(&b, "%s to move.\n", update.State.CurrentPlayer)
	}
	b.WriteString("\n")
	b.WriteString(game.Render(update.State, false))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleObserve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := s.session(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := toJSON(map[string]interface{}{
		"channels": []string{"own_supply", "opponent_supply", "own_scored", "opponent_scored", "top", "free_goal", "players"},
		"planes":   game.Observe(session.State),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleRenderBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := s.session(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(game.Render(session.State, false)), nil
}

func (s *Server) handleRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(rules), nil
}
