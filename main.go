package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"ringrush/communication/client"
	"ringrush/communication/mcp"
	"ringrush/communication/server"
	"ringrush/communication/stdio"
	"ringrush/config"
	"ringrush/engine"
	"ringrush/experiments"
	"ringrush/experiments/metrics"
	"ringrush/game"
	"ringrush/game/field"
	"ringrush/gamemaster"
	"ringrush/player"
	"ringrush/searcher/agent"
)

const version = "0.3.0"

func main() {
	cmd := &cli.Command{
		Name:    "ringrush",
		Usage:   "play, host and study the ring rush grid game",
		Version: version,
		Commands: []*cli.Command{
			playCommand(),
			serveCommand(),
			mcpCommand(),
			joinCommand(),
			selfplayCommand(),
			experimentCommand(),
			renderCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("ringrush failed")
		os.Exit(1)
	}
}

// searchFlags override the search budget from the environment.
func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "goroutines", Usage: "search goroutines per agent"},
		&cli.IntFlag{Name: "episodes", Usage: "search episodes per move"},
		&cli.DurationFlag{Name: "duration", Usage: "search time per move"},
		&cli.IntFlag{Name: "cutoff", Usage: "rollout depth, 0 for full playouts"},
		&cli.IntFlag{Name: "seed", Usage: "seed for the game and the agents"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
	}
}

// setup loads the config, applies the flags that were set and configures
// logging on stderr.
func setup(cmd *cli.Command) (config.Config, error) {
	c, err := config.Load()
	if err != nil && !strings.HasPrefix(err.Error(), "config validation: ") {
		return c, err
	}

	if cmd.IsSet("goroutines") {
		c.Goroutines = int(cmd.Int("goroutines"))
	}
	if cmd.IsSet("episodes") {
		c.Episodes = int(cmd.Int("episodes"))
	}
	if cmd.IsSet("duration") {
		c.Duration = cmd.Duration("duration")
	}
	if cmd.IsSet("cutoff") {
		c.Cutoff = int(cmd.Int("cutoff"))
	}
	if cmd.IsSet("seed") {
		c.Seed = uint64(cmd.Int("seed"))
	}
	if cmd.IsSet("log-level") {
		c.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("addr") {
		c.Addr = cmd.String("addr")
	}
	if cmd.IsSet("output") {
		c.OutputDir = cmd.String("output")
	}
	if err := c.Validate(); err != nil {
		return c, err
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(c.Level())
	return c, nil
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "control the red robot of a field game over stdin and stdout",
		Flags: append(searchFlags(),
			&cli.StringFlag{Name: "opponent", Value: metrics.KindGreedy, Usage: "greedy, mcts or random"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := setup(cmd)
			if err != nil {
				return err
			}
			opponent, err := experiments.NewAgent(c.Agent(1, cmd.String("opponent")), experiments.VariantField)
			if err != nil {
				return fmt.Errorf("failed to create opponent: %w", err)
			}
			return stdio.NewServer(os.Stdin, os.Stdout, opponent).Run(ctx)
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "host core games over HTTP with websocket spectators",
		Flags: append(searchFlags(),
			&cli.StringFlag{Name: "addr", Usage: "listen address"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := setup(cmd)
			if err != nil {
				return err
			}

			hub := server.NewHub()
			go hub.Run(ctx)

			httpServer := &http.Server{
				Addr:         c.Addr,
				Handler:      server.NewServer(gamemaster.NewManager(), hub),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errs := make(chan error, 1)
			go func() {
				log.Info().Msgf("listening on %s", c.Addr)
				errs <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errs:
				return fmt.Errorf("server stopped: %w", err)
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("failed to shut down: %w", err)
			}
			return nil
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "serve core games as MCP tools over stdin and stdout",
		Flags: searchFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := setup(cmd); err != nil {
				return err
			}
			return mcp.NewServer(gamemaster.NewManager()).ServeStdio()
		},
	}
}

func joinCommand() *cli.Command {
	return &cli.Command{
		Name:  "join",
		Usage: "play one seat of a game hosted by serve",
		Flags: append(searchFlags(),
			&cli.StringFlag{Name: "server", Value: "http://localhost:8080", Usage: "base URL of the host"},
			&cli.StringFlag{Name: "game", Usage: "game id, a new game is created when empty"},
			&cli.StringFlag{Name: "seat", Value: "red", Usage: "red or blue"},
			&cli.StringFlag{Name: "agent", Value: metrics.KindMCTS, Usage: "mcts, training, greedy or random"},
			&cli.DurationFlag{Name: "poll", Value: 200 * time.Millisecond, Usage: "how often to poll the game"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := setup(cmd)
			if err != nil {
				return err
			}
			seat, err := parseSeat(cmd.String("seat"))
			if err != nil {
				return err
			}
			a, err := experiments.NewAgent(c.Agent(int(seat)+1, cmd.String("agent")), experiments.VariantCore)
			if err != nil {
				return fmt.Errorf("failed to create agent: %w", err)
			}

			comm := client.NewClient(cmd.String("server"))
			id := cmd.String("game")
			if id == "" {
				session, err := comm.CreateGame(ctx, c.Seed)
				if err != nil {
					return err
				}
				id = session.ID
				log.Info().Msgf("created game %s", id)
			}

			session, err := player.NewRemote(comm, a, id, seat, player.WithPollInterval(cmd.Duration("poll"))).Run(ctx)
			if err != nil {
				return err
			}
			fmt.Println(game.Render(session.State, true))
			return nil
		},
	}
}

func parseSeat(s string) (game.Player, error) {
	switch strings.ToLower(s) {
	case "red":
		return game.Red, nil
	case "blue":
		return game.Blue, nil
	default:
		return game.NoPlayer, fmt.Errorf("unknown seat %q", s)
	}
}

func selfplayCommand() *cli.Command {
	return &cli.Command{
		Name:  "selfplay",
		Usage: "play one local game between two agents",
		Flags: append(searchFlags(),
			&cli.StringFlag{Name: "variant", Value: experiments.VariantCore, Usage: "core or field"},
			&cli.StringFlag{Name: "red", Value: metrics.KindMCTS, Usage: "red agent kind"},
			&cli.StringFlag{Name: "blue", Value: metrics.KindGreedy, Usage: "blue agent kind"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := setup(cmd)
			if err != nil {
				return err
			}
			variant := cmd.String("variant")

			var agents [game.NumPlayers]agent.Agent
			for p, kind := range []string{cmd.String("red"), cmd.String("blue")} {
				a, err := experiments.NewAgent(c.Agent(p+1, kind), variant)
				if err != nil {
					return fmt.Errorf("failed to create %s agent: %w", game.Player(p), err)
				}
				agents[p] = a
			}

			var final game.State
			e := engine.NewLocalEngine(experiments.NewState(variant, c.Seed), agents,
				engine.WithObserver(func(ply int, move game.Move, state game.State) {
					log.Debug().Msgf("ply %d: %v", ply, move)
					final = state
				}),
			)
			result, gameMetric, _ := e.Run()

			if final != nil {
				fmt.Println(render(final))
			}
			fmt.Printf("winner %s, scores red %d blue %d after %d plies in %s\n",
				result.Winner, result.Scores[game.Red], result.Scores[game.Blue], result.Plies, gameMetric.Duration)
			return nil
		},
	}
}

func render(state game.State) string {
	switch s := state.(type) {
	case game.GameState:
		return game.Render(s, true)
	case field.Field:
		return s.Render(true)
	default:
		return fmt.Sprintf("%+v", state)
	}
}

func experimentCommand() *cli.Command {
	return &cli.Command{
		Name:      "experiment",
		Usage:     "run a YAML plan or one of the built-in plans",
		ArgsUsage: "<plan.yaml|throughput|parallelization|cutoff>",
		Flags: append(searchFlags(),
			&cli.StringFlag{Name: "output", Usage: "directory for the results"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := setup(cmd)
			if err != nil {
				return err
			}
			name := cmd.Args().First()
			if name == "" {
				return errors.New("experiment needs a plan file or a built-in plan name")
			}

			plan, ok := experiments.Builtin(name)
			if !ok {
				if plan, err = config.LoadExperiment(name); err != nil {
					return err
				}
			}

			records, err := experiments.Run(plan, c.OutputDir)
			if err != nil {
				return err
			}
			wins := map[int]int{}
			for _, r := range records {
				switch game.Player(r.Winner) {
				case game.Red:
					wins[r.AgentRed]++
				case game.Blue:
					wins[r.AgentBlue]++
				}
			}
			for _, a := range plan.Agents {
				fmt.Printf("agent%d (%s): %d wins\n", a.ID, a.Kind, wins[a.ID])
			}
			return nil
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "start a core game, apply actions and print the board",
		ArgsUsage: "[action ...]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "seed", Usage: "game seed"},
			&cli.BoolFlag{Name: "plain", Usage: "no colors"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			state, _ := game.Init(uint64(cmd.Int("seed")))
			for _, arg := range cmd.Args().Slice() {
				a, err := game.ParseAction(arg)
				if err != nil {
					return err
				}
				if state, _, err = game.Step(state, a); err != nil {
					return fmt.Errorf("failed to play %s: %w", arg, err)
				}
			}
			fmt.Println(game.Render(state, !cmd.Bool("plain")))
			return nil
		},
	}
}
