package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/park285/dragchess/internal/assets"
	"github.com/park285/dragchess/internal/board"
	appcfg "github.com/park285/dragchess/internal/config"
	"github.com/park285/dragchess/internal/interaction"
	"github.com/park285/dragchess/internal/msgcat"
	"github.com/park285/dragchess/internal/obslog"
	"github.com/park285/dragchess/internal/render"
	"github.com/park285/dragchess/internal/tui"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const snapshotTimeout = 5 * time.Second

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()

	theme, err := appcfg.LoadTheme(cfg.ThemeFile)
	if err != nil {
		log.Fatalf("theme error: %v", err)
	}
	messages, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		log.Fatalf("messages error: %v", err)
	}

	game := board.NewGame(obslog.Named("board"))
	ctrl := interaction.NewController(game, obslog.Named("pointer"))

	loader := assets.NewLoader(cfg.AssetDir, obslog.Named("assets"))
	if failed := loader.Preload(render.LayoutFor(cfg.PanelWidth, cfg.PanelHeight).CellSize); failed > 0 {
		logger.Warn("assets_incomplete", zap.Int("failed", failed))
	}
	renderer := render.NewRenderer(loader, theme, obslog.Named("render"))

	view := tui.NewBoardView(game, ctrl, tui.Players{White: cfg.WhiteName, Black: cfg.BlackName}).SetTheme(theme)
	view.SetBorder(true).SetTitle(" dragchess ")

	helpKey := "help.keys"
	if cfg.SnapshotPath == "" {
		helpKey = "help.keys_no_snapshot"
	}
	footer := tview.NewTextView().SetText(messages.Text(helpKey, nil))
	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(view, 0, 1, true).
		AddItem(footer, 1, 0, false)

	app := tview.NewApplication()
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			app.Stop()
			return nil
		}
		if event.Key() != tcell.KeyRune {
			return event
		}
		switch event.Rune() {
		case 'q':
			app.Stop()
		case 'r':
			ctrl.Cancel()
			game.Reset()
			logger.Info("game_reset", zap.String("session", game.SessionID()))
		case 's':
			if cfg.SnapshotPath == "" {
				return nil
			}
			if err := writeSnapshot(renderer, game, view, cfg); err != nil {
				logger.Warn("snapshot_failed", zap.Error(err))
				return nil
			}
			footer.SetText(messages.Text("session.snapshot_saved", map[string]any{"Path": cfg.SnapshotPath}))
		default:
			return event
		}
		return nil
	})

	logger.Info("session_start",
		zap.String("session", game.SessionID()),
		zap.String("white", cfg.WhiteName),
		zap.String("black", cfg.BlackName),
	)
	if err := app.SetRoot(root, true).EnableMouse(true).Run(); err != nil {
		logger.Error("terminal_error", zap.Error(err))
		obslog.Sync()
		log.Fatalf("terminal error: %v", err)
	}

	if cfg.SnapshotPath != "" {
		if err := writeSnapshot(renderer, game, view, cfg); err != nil {
			logger.Warn("snapshot_failed", zap.Error(err))
		}
	}
	fmt.Println(messages.Text("session.summary", map[string]any{
		"White": cfg.WhiteName,
		"Black": cfg.BlackName,
		"Turn":  game.Turn(),
	}))
	if err := tui.PrintBoard(os.Stdout, game); err != nil {
		logger.Warn("print_board_failed", zap.Error(err))
	}
	fmt.Println(messages.Text("session.placement", map[string]any{"Placement": game.Placement()}))
	logger.Info("session_end", zap.String("session", game.SessionID()), zap.String("placement", game.Placement()))
	obslog.Sync()
}

// writeSnapshot saves the current frame as PNG. A carried piece is drawn
// centred on the square the terminal pointer hovers.
func writeSnapshot(r *render.Renderer, game *board.State, view *tui.BoardView, cfg *appcfg.AppConfig) error {
	drag := view.DragIn(render.LayoutFor(cfg.PanelWidth, cfg.PanelHeight))
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()
	data, err := r.RenderPNG(ctx, game, drag, cfg.PanelWidth, cfg.PanelHeight)
	if err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}
	if err := os.WriteFile(cfg.SnapshotPath, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
