package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pengelbrecht/mathx/internal/board"
	"github.com/pengelbrecht/mathx/internal/config"
	"github.com/pengelbrecht/mathx/internal/results"
	"github.com/pengelbrecht/mathx/internal/styles"
	"github.com/pengelbrecht/mathx/internal/tui"
	"github.com/pengelbrecht/mathx/internal/worksheet"
)

var watchCmd = &cobra.Command{
	Use:   "watch <worksheet>",
	Short: "Watch a worksheet and re-evaluate it on change",
	Long: `Watch a worksheet file and re-evaluate it whenever it changes.

A worksheet is a text file with one expression per line. Results are
printed on every change; with --tui a live dashboard is shown instead.
Snapshots can be recorded to a directory and mirrored to a remote board.

Configuration is read from .mx/config.json next to the worksheet, if
present. The board token comes from $MATHX_TOKEN or ~/.mathxrc.

Examples:
  # Print results on each change
  mx watch sheet.mx

  # Live dashboard
  mx watch sheet.mx --tui

  # Record snapshots and mirror to the board
  mx watch sheet.mx --record .mx/results --board`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchTUI      bool
	watchRecord   string
	watchBoard    bool
	watchDebounce time.Duration
)

func init() {
	watchCmd.Flags().BoolVar(&watchTUI, "tui", false, "show a live dashboard")
	watchCmd.Flags().StringVar(&watchRecord, "record", "", "record snapshots to this directory")
	watchCmd.Flags().BoolVar(&watchBoard, "board", false, "mirror results to the remote board")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "debounce interval for file changes (0=config)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	sheetName := worksheet.Name(path)

	cfg, err := config.LoadOrDefault(filepath.Join(filepath.Dir(path), ".mx", "config.json"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	debounce := cfg.GetDebounce()
	if watchDebounce > 0 {
		debounce = watchDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
	}()

	watcher := worksheet.NewWatcher(path, debounce)
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to watch worksheet: %w", err)
	}
	defer watcher.Stop()

	var store *results.Store
	if watchRecord != "" {
		store = results.NewStore(watchRecord)
	}

	var client *board.Client
	if watchBoard {
		boardCfg := board.LoadConfig(sheetName, cfg.BoardURL)
		if boardCfg == nil {
			return NewExitError(ExitUsage, "board not configured: set %s or add a token to ~/%s", board.EnvToken, board.ConfigFileName)
		}
		client, err = board.NewClient(*boardCfg)
		if err != nil {
			return fmt.Errorf("failed to create board client: %w", err)
		}
		client.LoadSheet = func() (*worksheet.Snapshot, error) {
			return worksheet.Load(path)
		}
	}

	events := teeEvents(watcher.Events(), store, client)

	if watchTUI {
		model := tui.NewModel(sheetName, events)
		opts := []tea.ProgramOption{tea.WithContext(ctx)}
		program := tea.NewProgram(model, opts...)
		if client != nil {
			// Run reads the callback fields, so they must all be set
			// before the goroutine starts.
			client.OnStateChange = func(state board.State) {
				program.Send(tui.BoardStateMsg{State: state.String()})
			}
			go func() {
				_ = client.Run(ctx)
			}()
		}
		if _, err := program.Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("dashboard failed: %w", err)
		}
		return nil
	}

	if client != nil {
		go func() {
			_ = client.Run(ctx)
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			printEvent(event)
		}
	}
}

// teeEvents forwards watcher events, recording and publishing snapshots
// along the way when a store or board client is configured.
func teeEvents(in <-chan worksheet.Event, store *results.Store, client *board.Client) <-chan worksheet.Event {
	if store == nil && client == nil {
		return in
	}

	out := make(chan worksheet.Event, 16)
	go func() {
		defer close(out)
		for event := range in {
			if event.Type == worksheet.Changed && event.Snapshot != nil {
				if store != nil {
					if err := store.Write(event.Snapshot.Name, event.Snapshot); err != nil {
						fmt.Fprintf(os.Stderr, "failed to record snapshot: %v\n", err)
					}
				}
				if client != nil {
					_ = client.Publish(event.Snapshot)
				}
			}
			out <- event
		}
	}()
	return out
}

// printEvent renders one watcher event as plain lines.
func printEvent(event worksheet.Event) {
	if event.Type == worksheet.Removed {
		fmt.Println(styles.RenderError("worksheet removed"))
		return
	}

	snap := event.Snapshot
	fmt.Printf("%s  %s\n",
		styles.BoldStyle.Render(snap.Name),
		styles.RenderDim(snap.EvaluatedAt.Local().Format("15:04:05")))
	for _, r := range snap.Results {
		if r.Err != "" {
			fmt.Printf("  %s  %s\n", r.Expr, styles.RenderError(r.Err))
			continue
		}
		fmt.Printf("  %s = %s\n", r.Expr, styles.RenderValue(fmt.Sprintf("%d", r.Value)))
	}
	if n := snap.Errors(); n > 0 {
		fmt.Println(styles.RenderDim(fmt.Sprintf("  %d line(s) failed to parse", n)))
	}
}
