package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/set-night/aibridge/internal/bridge"
	"github.com/set-night/aibridge/internal/chatlog"
	"github.com/set-night/aibridge/internal/codestore"
	"github.com/set-night/aibridge/internal/config"
	"github.com/set-night/aibridge/internal/domain"
	"github.com/set-night/aibridge/internal/errstore"
	"github.com/set-night/aibridge/internal/handler"
	"github.com/set-night/aibridge/internal/host"
	"github.com/set-night/aibridge/internal/provider"
	"github.com/set-night/aibridge/internal/usage"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The terminal host stands in for the embedding application's main loop.
	term := host.NewTerminal()

	tracker := usage.NewTracker(config.ChatPromptPricePer1M, config.ChatCompletionPricePer1M)
	h := handler.New(handler.Deps{
		Client:  provider.New(cfg.BaseURL),
		Chats:   chatlog.NewStore(cfg.DataDir),
		Code:    codestore.NewStore(cfg.DataDir),
		Usage:   tracker,
		DataDir: cfg.DataDir,
	})

	b := bridge.New(bridge.Deps{
		Host:         term,
		Handler:      h,
		Code:         codestore.NewStore(cfg.DataDir),
		Errors:       errstore.New(),
		Usage:        tracker,
		PollInterval: cfg.PollInterval,
	})
	defer b.Close()

	go readCommands(ctx, stop, term, b, cfg)

	slog.Info("bridge ready", "data_dir", cfg.DataDir, "async", cfg.AsyncExecution)
	term.Run(ctx)

	slog.Info("bridge stopped gracefully")
}

// readCommands parses REPL lines and posts each submission onto the host
// main loop, where application state may be touched.
func readCommands(ctx context.Context, stop context.CancelFunc, term *host.Terminal, b *bridge.Bridge, cfg *config.Config) {
	fmt.Println("commands: chat <prompt> | code <prompt> | edit <prompt> | image <prompt> | audio <file> | status | usage | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		cmd, rest, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch cmd {
		case "":
			continue
		case "quit", "exit":
			stop()
			return
		case "status":
			term.Do(func() {
				st := b.Status()
				fmt.Printf("processing %d/%d, %d outstanding\n", st.Consumed, st.Total, len(st.Outstanding))
				for _, tx := range st.Outstanding {
					fmt.Printf("  [%s] %s\n", tx.Kind, tx.Title)
				}
			})
		case "usage":
			term.Do(func() {
				fmt.Printf("total cost: $%s\n", b.Usage().TotalCost().StringFixed(4))
			})
		default:
			req, title, err := buildRequest(cfg, cmd, rest)
			if err != nil {
				fmt.Println(err)
				continue
			}
			term.Do(func() { submit(b, cfg, req, title) })
		}
	}
}

func buildRequest(cfg *config.Config, cmd, rest string) (domain.Request, string, error) {
	switch cmd {
	case "chat":
		return domain.Request{
			APIKey: cfg.APIKey,
			Kind:   domain.RequestChat,
			Chat:   &domain.ChatPayload{Model: cfg.ChatModel, UserText: rest},
			Options: domain.Options{Chat: &domain.ChatOptions{
				Topic:    "terminal",
				NewTopic: false,
			}},
		}, rest, nil
	case "code":
		return domain.Request{
			APIKey: cfg.APIKey,
			Kind:   domain.RequestGenerateCode,
			Code:   &domain.CodePayload{Model: cfg.CodeModel, Prompt: rest},
			Options: domain.Options{Code: &domain.CodeOptions{
				CodeName:   "terminal",
				ShowEditor: true,
			}},
		}, rest, nil
	case "edit":
		return domain.Request{
			APIKey: cfg.APIKey,
			Kind:   domain.RequestEditCode,
			Code:   &domain.CodePayload{Model: cfg.CodeModel, Prompt: rest},
			Options: domain.Options{Code: &domain.CodeOptions{
				CodeName:   "terminal",
				ShowEditor: true,
			}},
		}, rest, nil
	case "image":
		return domain.Request{
			APIKey: cfg.APIKey,
			Kind:   domain.RequestGenerateImage,
			Image:  &domain.ImagePayload{Prompt: rest, Count: 1, Size: "1024x1024"},
			Options: domain.Options{Image: &domain.ImageOptions{
				ImageName: "",
			}},
		}, rest, nil
	case "audio":
		return domain.Request{
			APIKey: cfg.APIKey,
			Kind:   domain.RequestTranscribeAudio,
			Audio: &domain.AudioPayload{
				FilePath:    rest,
				Model:       cfg.AudioModel,
				Temperature: config.DefaultAudioTemperature,
				Language:    cfg.AudioLanguage,
			},
			Options: domain.Options{Audio: &domain.AudioOptions{
				Target:         domain.AudioTargetTextEditor,
				TargetTextName: "transcript",
			}},
		}, rest, nil
	default:
		return domain.Request{}, "", fmt.Errorf("unknown command %q", cmd)
	}
}

// submit runs on the host main loop.
func submit(b *bridge.Bridge, cfg *config.Config, req domain.Request, title string) {
	if req.Kind == domain.RequestChat && req.Options.Chat != nil {
		// Reuse the terminal topic when it exists, start it otherwise.
		chats := chatlog.NewStore(cfg.DataDir)
		if _, err := chats.Load(req.Options.Chat.Topic); err != nil {
			req.Options.Chat.NewTopic = true
		}
	}

	if !cfg.AsyncExecution {
		if err := b.SubmitSync(req); err != nil {
			slog.Error("request failed", "kind", req.Kind, "error", err)
		}
		return
	}

	id, err := b.SubmitAsync(req, title)
	if err != nil {
		slog.Error("failed to submit request", "kind", req.Kind, "error", err)
		return
	}
	slog.Info("request submitted", "kind", req.Kind, "transaction_id", id)
}
