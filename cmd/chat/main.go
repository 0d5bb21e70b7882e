package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"skincare-bot/internal/config"
	"skincare-bot/internal/console"
	"skincare-bot/internal/integrations/dialogue"
	"skincare-bot/internal/integrations/paramstore"
	"skincare-bot/internal/repository"
	"skincare-bot/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	loader := &lazyAWS{}

	// ---- Dialogue client ----
	token := cfg.DialogueToken
	if token == "" && cfg.DialogueTokenParam != "" {
		awsCfg, err := loader.get(ctx)
		if err != nil {
			slog.Error("failed to load AWS config", "err", err)
			os.Exit(1)
		}
		params, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			slog.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		token, err = params.GetToken(ctx, cfg.DialogueTokenParam)
		if err != nil {
			slog.Error("failed to read dialogue token", "param", cfg.DialogueTokenParam, "err", err)
			os.Exit(1)
		}
	}
	client := dialogue.NewClient(dialogue.WithBaseURL(cfg.DialogueURL), dialogue.WithToken(token))

	chat, err := usecase.NewChatService(client, cfg.DialogueSender)
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	// ---- Transcript store ----
	store, closeStore, err := openStore(ctx, cfg, loader)
	if err != nil {
		slog.Error("failed to open transcript store", "store", cfg.TranscriptStore, "err", err)
		os.Exit(1)
	}

	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	session, err := usecase.NewSession(sessionID, chat, store)
	if err != nil {
		slog.Error("failed to create session", "err", err)
		closeStore()
		os.Exit(1)
	}

	err = run(ctx, session, cfg.HistoryLimit)
	closeStore()
	if err != nil {
		slog.Error("console stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, session *usecase.Session, historyLimit int) error {
	rl, err := readline.New("You> ")
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	out := console.NewPrinter(rl.Stdout(), readline.GetScreenWidth())

	fmt.Fprintln(rl.Stdout(), "🌿 Skincare Routine Assistant")
	fmt.Fprintln(rl.Stdout(), "Type exit to quit, /help for commands")
	if n := session.Resume(ctx, historyLimit); n > 0 {
		out.Transcript(session.History())
		out.Separator()
	}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch input := strings.TrimSpace(line); input {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "/help":
			out.Help()
		case "/history":
			out.Transcript(session.History())
		case "/reset":
			session.Reset(ctx)
			out.Separator()
		case "/start":
			out.Turn(session.QuickStart(ctx))
		default:
			if turn, ok := session.Submit(ctx, line); ok {
				out.Bot(turn.BotText)
			}
		}
	}
}

// openStore returns the configured transcript store; a nil store keeps the
// transcript in memory only.
func openStore(ctx context.Context, cfg config.Config, loader *lazyAWS) (usecase.TranscriptStore, func(), error) {
	noop := func() {}
	switch cfg.TranscriptStore {
	case config.StoreSQLite:
		db, err := repository.OpenSQLite(ctx, cfg.TranscriptDB)
		if err != nil {
			return nil, noop, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				slog.Warn("failed to close transcript db", "err", err)
			}
		}, nil
	case config.StoreDynamoDB:
		awsCfg, err := loader.get(ctx)
		if err != nil {
			return nil, noop, err
		}
		client, err := repository.NewDynamoClient(awsdynamodb.NewFromConfig(awsCfg), cfg.TranscriptTable)
		if err != nil {
			return nil, noop, err
		}
		return client, noop, nil
	default:
		return nil, noop, nil
	}
}

// lazyAWS loads the AWS SDK config on first use so local runs without
// credentials never touch it.
type lazyAWS struct {
	cfg    aws.Config
	loaded bool
}

func (l *lazyAWS) get(ctx context.Context) (aws.Config, error) {
	if l.loaded {
		return l.cfg, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, err
	}
	l.cfg, l.loaded = cfg, true
	return l.cfg, nil
}
