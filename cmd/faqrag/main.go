package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lexgrove/faqrag"
	"github.com/lexgrove/faqrag/gemini"
	"github.com/lexgrove/faqrag/persistence/chromem"
	"github.com/lexgrove/faqrag/persistence/gcs"
	"github.com/lexgrove/faqrag/retrieval"
	"github.com/lexgrove/faqrag/retrieval/flat"

	httpT "github.com/lexgrove/faqrag/transport/http"
	natsT "github.com/lexgrove/faqrag/transport/nats"
)

func main() {
	cmd := &cli.Command{
		Name:  "faqrag",
		Usage: "Grounded FAQ answering service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Path to the faqrag data directory",
			},
			&cli.StringFlag{
				Name:    "nats",
				Usage:   "NATS server URL (empty disables the NATS transport)",
				Sources: cli.EnvVars("NATS_URL"),
			},
			&cli.StringFlag{
				Name:  "http-addr",
				Usage: "HTTP server address",
				Value: ":8080",
			},
		},
		Action: run,
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err.Error())
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		path = filepath.Join(homeDir, ".lexgrove", "faqrag")
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)

	f, err := os.Open(filepath.Join(path, "config.yaml"))
	if err != nil {
		return err
	}
	defer f.Close()

	var cfg faqrag.Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return err
	}

	if cfg.Corpus.DocumentsPath == "" {
		cfg.Corpus.DocumentsPath = filepath.Join(path, "all_documents.json")
	}

	if cfg.Corpus.EmbeddingsPath == "" {
		cfg.Corpus.EmbeddingsPath = filepath.Join(path, "embeddings.json")
	}

	if cfg.Index.Path == "" {
		cfg.Index.Path = filepath.Join(path, "vectors")
	}

	documents, err := retrieval.LoadDocuments(cfg.Corpus.DocumentsPath)
	if err != nil {
		return err
	}

	var index retrieval.Index
	switch cfg.Index.Backend {
	case "chromem":
		index, err = chromem.NewIndex(cfg.Index)
	default:
		index, err = flat.Load(cfg.Corpus.EmbeddingsPath)
	}

	if err != nil {
		return err
	}

	gem, err := gemini.NewClient(ctx, cfg.Gemini)
	if err != nil {
		return err
	}
	defer gem.Close()

	history, err := gcs.NewHistoryStore(ctx, cfg.History.Bucket)
	if err != nil {
		return err
	}
	defer history.Close()

	retriever := retrieval.NewRetriever(gem, index, documents)

	svc := faqrag.NewService(cfg, retriever, gem, history)
	defer svc.Close()

	svc = faqrag.LoggingMiddleware(log)(svc)

	endpoints := faqrag.EndpointSet{
		AnswerQuery: faqrag.AnswerQueryEndpoint(svc),
		EndSession:  faqrag.EndSessionEndpoint(svc),
		Fallback:    faqrag.FallbackEndpoint(svc),
	}

	natsURL := cmd.String("nats")
	if natsURL != "" {
		nc, err := nats.Connect(natsURL,
			nats.Name("FAQRag Server"),
		)

		if err != nil {
			return err
		}
		defer nc.Drain()

		srv, err := micro.AddService(nc, micro.Config{
			Name:    "faqrag",
			Version: "1.0.0",
		})

		if err != nil {
			return err
		}
		defer srv.Stop()

		root := srv.AddGroup("faqrag")
		natsT.AddEndpoints(root, endpoints)
	}

	r := gin.Default()
	httpT.AddRouters(r, endpoints)

	go r.Run(cmd.String("http-addr"))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sign := <-quit

	log.Info("graceful shutdown", zap.String("signal", sign.String()))
	return nil
}
