package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"

	"travel_itinerary_planner/config"
	"travel_itinerary_planner/logging"
	"travel_itinerary_planner/pdf"
	"travel_itinerary_planner/planner"
	"travel_itinerary_planner/server"
)

func main() {
	configPath := flag.String("config", "config/config.json", "path to config.json")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	dest := flag.String("dest", "", "destination to travel")
	days := flag.String("days", "", "number of days")
	interests := flag.String("interests", "", "special interests")
	guardrails := flag.String("guardrails", "", "guardrails / preferences")
	out := flag.String("out", "travel_itinerary.pdf", "output PDF path in one-shot mode")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	_ = godotenv.Load() // .env is optional

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}

	log := logging.New(cfg.Log)
	defer log.Sync()

	llm, err := buildLLM(cfg)
	if err != nil {
		log.Fatalw("llm setup failed", "error", err)
	}
	fetcher, err := planner.NewFetcher(llm, cfg.LLM.Models, log)
	if err != nil {
		log.Fatalw("fetcher setup failed", "error", err)
	}
	p, err := planner.NewPlanner(fetcher, log)
	if err != nil {
		log.Fatalw("planner setup failed", "error", err)
	}
	renderer := pdf.NewRenderer()

	// Web server mode
	if *serve {
		srv, err := server.New(p, renderer, cfg, log)
		if err != nil {
			log.Fatalw("server setup failed", "error", err)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		log.Infow("starting web server", "addr", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			log.Fatalw("server stopped", "error", err)
		}
		return
	}

	// One-shot mode: generate once, show the plan, write the PDF next to it.
	req := planner.TripRequest{
		Destination: *dest,
		DayCount:    *days,
		Interests:   *interests,
		Guardrails:  *guardrails,
	}
	if err := planner.ValidateRequest(req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	it, err := p.Generate(context.Background(), req)
	if err != nil {
		log.Fatalw("generation failed", "error", err)
	}

	printMarkdown(it.Markdown)
	fmt.Printf("\nModel used: %s\n", it.ModelUsed)

	data, err := renderer.Render(it.Markdown)
	if err != nil {
		log.Fatalw("pdf render failed", "error", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalw("pdf write failed", "error", err)
	}
	fmt.Printf("Saved %s\n", *out)
}

// printMarkdown renders the plan for the terminal, falling back to the raw
// text when the styled renderer is unavailable.
func printMarkdown(md string) {
	tr, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		if styled, rerr := tr.Render(md); rerr == nil {
			fmt.Print(styled)
			return
		}
	}
	fmt.Println(md)
}

func buildLLM(cfg config.Config) (planner.LLMClient, error) {
	switch cfg.LLM.Provider {
	case "openai":
		return planner.NewOpenAILLMFromConfig(&planner.LLMSettings{
			Provider:  cfg.LLM.Provider,
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   cfg.LLM.BaseURL,
			MaxTokens: cfg.LLM.MaxTokens,
		})
	case "mock":
		return planner.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
