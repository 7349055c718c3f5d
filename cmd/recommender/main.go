// Command recommender runs the interactive movie recommender chatbot. One
// process hosts one interactive session; conversational memory lives for the
// process lifetime only.
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dimiro1/banner"

	recommender "github.com/ManishPrajapat001/movie-recommender-chatbot"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/chat"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/config"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/logging"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/orchestrator"
)

const bannerTemplate = `{{ .Title "recommender" "" 4 }}
{{ .AnsiColor.BrightCyan }}Movie recommender chatbot with memory and tools{{ .AnsiColor.Default }}
Type 'quit', 'exit' or 'bye' to end the conversation
Type 'history' to see conversation history
Type 'clear' to clear conversation history

`

func main() {
	configPath := flag.String("config", "", "optional path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	bot, err := recommender.New(cfg, func(o *recommender.Options) {
		o.Logger = logger
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup error: %v\n", err)
		os.Exit(1)
	}

	banner.Init(os.Stdout, true, true, bytes.NewBufferString(bannerTemplate))

	sessionID := chat.NewID()
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "quit", "exit", "bye":
			fmt.Println("\nAI: Goodbye! Thanks for chatting!")
			return
		case "history":
			showHistory(bot, sessionID)
			continue
		case "clear":
			if err := bot.ClearHistory(sessionID); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Println("Conversation history cleared.")
			continue
		case "":
			fmt.Println("Please enter a message.")
			continue
		}

		fmt.Println("Processing...")
		answer, err := bot.Chat(ctx, sessionID, input)
		if err != nil {
			// A single failed turn never terminates the session.
			var hopErr *orchestrator.HopLimitError
			if errors.As(err, &hopErr) {
				fmt.Println("AI: Sorry, I could not resolve that request in time. Please try rephrasing.")
				continue
			}
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("AI: %s\n", answer)
	}
}

func showHistory(bot *recommender.Recommender, sessionID string) {
	history, err := bot.History(sessionID)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if len(history) == 0 {
		fmt.Println("No conversation history yet.")
		return
	}
	for i, msg := range history {
		fmt.Printf("%2d. [%s] %s\n", i+1, msg.Role, msg.Content)
	}
}
