package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/vowswap-chat/internal/chat"
	"github.com/yourusername/vowswap-chat/internal/client/connection"
	"github.com/yourusername/vowswap-chat/internal/client/ui"
	"github.com/yourusername/vowswap-chat/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	serverURL := flag.String("server", cfg.Client.ServerURL, "WebSocket server URL")
	userID := flag.String("user", cfg.Client.UserID, "User ID to sign in as")
	displayName := flag.String("name", cfg.Client.DisplayName, "Display name shown to counterparts")
	offline := flag.Bool("offline", false, "Use sample conversations instead of a server")
	flag.Parse()

	// Anything written to the terminal would break the alt screen
	if cfg.Client.LogFile != "" {
		f, err := tea.LogToFile(cfg.Client.LogFile, "chat")
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	opts := ui.Options{
		Policy:        cfg.Client.Submit,
		SendTimeout:   cfg.Client.SendTimeout,
		MaxDraft:      cfg.Client.MaxDraft,
		MaxReconnects: cfg.Client.MaxReconnects,
		ViewerName:    *displayName,
		ServerURL:     *serverURL,
	}

	if *offline {
		inbox := chat.NewSampleInbox()
		opts.Directory = inbox
		opts.Sender = inbox
	} else {
		connMgr := connection.NewManager(*serverURL, *userID, *displayName)
		opts.Directory = connMgr
		opts.Sender = connMgr
		opts.Conn = connMgr
	}

	p := tea.NewProgram(ui.NewModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if m, ok := final.(ui.Model); ok {
		m.Disconnect()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
