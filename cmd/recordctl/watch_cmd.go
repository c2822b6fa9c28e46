package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os/signal"
	"strings"
	"syscall"

	"go-recordshop/internal/ws"

	"github.com/fasthttp/websocket"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print record changes as they happen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.guard.RequireLogin(); err != nil {
				return err
			}

			endpoint, err := wsURL(a.apiURL)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
			if err != nil {
				a.log.Warn("websocket dial failed", zap.String("url", endpoint), zap.Error(err))
				return fmt.Errorf("could not connect to %s: %w", endpoint, err)
			}
			defer conn.Close()

			go func() {
				<-ctx.Done()
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				conn.Close()
			}()

			cmd.Printf("Watching %s (Ctrl+C to stop)\n", endpoint)
			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
						return nil
					}
					return fmt.Errorf("read event: %w", err)
				}

				var ev ws.Event
				if err := json.Unmarshal(msg, &ev); err != nil {
					a.log.Debug("skipping undecodable event", zap.Error(err))
					continue
				}
				cmd.Println(formatEvent(ev))
			}
		},
	}
}

func formatEvent(ev ws.Event) string {
	return fmt.Sprintf("%s  %-15s #%d  %s", ev.At.Local().Format("15:04:05"), ev.Action, ev.Record.ID, ev.Message)
}

// wsURL turns the API base URL into the change feed URL.
func wsURL(api string) (string, error) {
	u, err := url.Parse(api)
	if err != nil {
		return "", fmt.Errorf("invalid api url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.New("api url must start with http:// or https://")
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}
